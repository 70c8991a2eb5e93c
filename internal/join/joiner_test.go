package join

import (
	"testing"

	"github.com/hyperjump/lookalike/internal/models"
)

func TestJoin(t *testing.T) {
	ds := &models.Dataset{
		Customers: []*models.Customer{{ID: "C1"}, {ID: "C2"}},
		Products:  []*models.Product{{ID: "P1", Category: "Books"}},
		Transactions: []*models.Transaction{
			{ID: "T1", CustomerID: "C1", ProductID: "P1"},
			{ID: "T1", CustomerID: "C1", ProductID: "P1"}, // duplicate id kept
			{ID: "T2", CustomerID: "C9", ProductID: "P1"},
			{ID: "T3", CustomerID: "C2", ProductID: "P9"},
		},
	}
	rows, stats := Join(ds)
	if len(rows) != len(ds.Transactions) {
		t.Fatalf("rows = %d, want %d", len(rows), len(ds.Transactions))
	}
	if stats.Rows != 4 || stats.OrphanCustomers != 1 || stats.OrphanProducts != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if rows[0].Product == nil || rows[0].Category() != "Books" || rows[0].Customer.ID != "C1" {
		t.Errorf("row 0 not joined: %+v", rows[0])
	}
	if rows[1].Transaction.ID != "T1" {
		t.Error("duplicate transaction should be preserved in order")
	}
	if rows[2].Customer != nil || rows[2].CustomerID() != "C9" {
		t.Errorf("orphan customer row should keep key with nil customer: %+v", rows[2])
	}
	if rows[3].Product != nil || rows[3].Category() != "" {
		t.Errorf("orphan product row should have nil product: %+v", rows[3])
	}
}

func TestJoin_empty(t *testing.T) {
	rows, stats := Join(&models.Dataset{})
	if len(rows) != 0 || stats.Rows != 0 {
		t.Errorf("expected empty join, got %d rows", len(rows))
	}
}

func TestJoin_negativeTotals(t *testing.T) {
	neg, pos := -25.0, 40.0
	ds := &models.Dataset{
		Customers: []*models.Customer{{ID: "C1"}},
		Products:  []*models.Product{{ID: "P1", Category: "Books"}},
		Transactions: []*models.Transaction{
			{ID: "T1", CustomerID: "C1", ProductID: "P1", TotalValue: &neg},
			{ID: "T2", CustomerID: "C1", ProductID: "P1", TotalValue: &pos},
			{ID: "T3", CustomerID: "C1", ProductID: "P1"},
		},
	}
	rows, stats := Join(ds)
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if stats.NegativeTotals != 1 {
		t.Errorf("NegativeTotals = %d, want 1", stats.NegativeTotals)
	}
	if rows[0].Transaction.TotalValue == nil || *rows[0].Transaction.TotalValue != neg {
		t.Error("negative total should be kept")
	}
}
