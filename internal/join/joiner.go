// Package join denormalizes transactions with their products and customers.
package join

import "github.com/hyperjump/lookalike/internal/models"

// Stats counts join results. Orphans are rows whose foreign key had no match.
// NegativeTotals counts rows kept with a total value below zero.
type Stats struct {
	Rows            int
	OrphanProducts  int
	OrphanCustomers int
	NegativeTotals  int
}

// Join left-joins every transaction to its product by product ID, then to its customer by
// customer ID. One row per transaction, in input order; duplicates are kept and unmatched
// sides are nil. When a key appears more than once in products or customers, the first
// occurrence wins.
func Join(ds *models.Dataset) ([]*models.JoinedRecord, Stats) {
	products := make(map[string]*models.Product, len(ds.Products))
	for _, p := range ds.Products {
		if _, ok := products[p.ID]; !ok {
			products[p.ID] = p
		}
	}
	customers := make(map[string]*models.Customer, len(ds.Customers))
	for _, c := range ds.Customers {
		if _, ok := customers[c.ID]; !ok {
			customers[c.ID] = c
		}
	}

	stats := Stats{Rows: len(ds.Transactions)}
	rows := make([]*models.JoinedRecord, 0, len(ds.Transactions))
	for _, tx := range ds.Transactions {
		rec := &models.JoinedRecord{
			Transaction: tx,
			Product:     products[tx.ProductID],
			Customer:    customers[tx.CustomerID],
		}
		if rec.Product == nil {
			stats.OrphanProducts++
		}
		if rec.Customer == nil {
			stats.OrphanCustomers++
		}
		if tx.TotalValue != nil && *tx.TotalValue < 0 {
			stats.NegativeTotals++
		}
		rows = append(rows, rec)
	}
	return rows, stats
}
