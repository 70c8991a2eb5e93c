// Package models defines core data structures for input records, joined rows, feature vectors, and lookalike results.
package models

import "time"

// Customer is one row of the customers table.
type Customer struct {
	ID         string            `json:"customer_id"`
	SignupDate *time.Time        `json:"signup_date,omitempty"` // nil when missing or unparseable
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Product is one row of the products table.
type Product struct {
	ID         string            `json:"product_id"`
	Category   string            `json:"category"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Transaction is one row of the transactions table.
type Transaction struct {
	ID         string            `json:"transaction_id"`
	CustomerID string            `json:"customer_id"`
	ProductID  string            `json:"product_id"`
	Date       *time.Time        `json:"transaction_date,omitempty"`
	TotalValue *float64          `json:"total_value,omitempty"` // nil when missing or unparseable
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Dataset holds the three raw record sets of one run.
type Dataset struct {
	Customers    []*Customer
	Products     []*Product
	Transactions []*Transaction
}

// JoinedRecord is one transaction left-joined with its product and customer.
// Product and Customer are nil when the foreign key has no match.
type JoinedRecord struct {
	Transaction *Transaction
	Product     *Product
	Customer    *Customer
}

// CustomerID returns the transaction's customer key (set even when Customer is nil).
func (r *JoinedRecord) CustomerID() string {
	return r.Transaction.CustomerID
}

// Category returns the joined product category, or "" when the product is unknown.
func (r *JoinedRecord) Category() string {
	if r.Product == nil {
		return ""
	}
	return r.Product.Category
}
