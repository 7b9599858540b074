package model

import "time"

// PaymentStatus marks how far a payment has progressed.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentSettled PaymentStatus = "settled"
)

// Payment is the append-only ledger record for a completed checkout.
// The ID is a ULID assigned at settlement time, so ledger entries sort
// by creation order. A payment is written exactly once and never updated.
type Payment struct {
	ID          string        `bson:"_id" json:"id"`
	Email       string        `bson:"email" json:"email"`
	Price       float64       `bson:"price" json:"price"`
	Date        time.Time     `bson:"date" json:"date"`
	CartItemIDs []string      `bson:"cartItemIds" json:"cart_item_ids"`
	MenuItemIDs []string      `bson:"menuItemIds" json:"menu_item_ids"`
	Status      PaymentStatus `bson:"status" json:"status"`
}
