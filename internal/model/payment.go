package model

import "time"

// Payment states. A payment is recorded as pending at checkout and an
// admin later marks it confirmed.
const (
	PaymentPending   = "pending"
	PaymentConfirmed = "confirmed"
)

// DefaultCurrency is used when a payment or intent names no currency.
const DefaultCurrency = "usd"

// Payment records money received for one or more registrations. CartIDs is
// the set of registration ids the payment settled; it is a weak reference
// and the registrations themselves are deleted at settlement time.
type Payment struct {
	ID            ID        `bson:"_id" json:"_id"`
	Email         string    `bson:"email" json:"email"`
	Price         float64   `bson:"price" json:"price"`
	Currency      string    `bson:"currency" json:"currency"`
	TransactionID string    `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	CartIDs       []ID      `bson:"cartIds" json:"cartIds"`
	Status        string    `bson:"status" json:"status"`
	Date          time.Time `bson:"date" json:"date"`
}
