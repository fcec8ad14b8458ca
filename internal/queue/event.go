// Package queue defines message payloads exchanged over the message broker
// and the consumer that records them.
package queue

// PaymentSettledQueue is the durable queue settlement events are published to.
const PaymentSettledQueue = "payment.settled"

// OutcomeBothSucceeded is the Outcome of a settlement that needs no follow-up.
const OutcomeBothSucceeded = "both_succeeded"

// PaymentSettledEvent is published after every payment settlement,
// successful or not. Outcome mirrors the settlement tag so an operator can
// find payments whose cart cleanup did not fully succeed without querying
// the primary store.
type PaymentSettledEvent struct {
	PaymentID string   `json:"payment_id"`
	Email     string   `json:"email"`
	Price     float64  `json:"price"`
	Currency  string   `json:"currency"`
	CartIDs   []string `json:"cart_ids"`
	Requested int      `json:"requested"`
	Deleted   int64    `json:"deleted"`
	Outcome   string   `json:"outcome"`
	Error     string   `json:"error,omitempty"`
	SettledAt string   `json:"settled_at"`
}
