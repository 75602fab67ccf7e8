package models

import (
	"time"

	"beautymart_back_end/internal/returns"

	"github.com/gocql/gocql"
)

type ReturnRequest struct {
	ID             gocql.UUID     `json:"id" db:"return_id"`
	OrderID        gocql.UUID     `json:"order_id" db:"order_id"`
	UserID         string         `json:"user_id" db:"user_id"`
	Items          []returns.Item `json:"items" db:"items"`
	Reason         returns.Reason `json:"reason" db:"reason"`
	Type           returns.Type   `json:"type" db:"type"` // refund, exchange
	Notes          string         `json:"notes,omitempty" db:"notes"`
	Status         returns.Status `json:"status" db:"status"` // pending, approved, denied, refunded, exchanged, closed
	ResolutionNote string         `json:"resolution_note,omitempty" db:"resolution_note"`
	PhotoURLs      []string       `json:"photo_urls,omitempty" db:"photo_urls"`
	RefundAmount   float64        `json:"refund_amount" db:"refund_amount"`
	StripeRefundID string         `json:"stripe_refund_id,omitempty" db:"stripe_refund_id"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt      *time.Time     `json:"updated_at,omitempty" db:"updated_at"`
}
