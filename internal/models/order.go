package models

import (
	"time"

	"github.com/gocql/gocql"
)

type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name,omitempty"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type Order struct {
	ID              gocql.UUID  `json:"id" db:"order_id"`
	UserID          string      `json:"user_id" db:"user_id"`
	PaymentIntentID string      `json:"payment_intent_id,omitempty" db:"payment_intent_id"`
	Items           []OrderItem `json:"items" db:"items"`
	TotalPrice      float64     `json:"total_price" db:"total_price"`
	Status          string      `json:"status" db:"status"` // paid, shipped, delivered, refunded
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
}

// PurchasedQuantities retourne la quantité achetée par produit,
// utilisée pour borner les quantités d'une demande de retour
func (o Order) PurchasedQuantities() map[string]int {
	purchased := make(map[string]int, len(o.Items))
	for _, item := range o.Items {
		purchased[item.ProductID] += item.Quantity
	}
	return purchased
}
