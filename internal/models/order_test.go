package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPurchasedQuantities(t *testing.T) {
	order := Order{
		Items: []OrderItem{
			{ProductID: "serum", Quantity: 2, Price: 29.90},
			{ProductID: "mascara", Quantity: 1, Price: 14.50},
			{ProductID: "serum", Quantity: 1, Price: 29.90}, // même produit sur deux lignes
		},
	}

	got := order.PurchasedQuantities()

	assert.Equal(t, map[string]int{"serum": 3, "mascara": 1}, got)
}
