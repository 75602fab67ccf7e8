package user

import (
	"encoding/json"
	"log"
	"net/http"

	"beautymart_back_end/internal/cache"
	"beautymart_back_end/internal/database"
	"beautymart_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// enrichOrderItems complète les noms de produits depuis le cache
// (le front affiche les lignes éligibles au retour)
func enrichOrderItems(items []models.OrderItem) {
	productIDs := make([]string, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
	}

	names := cache.GetProductNamesFromCache(productIDs)
	for i := range items {
		if name, ok := names[items[i].ProductID]; ok {
			items[i].Name = name
		}
	}
}

// GetMyOrders récupère toutes les commandes du client connecté
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"unauthorized": true})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`
		SELECT order_id, payment_intent_id, items, total_price, status, created_at
		FROM orders_by_user WHERE user_id = ?
	`, userID).Iter()

	orders := []models.Order{}
	var o models.Order
	var itemsJSON string

	for iter.Scan(&o.ID, &o.PaymentIntentID, &itemsJSON, &o.TotalPrice, &o.Status, &o.CreatedAt) {
		o.UserID = userID
		if itemsJSON != "" {
			if err := json.Unmarshal([]byte(itemsJSON), &o.Items); err != nil {
				log.Printf("⚠️ Erreur décodage items commande %s: %v", o.ID, err)
			}
		}
		enrichOrderItems(o.Items)
		orders = append(orders, o)
		o = models.Order{}
	}

	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur lecture commandes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur récupération commandes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetOrderByID récupère une commande précise du client connecté.
// Une commande d'un autre client est traitée comme introuvable.
func GetOrderByID(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"unauthorized": true})
		return
	}

	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID commande invalide"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur connexion base de données"})
		return
	}

	var o models.Order
	var itemsJSON string
	err = session.Query(`
		SELECT order_id, user_id, payment_intent_id, items, total_price, status, created_at
		FROM orders WHERE order_id = ?
	`, gocql.UUID(orderUUID)).Scan(&o.ID, &o.UserID, &o.PaymentIntentID, &itemsJSON, &o.TotalPrice, &o.Status, &o.CreatedAt)

	if err != nil || o.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Commande introuvable"})
		return
	}

	if itemsJSON != "" {
		if err := json.Unmarshal([]byte(itemsJSON), &o.Items); err != nil {
			log.Printf("⚠️ Erreur décodage items commande %s: %v", o.ID, err)
		}
	}
	enrichOrderItems(o.Items)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    o,
	})
}
