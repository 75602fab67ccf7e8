package ret

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"beautymart_back_end/internal/cache"
	"beautymart_back_end/internal/database"
	"beautymart_back_end/internal/models"
	"beautymart_back_end/internal/returns"
	"beautymart_back_end/internal/services"
	"beautymart_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// SubmitReturn crée une demande de retour/échange pour une commande du client
func SubmitReturn(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"unauthorized": true})
		return
	}

	var req struct {
		OrderID string         `json:"order" binding:"required"`
		Items   []returns.Item `json:"items" binding:"required"`
		Reason  returns.Reason `json:"reason" binding:"required"`
		Type    returns.Type   `json:"type" binding:"required"`
		Notes   string         `json:"notes" binding:"max=500"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Données invalides", "details": err.Error()})
		return
	}

	if !req.Reason.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Raison de retour invalide"})
		return
	}
	if !req.Type.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Type de retour invalide (refund ou exchange)"})
		return
	}

	orderUUID, err := uuid.Parse(req.OrderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID commande invalide"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur connexion base de données"})
		return
	}

	// Vérifier que la commande existe et appartient au client.
	// Une commande d'un autre client est traitée comme introuvable.
	var orderUserID, itemsJSON, orderStatus string
	err = session.Query(`
		SELECT user_id, items, status FROM orders WHERE order_id = ?
	`, gocql.UUID(orderUUID)).Scan(&orderUserID, &itemsJSON, &orderStatus)

	if err != nil || orderUserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Commande introuvable"})
		return
	}

	var orderItems []models.OrderItem
	if err := json.Unmarshal([]byte(itemsJSON), &orderItems); err != nil {
		log.Printf("❌ Erreur décodage items commande %s: %v", req.OrderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur lecture commande"})
		return
	}

	order := models.Order{Items: orderItems}
	purchased := order.PurchasedQuantities()

	prices := make(map[string]float64, len(orderItems))
	for _, item := range orderItems {
		prices[item.ProductID] = item.Price
	}

	// Quantités : lignes à zéro filtrées, bornées par la quantité achetée
	kept, err := returns.ValidateItems(req.Items, purchased)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, returns.ErrUnknownOrderLine) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"success": false, "message": err.Error()})
		return
	}

	// Montant remboursable des lignes retournées
	var refundAmount float64
	for _, item := range kept {
		refundAmount += prices[item.ProductID] * float64(item.Quantity)
	}

	returnID := gocql.TimeUUID()
	now := time.Now()

	keptJSON, _ := json.Marshal(kept)

	request := models.ReturnRequest{
		ID:           returnID,
		OrderID:      gocql.UUID(orderUUID),
		UserID:       userID,
		Items:        kept,
		Reason:       req.Reason,
		Type:         req.Type,
		Notes:        req.Notes,
		Status:       returns.StatusPending,
		RefundAmount: refundAmount,
		CreatedAt:    now,
	}

	insert, err := database.QueryInsertReturn(returnID, gocql.UUID(orderUUID), userID, string(keptJSON),
		string(req.Reason), string(req.Type), req.Notes, string(returns.StatusPending), refundAmount, now)
	if err == nil {
		err = insert.Exec()
	}
	if err != nil {
		log.Printf("❌ Erreur création demande de retour: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur création demande"})
		return
	}

	// Index par client pour GET /returns/me
	byUser, err := database.QueryInsertReturnByUser(userID, returnID, gocql.UUID(orderUUID), string(keptJSON),
		string(req.Reason), string(req.Type), req.Notes, string(returns.StatusPending), refundAmount, now)
	if err == nil {
		err = byUser.Exec()
	}
	if err != nil {
		log.Printf("⚠️ Erreur index returns_by_user: %v", err)
	}

	cache.InvalidateReasonAnalytics()
	cache.PublishReturnsQueueEvent("submitted", returnID.String())
	services.IndexReturnRequest(request)
	utils.LogAction(c, utils.ACTION_RETURN_SUBMIT, utils.RESOURCE_RETURN, returnID.String(), nil, request)

	log.Printf("📦 Demande de retour créée: %s pour commande %s (%s)", returnID, req.OrderID, req.Type)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    request,
	})
}
