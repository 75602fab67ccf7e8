package ret

import (
	"encoding/json"
	"log"
	"net/http"

	"beautymart_back_end/internal/database"
	"beautymart_back_end/internal/models"
	"beautymart_back_end/internal/returns"
	"beautymart_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

// decodeReturnItems désérialise la colonne items (JSON) d'une ligne returns
func decodeReturnItems(itemsJSON string) []returns.Item {
	var items []returns.Item
	if itemsJSON != "" {
		if err := json.Unmarshal([]byte(itemsJSON), &items); err != nil {
			log.Printf("⚠️ Erreur décodage items retour: %v", err)
		}
	}
	return items
}

// GetMyReturns récupère l'historique des demandes de retour du client connecté
func GetMyReturns(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"unauthorized": true})
		return
	}

	query, err := database.QueryGetReturnsByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur connexion base de données"})
		return
	}

	iter := query.Iter()

	requests := []models.ReturnRequest{}
	var r models.ReturnRequest
	var itemsJSON, reason, reqType, status string

	for iter.Scan(&r.ID, &r.OrderID, &itemsJSON, &reason, &reqType, &r.Notes, &status,
		&r.ResolutionNote, &r.PhotoURLs, &r.RefundAmount, &r.StripeRefundID, &r.CreatedAt, &r.UpdatedAt) {
		r.UserID = userID
		r.Items = decodeReturnItems(itemsJSON)
		r.Reason = returns.Reason(reason)
		r.Type = returns.Type(reqType)
		r.Status = returns.Status(status)
		requests = append(requests, r)
		r = models.ReturnRequest{}
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur lecture demandes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    requests,
	})
}

// GetAllReturns récupère toutes les demandes de retour (guichet admin)
func GetAllReturns(c *gin.Context) {
	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`
		SELECT return_id, order_id, user_id, items, reason, type, notes, status, resolution_note, photo_urls, refund_amount, stripe_refund_id, created_at, updated_at
		FROM returns
	`).Iter()

	requests := []models.ReturnRequest{}
	var r models.ReturnRequest
	var itemsJSON, reason, reqType, status string

	for iter.Scan(&r.ID, &r.OrderID, &r.UserID, &itemsJSON, &reason, &reqType, &r.Notes, &status,
		&r.ResolutionNote, &r.PhotoURLs, &r.RefundAmount, &r.StripeRefundID, &r.CreatedAt, &r.UpdatedAt) {
		r.Items = decodeReturnItems(itemsJSON)
		r.Reason = returns.Reason(reason)
		r.Type = returns.Type(reqType)
		r.Status = returns.Status(status)
		requests = append(requests, r)
		r = models.ReturnRequest{}
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur lecture demandes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    requests,
		"count":   len(requests),
	})
}

// SearchAllReturns recherche plein texte dans les demandes (guichet admin)
func SearchAllReturns(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Paramètre q manquant"})
		return
	}

	results, err := services.SearchReturns(query, c.Query("status"))
	if err != nil {
		log.Printf("❌ Erreur recherche retours: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur recherche"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    results,
		"count":   len(results),
	})
}
