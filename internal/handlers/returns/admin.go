package ret

import (
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
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/refund"
)

// UpdateReturnStatus fait avancer une demande de retour dans son cycle de vie.
// Le flag force permet à l'admin de sauter une étape ou de corriger un statut,
// y compris depuis un état final, mais jamais vers un statut inconnu.
func UpdateReturnStatus(c *gin.Context) {
	returnID := c.Param("id")

	var req struct {
		Status         returns.Status `json:"status" binding:"required"`
		ResolutionNote *string        `json:"resolutionNote" binding:"omitempty,max=500"`
		Force          bool           `json:"force"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Données invalides", "details": err.Error()})
		return
	}

	returnUUID, err := gocql.ParseUUID(returnID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID de retour invalide"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur connexion base de données"})
		return
	}

	query, err := database.QueryGetReturnByID(returnUUID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur connexion base de données"})
		return
	}

	var current models.ReturnRequest
	var itemsJSON, reason, reqType, status string
	err = query.Scan(&current.ID, &current.OrderID, &current.UserID, &itemsJSON, &reason, &reqType,
		&current.Notes, &status, &current.ResolutionNote, &current.PhotoURLs, &current.RefundAmount,
		&current.StripeRefundID, &current.CreatedAt, &current.UpdatedAt)

	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Demande de retour introuvable"})
		return
	}
	current.Items = decodeReturnItems(itemsJSON)
	current.Reason = returns.Reason(reason)
	current.Type = returns.Type(reqType)
	current.Status = returns.Status(status)

	if err := returns.Transition(current.Status, req.Status, current.Type, req.Force); err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, returns.ErrTerminalStatus) || errors.Is(err, returns.ErrForbiddenStep) || errors.Is(err, returns.ErrTypeMismatch) {
			code = http.StatusConflict
		}
		c.JSON(code, gin.H{"success": false, "message": err.Error()})
		return
	}

	resolutionNote := mergeResolutionNote(current.ResolutionNote, req.ResolutionNote)

	// Remboursement Stripe déclenché par le passage à refunded
	stripeRefundID := current.StripeRefundID
	if shouldCreateStripeRefund(req.Status, stripeRefundID) {
		var paymentIntentID string
		err = session.Query(`
			SELECT payment_intent_id FROM orders WHERE order_id = ?
		`, current.OrderID).Scan(&paymentIntentID)

		if err != nil || paymentIntentID == "" {
			log.Printf("⚠️ Pas de payment_intent pour la commande %s, remboursement Stripe ignoré", current.OrderID)
		} else {
			ref, err := refund.New(&stripe.RefundParams{
				PaymentIntent: stripe.String(paymentIntentID),
				Amount:        stripe.Int64(int64(current.RefundAmount * 100)),
				Reason:        stripe.String("requested_by_customer"),
			})
			if err != nil {
				log.Printf("❌ Erreur remboursement Stripe pour retour %s: %v", returnID, err)
				utils.LogFailedAction(c, utils.ACTION_RETURN_STRIPE_REFUND, utils.RESOURCE_RETURN, returnID, err.Error())
				c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Erreur remboursement Stripe"})
				return
			}
			stripeRefundID = ref.ID
			log.Printf("💰 Remboursement Stripe %s créé pour retour %s (%.2f€)", ref.ID, returnID, current.RefundAmount)

			// Persister l'id du remboursement immédiatement : si la suite de la
			// mise à jour échoue, un PATCH rejoué ne doit pas rembourser deux fois
			if err := session.Query(`
				UPDATE returns SET stripe_refund_id = ? WHERE return_id = ?
			`, stripeRefundID, returnUUID).Exec(); err != nil {
				log.Printf("⚠️ Erreur persistance stripe_refund_id pour retour %s: %v", returnID, err)
			}
			if err := session.Query(`
				UPDATE returns_by_user SET stripe_refund_id = ? WHERE user_id = ? AND return_id = ?
			`, stripeRefundID, current.UserID, returnUUID).Exec(); err != nil {
				log.Printf("⚠️ Erreur persistance stripe_refund_id (returns_by_user) %s: %v", returnID, err)
			}

			utils.LogAction(c, utils.ACTION_RETURN_STRIPE_REFUND, utils.RESOURCE_RETURN, returnID, nil, gin.H{
				"refund_id": ref.ID,
				"amount":    current.RefundAmount,
			})
		}
	}

	// Dernière écriture gagnante : deux admins simultanés ne sont pas sérialisés
	now := time.Now()
	err = session.Query(`
		UPDATE returns SET status = ?, resolution_note = ?, stripe_refund_id = ?, updated_at = ?
		WHERE return_id = ?
	`, string(req.Status), resolutionNote, stripeRefundID, now, returnUUID).Exec()

	if err != nil {
		log.Printf("❌ Erreur mise à jour retour %s: %v", returnID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur mise à jour demande"})
		return
	}

	err = session.Query(`
		UPDATE returns_by_user SET status = ?, resolution_note = ?, stripe_refund_id = ?, updated_at = ?
		WHERE user_id = ? AND return_id = ?
	`, string(req.Status), resolutionNote, stripeRefundID, now, current.UserID, returnUUID).Exec()

	if err != nil {
		log.Printf("⚠️ Erreur mise à jour returns_by_user %s: %v", returnID, err)
	}

	updated := current
	updated.Status = req.Status
	updated.ResolutionNote = resolutionNote
	updated.StripeRefundID = stripeRefundID
	updated.UpdatedAt = &now

	cache.InvalidateReasonAnalytics()
	cache.PublishReturnsQueueEvent("status_changed", returnID)
	services.IndexReturnRequest(updated)

	action := utils.ACTION_RETURN_STATUS_CHANGE
	if req.Force {
		action = utils.ACTION_RETURN_FORCE_STATUS
	}
	utils.LogAction(c, action, utils.RESOURCE_RETURN, returnID, current, updated)

	// Email de statut en tâche de fond, l'admin n'attend pas le SMTP
	go notifyReturnStatus(updated)

	log.Printf("✅ Retour %s: %s → %s (admin %s)", returnID, current.Status, req.Status, c.GetString("email"))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    updated,
	})
}

// mergeResolutionNote garde la note stockée quand le PATCH ne fournit pas le
// champ ; une chaîne vide explicite efface la note
func mergeResolutionNote(current string, patch *string) string {
	if patch == nil {
		return current
	}
	return *patch
}

// shouldCreateStripeRefund : un remboursement Stripe n'est créé qu'au passage
// à refunded, et jamais si la demande en porte déjà un (PATCH rejoué)
func shouldCreateStripeRefund(target returns.Status, existingRefundID string) bool {
	return target == returns.StatusRefunded && existingRefundID == ""
}

func notifyReturnStatus(req models.ReturnRequest) {
	user, err := cache.GetUserFromCache(req.UserID)
	if err != nil {
		log.Printf("⚠️ Client %s introuvable, email de statut non envoyé: %v", req.UserID, err)
		return
	}

	if err := utils.SendReturnStatusEmail(req, user.Email, req.Status); err != nil {
		log.Printf("⚠️ Erreur envoi email statut retour %s: %v", req.ID, err)
	}
}

// GetReturnByID récupère une demande de retour précise (admin ou propriétaire)
func GetReturnByID(c *gin.Context) {
	userID := c.GetString("user_id")
	role := c.GetString("role")

	returnUUID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID de retour invalide"})
		return
	}

	query, err := database.QueryGetReturnByID(returnUUID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur connexion base de données"})
		return
	}

	var r models.ReturnRequest
	var itemsJSON, reason, reqType, status string
	err = query.Scan(&r.ID, &r.OrderID, &r.UserID, &itemsJSON, &reason, &reqType,
		&r.Notes, &status, &r.ResolutionNote, &r.PhotoURLs, &r.RefundAmount,
		&r.StripeRefundID, &r.CreatedAt, &r.UpdatedAt)

	// Une demande d'un autre client est traitée comme introuvable
	if err != nil || (role != "admin" && r.UserID != userID) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Demande de retour introuvable"})
		return
	}

	r.Items = decodeReturnItems(itemsJSON)
	r.Reason = returns.Reason(reason)
	r.Type = returns.Type(reqType)
	r.Status = returns.Status(status)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    r,
	})
}
