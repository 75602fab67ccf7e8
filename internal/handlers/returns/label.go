package ret

import (
	"fmt"
	"log"
	"net/http"

	"beautymart_back_end/internal/database"
	"beautymart_back_end/internal/returns"
	"beautymart_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// DownloadReturnLabel génère le bordereau de dépôt PDF (avec QR code)
// pour une demande approuvée. Propriétaire uniquement.
func DownloadReturnLabel(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"unauthorized": true})
		return
	}

	returnUUID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID de retour invalide"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur connexion base de données"})
		return
	}

	var ownerID, status string
	var orderID gocql.UUID
	err = session.Query(`
		SELECT user_id, order_id, status FROM returns WHERE return_id = ?
	`, returnUUID).Scan(&ownerID, &orderID, &status)

	if err != nil || ownerID != userID {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Demande de retour introuvable"})
		return
	}

	if returns.Status(status) != returns.StatusApproved {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Bordereau disponible uniquement pour une demande approuvée"})
		return
	}

	qr, err := utils.GenerateDropoffQR(returnUUID.String(), orderID.String())
	if err != nil {
		log.Printf("❌ Erreur génération QR retour %s: %v", returnUUID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur génération QR code"})
		return
	}

	pdf, err := utils.RenderReturnSlipPDF(utils.GetFrontendReturnSlipBaseURL(), returnUUID.String(), qr)
	if err != nil {
		log.Printf("❌ Erreur génération PDF bordereau %s: %v", returnUUID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur génération bordereau"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=bordereau-retour-%s.pdf", returnUUID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
