package ret

import (
	"log"
	"net/http"
	"time"

	"beautymart_back_end/internal/database"
	"beautymart_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// UploadReturnPhotos attache des photos (preuve de dommage) à une demande de retour.
// Seul le client propriétaire peut ajouter des photos, et uniquement en statut pending.
func UploadReturnPhotos(c *gin.Context) {
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
	var photoURLs []string
	err = session.Query(`
		SELECT user_id, status, photo_urls FROM returns WHERE return_id = ?
	`, returnUUID).Scan(&ownerID, &status, &photoURLs)

	if err != nil || ownerID != userID {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Demande de retour introuvable"})
		return
	}

	if status != "pending" {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Photos acceptées uniquement sur une demande en attente"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Formulaire multipart invalide"})
		return
	}

	files := form.File["photos"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Aucune photo fournie"})
		return
	}
	if len(photoURLs)+len(files) > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Maximum 5 photos par demande"})
		return
	}

	uploaded := []string{}
	for _, file := range files {
		objectName, err := services.UploadReturnPhoto(c.Request.Context(), returnUUID.String(), file)
		if err != nil {
			log.Printf("❌ Erreur upload photo retour %s: %v", returnUUID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur upload photo"})
			return
		}
		uploaded = append(uploaded, objectName)
	}

	photoURLs = append(photoURLs, uploaded...)

	err = session.Query(`
		UPDATE returns SET photo_urls = ? WHERE return_id = ?
	`, photoURLs, returnUUID).Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur enregistrement photos"})
		return
	}

	err = session.Query(`
		UPDATE returns_by_user SET photo_urls = ? WHERE user_id = ? AND return_id = ?
	`, photoURLs, userID, returnUUID).Exec()
	if err != nil {
		log.Printf("⚠️ Erreur mise à jour photos returns_by_user %s: %v", returnUUID, err)
	}

	log.Printf("📤 %d photo(s) ajoutée(s) au retour %s", len(uploaded), returnUUID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"photo_urls": photoURLs},
	})
}

// GetReturnPhotoURLs génère des URLs signées temporaires pour les photos d'une demande
func GetReturnPhotoURLs(c *gin.Context) {
	userID := c.GetString("user_id")
	role := c.GetString("role")

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

	var ownerID string
	var photoURLs []string
	err = session.Query(`
		SELECT user_id, photo_urls FROM returns WHERE return_id = ?
	`, returnUUID).Scan(&ownerID, &photoURLs)

	if err != nil || (role != "admin" && ownerID != userID) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Demande de retour introuvable"})
		return
	}

	signed := []string{}
	for _, objectName := range photoURLs {
		url, err := services.GenerateSignedPhotoURL(c.Request.Context(), objectName, 15*time.Minute)
		if err != nil {
			log.Printf("⚠️ Erreur URL signée pour %s: %v", objectName, err)
			continue
		}
		signed = append(signed, url)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"photos": signed},
	})
}
