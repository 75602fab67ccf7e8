package product

import (
	"log"
	"net/http"

	"beautymart_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

// SearchProducts recherche dans le catalogue via Elasticsearch
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Paramètre q manquant"})
		return
	}

	results, err := services.SearchProducts(query)
	if err != nil {
		log.Printf("❌ Erreur recherche produits: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur recherche"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    results,
		"count":   len(results),
	})
}
