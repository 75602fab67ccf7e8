package ret

import (
	"log"
	"net/http"

	"beautymart_back_end/internal/cache"
	"beautymart_back_end/internal/database"
	"beautymart_back_end/internal/returns"

	"github.com/gin-gonic/gin"
)

// GetReasonAnalytics agrège la fréquence des raisons de retour (tableau de bord admin).
// Résultat trié par fréquence décroissante puis ordre alphabétique, mis en cache Redis.
func GetReasonAnalytics(c *gin.Context) {
	if counts, ok := cache.GetReasonAnalyticsFromCache(); ok {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    counts,
			"cached":  true,
		})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT reason FROM returns`).Iter()

	var reasons []returns.Reason
	var reason string
	for iter.Scan(&reason) {
		reasons = append(reasons, returns.Reason(reason))
	}

	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur lecture raisons de retour: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur lecture demandes"})
		return
	}

	counts := returns.CountReasons(reasons)
	cache.SetReasonAnalyticsInCache(counts)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    counts,
	})
}
