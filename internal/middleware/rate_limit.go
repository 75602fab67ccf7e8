package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"beautymart_back_end/internal/cache"
	"beautymart_back_end/internal/database"

	"github.com/gin-gonic/gin"
)

const (
	// Limites par endpoint
	LoginMaxAttempts  = 5
	SubmitMaxRequests = 5 // Demandes de retour par heure et par client

	// Durées de cooldown
	LoginCooldown = 15 * time.Minute
	SubmitWindow  = 1 * time.Hour
)

// LoginRateLimit limite les tentatives de connexion par email
func LoginRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Lire le body sans le consommer
		bodyBytes, _ := io.ReadAll(c.Request.Body)

		var input struct {
			Email string `json:"email"`
		}

		if err := json.Unmarshal(bodyBytes, &input); err != nil || input.Email == "" {
			c.Next()
			return
		}

		// Remettre le body pour les handlers suivants
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		ctx := c.Request.Context()
		key := "login_attempts:" + input.Email

		// Vérifier si l'utilisateur est en cooldown
		cooldownKey := "login_cooldown:" + input.Email
		if database.Redis.Exists(ctx, cooldownKey).Val() > 0 {
			ttl := database.Redis.TTL(ctx, cooldownKey).Val()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de tentatives échouées. Réessayez dans %d minutes", int(ttl.Minutes())),
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		attempts, _ := database.Redis.Get(ctx, key).Int()
		if attempts >= LoginMaxAttempts {
			database.Redis.Set(ctx, cooldownKey, "1", LoginCooldown)
			database.Redis.Del(ctx, key)

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de tentatives échouées. Compte bloqué pendant %d minutes", int(LoginCooldown.Minutes())),
				"retry_after": int(LoginCooldown.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RecordFailedLogin incrémente le compteur de tentatives échouées
func RecordFailedLogin(c *gin.Context, email string) {
	if _, err := cache.IncrementRateLimit("login_attempts:"+email, LoginCooldown); err != nil {
		log.Printf("⚠️ Erreur compteur tentatives login %s: %v", email, err)
	}
}

// ResetLoginAttempts remet le compteur à zéro après un login réussi
func ResetLoginAttempts(c *gin.Context, email string) {
	ctx := c.Request.Context()
	database.Redis.Del(ctx, "login_attempts:"+email)
}

// SubmitReturnRateLimit limite les soumissions de demandes de retour par client
func SubmitReturnRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.Next()
			return
		}

		count, err := cache.IncrementRateLimit("return_submit:"+userID, SubmitWindow)
		if err != nil {
			// Redis indisponible : on laisse passer plutôt que de bloquer le portail
			c.Next()
			return
		}

		if count > SubmitMaxRequests {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": fmt.Sprintf("Trop de demandes de retour. Maximum %d par heure", SubmitMaxRequests),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
