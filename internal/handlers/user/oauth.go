package user

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"beautymart_back_end/internal/auth"
	"beautymart_back_end/internal/config"
	"beautymart_back_end/internal/database"
	"beautymart_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"github.com/markbates/goth/gothic"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type ctxKey string

const providerKey ctxKey = "provider"

// BeginAuth démarre le flux OAuth web (redirection vers le provider)
func BeginAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Aucun provider spécifié"})
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), providerKey, provider),
	)

	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// CallbackAuth finalise le flux OAuth web et renvoie les tokens du portail
func CallbackAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Aucun provider spécifié"})
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), providerKey, provider),
	)

	userInfo, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	user, err := findOrCreateOAuthUser(provider, userInfo.UserID, userInfo.Email, userInfo.Name)
	if err != nil {
		log.Printf("❌ Erreur upsert utilisateur OAuth %s: %v", userInfo.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur enregistrement utilisateur"})
		return
	}

	tokens, err := generateAuthTokens(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tokens,
	})
}

// GetGoogleAuthURL renvoie l'URL d'autorisation Google et le state anti-CSRF
// que le front renvoie ensuite avec le code d'autorisation
func GetGoogleAuthURL(c *gin.Context) {
	provider := &auth.OAuthProvider{
		Name:   "google",
		Config: config.GoogleOAuthConfig(),
	}

	state := uuid.NewString()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"url":   provider.GetAuthURL(state),
			"state": state,
		},
	})
}

// ExchangeGoogleCode échange un code d'autorisation Google contre les tokens
// du portail (flux des applis mobiles, sans session navigateur)
func ExchangeGoogleCode(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Code manquant"})
		return
	}

	provider := &auth.OAuthProvider{
		Name:   "google",
		Config: config.GoogleOAuthConfig(),
	}

	token, err := provider.Exchange(c.Request.Context(), req.Code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Code d'autorisation invalide"})
		return
	}

	info, err := provider.FetchUserInfo(c.Request.Context(), token, googleUserInfoURL)
	if err != nil {
		log.Printf("❌ Erreur userinfo Google: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Erreur récupération profil Google"})
		return
	}

	user, err := findOrCreateOAuthUser("google", info.ID, info.Email, info.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur enregistrement utilisateur"})
		return
	}

	tokens, err := generateAuthTokens(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tokens,
	})
}

// findOrCreateOAuthUser rattache un profil provider à un compte existant
// (même email) ou crée un compte customer
func findOrCreateOAuthUser(provider, providerID, email, name string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	session, err := database.GetUsersSession()
	if err != nil {
		return models.User{}, err
	}

	lookup, err := database.QueryGetUserByEmail(email)
	if err != nil {
		return models.User{}, err
	}

	var userID gocql.UUID
	err = lookup.Scan(&userID)
	if err == nil {
		var storedName, role string
		err = session.Query(`SELECT name, role FROM users WHERE user_id = ?`, userID).
			Scan(&storedName, &role)
		if err != nil {
			return models.User{}, err
		}
		return models.User{
			ID:       userID.String(),
			Email:    email,
			Name:     storedName,
			Role:     role,
			Provider: provider,
		}, nil
	}

	userID = gocql.TimeUUID()
	now := time.Now()

	insert, err := database.QueryInsertUser(userID, email, "", name, "customer", provider, providerID, now, now)
	if err != nil {
		return models.User{}, err
	}
	if err := insert.Exec(); err != nil {
		return models.User{}, err
	}

	if byEmail, err := database.QueryInsertUserByEmail(email, userID); err == nil {
		if err := byEmail.Exec(); err != nil {
			log.Printf("⚠️ Erreur index users_by_email: %v", err)
		}
	}

	log.Printf("✅ Compte OAuth créé: %s (%s via %s)", email, userID, provider)

	return models.User{
		ID:       userID.String(),
		Email:    email,
		Name:     name,
		Role:     "customer",
		Provider: provider,
	}, nil
}
