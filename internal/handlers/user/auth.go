package user

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strings"
	"time"

	"beautymart_back_end/internal/cache"
	"beautymart_back_end/internal/database"
	"beautymart_back_end/internal/middleware"
	"beautymart_back_end/internal/models"
	"beautymart_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/golang-jwt/jwt/v5"
)

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
	User         gin.H  `json:"user"`
}

// generateAuthTokens génère access + refresh tokens et stocke le refresh dans Redis
func generateAuthTokens(user models.User) (*LoginResponse, error) {
	accessToken, err := utils.GenerateJWT(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := utils.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	if err := cache.StoreRefreshToken(user.ID, refreshToken, 30*24*time.Hour); err != nil {
		log.Printf("⚠️ Erreur stockage refresh token: %v", err)
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64((24 * time.Hour).Seconds()),
		TokenType:    "Bearer",
		User: gin.H{
			"user_id": user.ID,
			"email":   user.Email,
			"name":    user.Name,
			"role":    user.Role,
		},
	}, nil
}

// Register crée un compte client local (mot de passe Argon2id)
func Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Données invalides", "details": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	// Vérifier si l'email existe déjà
	lookup, err := database.QueryGetUserByEmail(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur connexion base de données"})
		return
	}

	var existingID gocql.UUID
	if err := lookup.Scan(&existingID); err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Un compte avec cet email existe déjà"})
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur hash mot de passe"})
		return
	}

	userID := gocql.TimeUUID()
	now := time.Now()

	insert, err := database.QueryInsertUser(userID, email, hashedPassword, input.Name, "customer", "local", "", now, now)
	if err == nil {
		err = insert.Exec()
	}
	if err != nil {
		log.Printf("❌ Erreur création utilisateur: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur création compte"})
		return
	}

	if byEmail, err := database.QueryInsertUserByEmail(email, userID); err == nil {
		if err := byEmail.Exec(); err != nil {
			log.Printf("⚠️ Erreur index users_by_email: %v", err)
		}
	}

	log.Printf("✅ Compte créé: %s (%s)", email, userID)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"user_id": userID.String(),
			"email":   email,
			"name":    input.Name,
			"role":    "customer",
		},
	})
}

// Login authentifie un client local et renvoie access + refresh tokens
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Données invalides"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur connexion base de données"})
		return
	}

	lookup, err := database.QueryGetUserByEmail(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur connexion base de données"})
		return
	}

	var userID gocql.UUID
	if err := lookup.Scan(&userID); err != nil {
		middleware.RecordFailedLogin(c, email)
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Email ou mot de passe incorrect"})
		return
	}

	var storedEmail, password, name, role, provider string
	err = session.Query(`
		SELECT email, password, name, role, provider FROM users WHERE user_id = ?
	`, userID).Scan(&storedEmail, &password, &name, &role, &provider)

	if err != nil || provider != "local" {
		middleware.RecordFailedLogin(c, email)
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Email ou mot de passe incorrect"})
		return
	}

	ok, err := utils.VerifyPassword(input.Password, password)
	if err != nil || !ok {
		middleware.RecordFailedLogin(c, email)
		utils.LogFailedAction(c, utils.ACTION_LOGIN_FAILED, utils.RESOURCE_AUTH, email, "mot de passe incorrect")
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Email ou mot de passe incorrect"})
		return
	}

	// Migration transparente bcrypt → Argon2 au fil des connexions
	if utils.IsBcryptHash(password) {
		if newHash, err := utils.HashPassword(input.Password); err == nil {
			session.Query(`UPDATE users SET password = ?, updated_at = ? WHERE user_id = ?`,
				newHash, time.Now(), userID).Exec()
		}
	}

	middleware.ResetLoginAttempts(c, email)

	user := models.User{
		ID:    userID.String(),
		Email: storedEmail,
		Name:  name,
		Role:  role,
	}

	tokens, err := generateAuthTokens(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur génération token"})
		return
	}

	utils.LogAction(c, utils.ACTION_LOGIN_SUCCESS, utils.RESOURCE_AUTH, userID.String(), nil, nil)
	log.Printf("✅ Connexion: %s", email)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    tokens,
	})
}

// RefreshAccessToken échange un refresh token valide contre un nouvel access token
func RefreshAccessToken(c *gin.Context) {
	var req struct {
		UserID       string `json:"user_id" binding:"required"`
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Refresh token manquant"})
		return
	}

	stored, err := cache.GetRefreshToken(req.UserID)
	if err != nil || !refreshTokenMatches(stored, req.RefreshToken) {
		c.JSON(http.StatusUnauthorized, gin.H{"unauthorized": true})
		return
	}

	user, err := cache.GetUserFromCache(req.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"unauthorized": true})
		return
	}

	accessToken, err := utils.GenerateJWT(*user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"access_token": accessToken,
			"expires_in":   int64((24 * time.Hour).Seconds()),
			"token_type":   "Bearer",
		},
	})
}

// refreshTokenMatches compare en temps constant, comme la vérification Argon2
func refreshTokenMatches(stored, provided string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(provided)) == 1
}

// Logout supprime le refresh token et blackliste l'access token courant
func Logout(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"unauthorized": true})
		return
	}

	if err := cache.DeleteRefreshToken(userID); err != nil {
		log.Printf("⚠️ Erreur suppression refresh token: %v", err)
	}

	// Blacklister le jti jusqu'à l'expiration naturelle du token
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
		if err == nil {
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				jti, _ := claims["jti"].(string)
				exp, _ := claims["exp"].(float64)
				if jti != "" {
					remaining := time.Until(time.Unix(int64(exp), 0))
					if remaining > 0 {
						if err := cache.BlacklistToken(jti, remaining); err != nil {
							log.Printf("⚠️ Erreur blacklist token: %v", err)
						}
					}
				}
			}
		}
	}

	utils.LogAction(c, utils.ACTION_LOGOUT, utils.RESOURCE_AUTH, userID, nil, nil)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"message": "Déconnexion réussie"},
	})
}

// Me renvoie le profil du client connecté (depuis le cache si possible)
func Me(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"unauthorized": true})
		return
	}

	user, err := cache.GetUserFromCache(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Utilisateur introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}
