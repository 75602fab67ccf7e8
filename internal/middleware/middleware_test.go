package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"beautymart_back_end/internal/database"
	"beautymart_back_end/internal/models"
	"beautymart_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// Client Redis sans serveur derrière : la vérification de blacklist
	// échoue proprement et laisse passer le token
	if database.Redis == nil {
		database.Redis = redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	}

	r := gin.New()
	r.GET("/protected", AuthRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString("user_id"),
			"role":    c.GetString("role"),
		})
	})
	r.GET("/admin", AuthRequired(), RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")
	r := setupRouter(t)

	t.Run("sans token", func(t *testing.T) {
		w := doRequest(r, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"unauthorized":true`)
	})

	t.Run("format invalide", func(t *testing.T) {
		w := doRequest(r, "Basic abc123")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token corrompu", func(t *testing.T) {
		w := doRequest(r, "Bearer pas.un.jwt")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signé avec un autre secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "autre-secret")
		token, err := utils.GenerateJWT(models.User{ID: "u1", Email: "a@b.c", Role: "customer"})
		require.NoError(t, err)

		t.Setenv("JWT_SECRET", "secret-de-test")
		w := doRequest(r, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token valide place l'identité dans le context", func(t *testing.T) {
		token, err := utils.GenerateJWT(models.User{ID: "u1", Email: "a@b.c", Role: "customer"})
		require.NoError(t, err)

		w := doRequest(r, "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":"u1"`)
		assert.Contains(t, w.Body.String(), `"role":"customer"`)
	})
}

func TestSubmitReturnRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Client Redis sans serveur derrière : le compteur échoue
	if database.Redis == nil {
		database.Redis = redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	}

	r := gin.New()
	r.POST("/returns",
		func(c *gin.Context) { c.Set("user_id", "u1") },
		SubmitReturnRateLimit(),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) },
	)

	t.Run("redis indisponible laisse passer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/returns", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")
	r := setupRouter(t)

	adminReq := func(role string) *httptest.ResponseRecorder {
		token, err := utils.GenerateJWT(models.User{ID: "u1", Email: "a@b.c", Role: role})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("customer refusé", func(t *testing.T) {
		w := adminReq("customer")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), `"unauthorized":true`)
	})

	t.Run("admin accepté", func(t *testing.T) {
		w := adminReq("admin")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
