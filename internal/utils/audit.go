package utils

import (
	"encoding/json"
	"log"
	"time"

	"beautymart_back_end/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// Actions d'audit du guichet retours
const (
	ACTION_RETURN_SUBMIT        = "return.submit"
	ACTION_RETURN_STATUS_CHANGE = "return.status_change"
	ACTION_RETURN_FORCE_STATUS  = "return.force_status"
	ACTION_RETURN_STRIPE_REFUND = "return.stripe_refund"

	ACTION_PRODUCT_CREATE = "product.create"
	ACTION_PRODUCT_UPDATE = "product.update"
	ACTION_PRODUCT_DELETE = "product.delete"

	ACTION_LOGIN_SUCCESS = "auth.login_success"
	ACTION_LOGIN_FAILED  = "auth.login_failed"
	ACTION_LOGOUT        = "auth.logout"
)

// Resources d'audit
const (
	RESOURCE_RETURN  = "return"
	RESOURCE_PRODUCT = "product"
	RESOURCE_AUTH    = "auth"
)

// LogAction enregistre une action dans les logs d'audit (asynchrone)
func LogAction(c *gin.Context, action, resource string, resourceID string, oldValue, newValue interface{}) {
	userID := c.GetString("user_id")
	email := c.GetString("email")
	ip := c.ClientIP()

	go func() {
		if err := logActionAsync(userID, email, ip, action, resource, resourceID, oldValue, newValue, true, ""); err != nil {
			log.Printf("❌ Erreur enregistrement log audit: %v", err)
		}
	}()
}

// LogFailedAction enregistre une action échouée dans les logs d'audit
func LogFailedAction(c *gin.Context, action, resource, resourceID, errorMsg string) {
	userID := c.GetString("user_id")
	email := c.GetString("email")
	ip := c.ClientIP()

	go func() {
		if err := logActionAsync(userID, email, ip, action, resource, resourceID, nil, nil, false, errorMsg); err != nil {
			log.Printf("❌ Erreur enregistrement log audit: %v", err)
		}
	}()
}

// logActionAsync écrit la ligne d'audit dans ScyllaDB
func logActionAsync(userID, email, ip, action, resource, resourceID string, oldValue, newValue interface{}, success bool, errorMsg string) error {
	session, err := database.GetUsersSession()
	if err != nil {
		return err
	}

	var oldValueStr, newValueStr string
	if oldValue != nil {
		if oldBytes, err := json.Marshal(oldValue); err == nil {
			oldValueStr = string(oldBytes)
		}
	}
	if newValue != nil {
		if newBytes, err := json.Marshal(newValue); err == nil {
			newValueStr = string(newBytes)
		}
	}

	return session.Query(`
		INSERT INTO audit_logs (log_id, user_id, user_email, ip_address, action, resource, resource_id, old_value, new_value, success, error_message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, gocql.TimeUUID(), userID, email, ip, action, resource, resourceID,
		oldValueStr, newValueStr, success, errorMsg, time.Now()).Exec()
}
