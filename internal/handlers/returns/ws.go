package ret

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"beautymart_back_end/internal/cache"
	"beautymart_back_end/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// ReturnsQueueWebSocket pousse en temps réel les événements de la file retours
// (nouvelle demande, changement de statut) vers le guichet admin
func ReturnsQueueWebSocket(c *gin.Context) {
	if c.GetString("role") != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Accès réservé aux administrateurs"})
		return
	}

	// Upgrade vers WebSocket
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()

	// S'abonner au canal Redis de la file retours
	pubsub := database.Redis.Subscribe(ctx, cache.ReturnsQueueChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()

	// Envoyer un message de connexion
	conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "File retours en temps réel activée",
	})

	// Boucle d'écoute
	for {
		select {
		case msg := <-ch:
			var event map[string]string
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("⚠️ Événement file retours illisible: %v", err)
				continue
			}

			if err := conn.WriteJSON(map[string]interface{}{
				"type":      "queue_event",
				"event":     event["event"],
				"return_id": event["return_id"],
			}); err != nil {
				log.Printf("❌ Erreur envoi WebSocket: %v", err)
				return
			}
		case <-time.After(30 * time.Second):
			// Ping pour garder la connexion active
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
