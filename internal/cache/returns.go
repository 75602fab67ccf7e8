package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"beautymart_back_end/internal/database"
	"beautymart_back_end/internal/returns"
)

const (
	ReturnsAnalyticsKey = "returns:analytics"
	ReturnsAnalyticsTTL = 5 * time.Minute

	// Canal pub/sub de la file admin (websocket temps réel)
	ReturnsQueueChannel = "returns:queue"
)

// GetReasonAnalyticsFromCache récupère les analytics de raisons depuis Redis
func GetReasonAnalyticsFromCache() ([]returns.ReasonCount, bool) {
	ctx := context.Background()

	data, err := database.Redis.Get(ctx, ReturnsAnalyticsKey).Result()
	if err != nil {
		return nil, false
	}

	var counts []returns.ReasonCount
	if err := json.Unmarshal([]byte(data), &counts); err != nil {
		return nil, false
	}
	return counts, true
}

// SetReasonAnalyticsInCache met en cache les analytics de raisons
func SetReasonAnalyticsInCache(counts []returns.ReasonCount) {
	ctx := context.Background()

	data, err := json.Marshal(counts)
	if err != nil {
		return
	}
	database.Redis.Set(ctx, ReturnsAnalyticsKey, data, ReturnsAnalyticsTTL)
}

// InvalidateReasonAnalytics invalide le cache analytics
// (appelé à chaque soumission ou transition de statut)
func InvalidateReasonAnalytics() {
	ctx := context.Background()
	database.Redis.Del(ctx, ReturnsAnalyticsKey)
}

// PublishReturnsQueueEvent notifie la file admin d'un changement
// (nouvelle demande ou transition de statut)
func PublishReturnsQueueEvent(event string, returnID string) {
	ctx := context.Background()

	payload, _ := json.Marshal(map[string]string{
		"event":     event,
		"return_id": returnID,
	})

	if err := database.Redis.Publish(ctx, ReturnsQueueChannel, payload).Err(); err != nil {
		log.Printf("⚠️ Erreur publication événement file retours: %v", err)
	}
}
