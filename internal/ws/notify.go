package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const EventRecommendationsReady = "recommendations.ready"

type RecommendationsReadyEvent struct {
	Type      string `json:"type"`
	ResumeID  string `json:"resume_id"`
	Count     int    `json:"count"`
	Timestamp string `json:"timestamp"`
}

// Notifier pushes recommendation events to a user's open connections.
type Notifier struct {
	hub *Hub
	now func() time.Time
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

func (n *Notifier) NotifyRecommendationsReady(userID uuid.UUID, resumeID uuid.UUID, count int) {
	if n == nil || n.hub == nil || userID == uuid.Nil {
		return
	}

	b, err := json.Marshal(RecommendationsReadyEvent{
		Type:      EventRecommendationsReady,
		ResumeID:  resumeID.String(),
		Count:     count,
		Timestamp: n.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	n.hub.SendToUser(userID, b)
}
