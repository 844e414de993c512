package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type RecommendationsEvent struct {
	Type      string `json:"type"`
	ProfileID string `json:"profile_id"`
	Timestamp string `json:"timestamp"`
}

type CatalogEvent struct {
	Type      string `json:"type"`
	Version   int64  `json:"version"`
	Timestamp string `json:"timestamp"`
}

// HubNotifier adapts the hub to the usecase layer's Notifier interface.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) RecommendationsRefreshed(profileID uuid.UUID) {
	if n == nil || n.hub == nil || profileID == uuid.Nil {
		return
	}
	evt := RecommendationsEvent{
		Type:      "recommendations_refreshed",
		ProfileID: profileID.String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Send(profileID, b)
}

func (n *HubNotifier) CatalogUpdated(version int64) {
	if n == nil || n.hub == nil {
		return
	}
	evt := CatalogEvent{
		Type:      "catalog_updated",
		Version:   version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Send(uuid.Nil, b)
}
