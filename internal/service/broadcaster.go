package service

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToAdmins(msgType string, payload interface{})
}

// Admin event types
const (
	EventLeadCreated = "lead_created"
	EventLeadUpdated = "lead_updated"
)
