package telemetry

import "time"

type EventType string

const (
	EventReportSubmitted  EventType = "report_submitted"
	EventResearchReset    EventType = "research_reset"
	EventWebhookDelivered EventType = "webhook_delivered"
	EventWebhookSkipped   EventType = "webhook_skipped"
	EventWebhookFailed    EventType = "webhook_failed"
)

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
