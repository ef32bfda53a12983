package telemetry

import (
	"encoding/json"
	"time"
)

type Stats struct {
	Since          string            `json:"since"`
	EventCounts    map[EventType]int `json:"event_counts"`
	Reports        int               `json:"reports"`
	ReportsByKind  map[string]int    `json:"reports_by_kind"`
	Deliveries     int               `json:"deliveries"`
	Failures       int               `json:"failures"`
	ByWebhook      map[string]int    `json:"deliveries_by_webhook"`
	FailuresByHook map[string]int    `json:"failures_by_webhook"`
	ResearchResets int               `json:"research_resets"`
}

// CalculateStats aggregates report and delivery counters from events.
func CalculateStats(events []Event, since time.Time) (Stats, error) {
	stats := Stats{
		Since:          since.UTC().Format(time.RFC3339),
		EventCounts:    make(map[EventType]int),
		ReportsByKind:  make(map[string]int),
		ByWebhook:      make(map[string]int),
		FailuresByHook: make(map[string]int),
	}

	for _, event := range events {
		stats.EventCounts[event.Type]++

		var metadata EventMetadata
		if err := json.Unmarshal([]byte(event.Metadata), &metadata); err != nil {
			continue
		}

		switch event.Type {
		case EventReportSubmitted:
			stats.Reports++
			if kind, ok := metadata["objective"].(string); ok {
				stats.ReportsByKind[kind]++
			}
		case EventWebhookDelivered:
			stats.Deliveries++
			if id, ok := metadata["webhook"].(string); ok {
				stats.ByWebhook[id]++
			}
		case EventWebhookFailed:
			stats.Failures++
			if id, ok := metadata["webhook"].(string); ok {
				stats.FailuresByHook[id]++
			}
		case EventResearchReset:
			stats.ResearchResets++
		}
	}

	return stats, nil
}
