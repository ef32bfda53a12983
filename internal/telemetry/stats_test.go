package telemetry

import (
	"testing"
	"time"
)

func TestCalculateStats(t *testing.T) {
	repo := NewMemoryRepository()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(repo.RecordEvent(EventReportSubmitted, EventMetadata{"poi": "poi1", "objective": "catch", "reward": "stardust"}))
	must(repo.RecordEvent(EventReportSubmitted, EventMetadata{"poi": "poi2", "objective": "catch", "reward": "encounter"}))
	must(repo.RecordEvent(EventWebhookDelivered, EventMetadata{"webhook": "wh1"}))
	must(repo.RecordEvent(EventWebhookDelivered, EventMetadata{"webhook": "wh1"}))
	must(repo.RecordEvent(EventWebhookFailed, EventMetadata{"webhook": "wh2"}))
	must(repo.RecordEvent(EventWebhookSkipped, EventMetadata{"webhook": "wh3"}))
	must(repo.RecordEvent(EventResearchReset, EventMetadata{}))

	since := time.Now().Add(-time.Minute)
	events, err := repo.GetEvents(since, nil)
	if err != nil {
		t.Fatalf("GetEvents: %v", err)
	}
	stats, err := CalculateStats(events, since)
	if err != nil {
		t.Fatalf("CalculateStats: %v", err)
	}

	if stats.Reports != 2 {
		t.Errorf("reports = %d, want 2", stats.Reports)
	}
	if stats.ReportsByKind["catch"] != 2 {
		t.Errorf("reports by kind catch = %d, want 2", stats.ReportsByKind["catch"])
	}
	if stats.Deliveries != 2 || stats.ByWebhook["wh1"] != 2 {
		t.Errorf("deliveries = %d byWebhook[wh1] = %d", stats.Deliveries, stats.ByWebhook["wh1"])
	}
	if stats.Failures != 1 || stats.FailuresByHook["wh2"] != 1 {
		t.Errorf("failures = %d byHook[wh2] = %d", stats.Failures, stats.FailuresByHook["wh2"])
	}
	if stats.ResearchResets != 1 {
		t.Errorf("research resets = %d", stats.ResearchResets)
	}
	if stats.EventCounts[EventWebhookSkipped] != 1 {
		t.Errorf("skipped count = %d", stats.EventCounts[EventWebhookSkipped])
	}
}

func TestGetEventsFilters(t *testing.T) {
	repo := NewMemoryRepository()
	if err := repo.RecordEvent(EventReportSubmitted, EventMetadata{}); err != nil {
		t.Fatal(err)
	}
	if err := repo.RecordEvent(EventWebhookDelivered, EventMetadata{}); err != nil {
		t.Fatal(err)
	}

	events, err := repo.GetEvents(time.Time{}, []EventType{EventWebhookDelivered})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Type != EventWebhookDelivered {
		t.Fatalf("type filter failed: %v", events)
	}

	events, err = repo.GetEvents(time.Now().Add(time.Hour), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 0 {
		t.Fatalf("time filter failed: %v", events)
	}

	if err := repo.Clear(); err != nil {
		t.Fatal(err)
	}
	events, _ = repo.GetEvents(time.Time{}, nil)
	if len(events) != 0 {
		t.Fatal("clear left events behind")
	}
}
