package poi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/stevear22/FreeField/internal/identity"
	"github.com/stevear22/FreeField/internal/taxonomy"
	"github.com/stevear22/FreeField/internal/telemetry"
	"github.com/stevear22/FreeField/internal/webhook"
)

// Handler serves the POI report surface. A successful report commits the
// research to storage, answers the request, and only then fans out to
// webhooks; dispatch can never change an already-written response.
type Handler struct {
	repo       Repo
	validator  *taxonomy.Validator
	resolver   *taxonomy.Resolver
	dispatcher *webhook.Dispatcher
	telemetry  telemetry.Repository
	logger     *log.Logger
}

func NewHandler(repo Repo, validator *taxonomy.Validator, resolver *taxonomy.Resolver, dispatcher *webhook.Dispatcher, tel telemetry.Repository, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		repo:       repo,
		validator:  validator,
		resolver:   resolver,
		dispatcher: dispatcher,
		telemetry:  tel,
		logger:     logger,
	}
}

func (h *Handler) record(eventType telemetry.EventType, metadata telemetry.EventMetadata) {
	if h.telemetry == nil {
		return
	}
	if err := h.telemetry.RecordEvent(eventType, metadata); err != nil {
		h.logger.Printf("telemetry: record %s: %v", eventType, err)
	}
}

type reportRequest struct {
	ID        string            `json:"id"`
	Objective taxonomy.Instance `json:"objective"`
	Reward    taxonomy.Instance `json:"reward"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// Report handles POST /api/poi/report.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "malformed request body"})
		return
	}
	if !h.validator.ValidateObjective(req.Objective.Kind, req.Objective.Params) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid objective"})
		return
	}
	if !h.validator.ValidateReward(req.Reward.Kind, req.Reward.Params) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid reward"})
		return
	}

	objective := taxonomy.Instance{Kind: req.Objective.Kind, Params: h.validator.Normalize(req.Objective.Params)}
	reward := taxonomy.Instance{Kind: req.Reward.Kind, Params: h.validator.Normalize(req.Reward.Params)}

	reporter, _ := identity.FromContext(r.Context())
	reportedAt := time.Now().UTC()

	updated, err := h.repo.UpdateResearch(req.ID, objective, reward, reporter.Name, reportedAt)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]any{"error": "unknown poi"})
			return
		}
		h.logger.Printf("poi %s: commit research: %v", req.ID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "storage failure"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"poi": updated})

	h.record(telemetry.EventReportSubmitted, telemetry.EventMetadata{
		"poi":       updated.ID,
		"objective": objective.Kind,
		"reward":    reward.Kind,
	})

	if h.dispatcher != nil {
		// Detached from the request context: a client hanging up must not
		// cancel deliveries already owed to other sinks.
		results := h.dispatcher.Dispatch(context.Background(), webhook.Event{
			POIName:    updated.Name,
			Latitude:   updated.Latitude,
			Longitude:  updated.Longitude,
			Objective:  objective,
			Reward:     reward,
			Reporter:   reporter.Name,
			ReportedAt: reportedAt,
		})
		for _, res := range results {
			switch {
			case res.Err != nil:
				h.record(telemetry.EventWebhookFailed, telemetry.EventMetadata{"webhook": res.ID})
			case res.Skipped:
				h.record(telemetry.EventWebhookSkipped, telemetry.EventMetadata{"webhook": res.ID})
			default:
				h.record(telemetry.EventWebhookDelivered, telemetry.EventMetadata{"webhook": res.ID})
			}
		}
	}
}

// List handles GET /api/poi/list.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	pois, err := h.repo.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pois": pois})
}

// ResetResearch handles POST /api/research/reset: every POI reverts to
// unknown research and the species name cache is invalidated.
func (h *Handler) ResetResearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := h.repo.ClearResearch(); err != nil {
		h.logger.Printf("research reset: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "storage failure"})
		return
	}
	if h.resolver != nil {
		h.resolver.InvalidateSpecies()
	}
	h.record(telemetry.EventResearchReset, telemetry.EventMetadata{})
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
