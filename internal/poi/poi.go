package poi

import (
	"errors"
	"time"

	"github.com/stevear22/FreeField/internal/taxonomy"
)

var ErrNotFound = errors.New("poi not found")

// UnknownResearch is the placeholder kind a POI carries before anyone has
// reported field research on it, and again after a research reset.
const UnknownResearch = "unknown"

// POI is one point of interest on the map.
type POI struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Latitude    float64           `json:"latitude"`
	Longitude   float64           `json:"longitude"`
	Objective   taxonomy.Instance `json:"objective"`
	Reward      taxonomy.Instance `json:"reward"`
	LastUpdated time.Time         `json:"lastUpdated"`
	LastUser    string            `json:"lastUser,omitempty"`
}

// Repo is the POI store. UpdateResearch must be atomic: either the POI
// exists and the research committed, or nothing changed.
type Repo interface {
	Get(id string) (POI, error)
	List() ([]POI, error)
	Upsert(p POI) error
	UpdateResearch(id string, objective, reward taxonomy.Instance, user string, at time.Time) (POI, error)
	ClearResearch() error
}
