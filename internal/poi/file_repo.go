package poi

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/stevear22/FreeField/internal/taxonomy"
)

type fileState struct {
	POIs map[string]POI `json:"pois"`
}

func newFileState() fileState {
	return fileState{POIs: map[string]POI{}}
}

// FileRepo is a persistent POI repository backed by a single JSON file.
type FileRepo struct {
	mu   sync.RWMutex
	path string
	s    fileState
}

func NewFileRepo(dataDir string) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	r := &FileRepo{
		path: filepath.Join(dataDir, "pois.json"),
		s:    newFileState(),
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileRepo) load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.s = newFileState()
			return nil
		}
		return err
	}
	var loaded fileState
	if err := json.Unmarshal(b, &loaded); err != nil {
		return err
	}
	if loaded.POIs == nil {
		loaded.POIs = map[string]POI{}
	}
	r.s = loaded
	return nil
}

func (r *FileRepo) saveLocked() error {
	b, err := json.MarshalIndent(r.s, "", "  ")
	if err != nil {
		return err
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, r.path)
}

func (r *FileRepo) Get(id string) (POI, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.s.POIs[id]
	if !ok {
		return POI{}, ErrNotFound
	}
	return p, nil
}

func (r *FileRepo) List() ([]POI, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]POI, 0, len(r.s.POIs))
	for _, p := range r.s.POIs {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *FileRepo) Upsert(p POI) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.Objective.Kind == "" {
		p.Objective = taxonomy.Instance{Kind: UnknownResearch, Params: taxonomy.Params{}}
	}
	if p.Reward.Kind == "" {
		p.Reward = taxonomy.Instance{Kind: UnknownResearch, Params: taxonomy.Params{}}
	}
	r.s.POIs[p.ID] = p
	return r.saveLocked()
}

func (r *FileRepo) UpdateResearch(id string, objective, reward taxonomy.Instance, user string, at time.Time) (POI, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.s.POIs[id]
	if !ok {
		return POI{}, ErrNotFound
	}
	updated := p
	updated.Objective = objective
	updated.Reward = reward
	updated.LastUser = user
	updated.LastUpdated = at
	r.s.POIs[id] = updated
	if err := r.saveLocked(); err != nil {
		// Keep memory consistent with disk on a failed commit.
		r.s.POIs[id] = p
		return POI{}, err
	}
	return updated, nil
}

func (r *FileRepo) ClearResearch() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.s.POIs {
		p.Objective = taxonomy.Instance{Kind: UnknownResearch, Params: taxonomy.Params{}}
		p.Reward = taxonomy.Instance{Kind: UnknownResearch, Params: taxonomy.Params{}}
		r.s.POIs[id] = p
	}
	return r.saveLocked()
}
