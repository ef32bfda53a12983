package geo

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Point is a WGS84 coordinate pair.
type Point struct {
	Latitude  float64 `yaml:"lat" json:"lat"`
	Longitude float64 `yaml:"lon" json:"lon"`
}

// Fence is a named closed polygon. The final edge from the last vertex back
// to the first is implicit.
type Fence struct {
	Name     string  `yaml:"name" json:"name"`
	Vertices []Point `yaml:"vertices" json:"vertices"`
}

// Contains reports whether the point lies inside the polygon, by ray
// casting against each edge. Points exactly on an edge may fall on either
// side; fences are drawn with margin, so that is acceptable.
func (f Fence) Contains(lat, lon float64) bool {
	n := len(f.Vertices)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi, vj := f.Vertices[i], f.Vertices[j]
		if (vi.Longitude > lon) != (vj.Longitude > lon) {
			cross := (vj.Latitude-vi.Latitude)*(lon-vi.Longitude)/(vj.Longitude-vi.Longitude) + vi.Latitude
			if lat < cross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// Registry resolves fences by name.
type Registry struct {
	fences map[string]Fence
}

func NewRegistry(fences []Fence) *Registry {
	m := make(map[string]Fence, len(fences))
	for _, f := range fences {
		m[f.Name] = f
	}
	return &Registry{fences: m}
}

// LoadRegistry reads a yaml fence list. A missing file yields an empty
// registry, since most installs never define fences.
func LoadRegistry(path string) (*Registry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewRegistry(nil), nil
		}
		return nil, err
	}
	var fences []Fence
	if err := yaml.Unmarshal(b, &fences); err != nil {
		return nil, fmt.Errorf("geofences %s: %w", path, err)
	}
	return NewRegistry(fences), nil
}

// Get returns the named fence.
func (r *Registry) Get(name string) (Fence, bool) {
	f, ok := r.fences[name]
	return f, ok
}
