package presets

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"bess-degradation/internal/model"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var defaultPresets []byte

// Registry is a read-only set of manufacturer presets keyed by lowercase name.
// Build it once at startup and share it; nothing mutates it after construction.
type Registry struct {
	byKey map[string]model.ManufacturerPreset
	keys  []string
}

type presetFile struct {
	Presets []model.ManufacturerPreset `yaml:"presets"`
}

// New copies presets into a registry. Keys are lowercased and must be unique.
func New(presets []model.ManufacturerPreset) (*Registry, error) {
	r := &Registry{byKey: make(map[string]model.ManufacturerPreset, len(presets))}
	for _, p := range presets {
		key := normalize(p.Key)
		if key == "" {
			return nil, fmt.Errorf("preset %q has no key", p.Name)
		}
		if _, dup := r.byKey[key]; dup {
			return nil, fmt.Errorf("duplicate preset key %q", key)
		}
		p.Key = key
		r.byKey[key] = p
		r.keys = append(r.keys, key)
	}
	sort.Strings(r.keys)
	return r, nil
}

// Parse reads a YAML document with a top-level `presets` list.
func Parse(raw []byte) (*Registry, error) {
	var f presetFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	return New(f.Presets)
}

// LoadFile reads presets from a YAML file.
func LoadFile(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

// Default returns the built-in universal LFP presets.
func Default() *Registry {
	r, err := Parse(defaultPresets)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup resolves a key case-insensitively. A miss is an
// *model.UnknownManufacturerError carrying the closest keys.
func (r *Registry) Lookup(key string) (model.ManufacturerPreset, error) {
	if p, ok := r.byKey[normalize(key)]; ok {
		return p, nil
	}
	return model.ManufacturerPreset{}, &model.UnknownManufacturerError{
		Key:         key,
		Suggestions: r.suggest(normalize(key)),
	}
}

// Keys returns the registered keys in sorted order.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// All returns every preset sorted by key.
func (r *Registry) All() []model.ManufacturerPreset {
	out := make([]model.ManufacturerPreset, 0, len(r.keys))
	for _, k := range r.keys {
		out = append(out, r.byKey[k])
	}
	return out
}

func normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// maxSuggestDistance bounds how far a typo may be from a registered key.
const maxSuggestDistance = 3

func (r *Registry) suggest(key string) []string {
	type cand struct {
		key  string
		dist int
	}
	var cands []cand
	for _, k := range r.keys {
		d := levenshtein(key, k)
		if key != "" && (strings.HasPrefix(k, key) || strings.HasPrefix(key, k)) {
			d = 0
		}
		if d <= maxSuggestDistance {
			cands = append(cands, cand{k, d})
		}
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].dist < cands[j].dist })
	out := make([]string, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.key)
	}
	return out
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}
