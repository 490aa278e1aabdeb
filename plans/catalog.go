package plans

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Feature is one dashboard entitlement.
type Feature struct {
	Key     string `yaml:"key" json:"key"`
	Label   string `yaml:"label" json:"label"`
	Enabled bool   `yaml:"enabled" json:"enabled"`
	// Limit is an optional quota; nil means unlimited / not applicable.
	Limit *int `yaml:"limit,omitempty" json:"limit,omitempty"`
}

// Content is the payload served by the tailored content feed.
type Content struct {
	Summary        string         `yaml:"summary" json:"summary"`
	DataBasic      []string       `yaml:"data_basic" json:"data_basic"`
	DataPro        []string       `yaml:"data_pro,omitempty" json:"data_pro,omitempty"`
	DataEnterprise []string       `yaml:"data_enterprise,omitempty" json:"data_enterprise,omitempty"`
	Analytics      map[string]any `yaml:"analytics,omitempty" json:"analytics,omitempty"`
}

// Entry is everything the catalog knows about one tier.
type Entry struct {
	Tier     Tier      `yaml:"tier"`
	Features []Feature `yaml:"features"`
	Content  Content   `yaml:"content"`
}

type catalogFile struct {
	Tiers []Entry `yaml:"tiers"`
}

// Catalog is an immutable, ordered tier table. It is safe for concurrent use.
type Catalog struct {
	entries []Entry
	index   map[Tier]int
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalogYAML)
}

// Load reads a catalog from path, or returns the embedded default when path is
// empty. A path that is set but unreadable is an error: the operator asked for
// that file explicitly.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plans catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("plans catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode plans catalog: %w", err)
	}
	if len(f.Tiers) == 0 {
		return nil, errors.New("plans catalog defines no tiers")
	}

	c := &Catalog{
		entries: make([]Entry, 0, len(f.Tiers)),
		index:   make(map[Tier]int, len(f.Tiers)),
	}
	for i, e := range f.Tiers {
		e.Tier = Normalize(string(e.Tier))
		if e.Tier == "" {
			return nil, fmt.Errorf("plans catalog entry %d has no tier name", i)
		}
		if _, dup := c.index[e.Tier]; dup {
			return nil, fmt.Errorf("plans catalog lists tier %q twice", e.Tier)
		}
		if e.Content.DataBasic == nil {
			e.Content.DataBasic = []string{}
		}
		// entries are served as JSON; yaml.v3 turns non-string mapping keys
		// into map[interface{}]interface{}, which encoding/json refuses
		if _, err := json.Marshal(e.Content); err != nil {
			return nil, fmt.Errorf("plans catalog tier %q has content that cannot be served as JSON: %w", e.Tier, err)
		}
		c.index[e.Tier] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c, nil
}

// DefaultTier is the lowest tier, assigned when signup does not ask for one.
func (c *Catalog) DefaultTier() Tier {
	return c.entries[0].Tier
}

// Tiers lists the tier names, lowest first.
func (c *Catalog) Tiers() []Tier {
	out := make([]Tier, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Tier
	}
	return out
}

// Valid reports whether t is a catalog tier.
func (c *Catalog) Valid(t Tier) bool {
	_, ok := c.index[t]
	return ok
}

// Resolve normalizes raw and checks it against the catalog. The error wraps
// ErrInvalidTier and names the allowed set.
func (c *Catalog) Resolve(raw string) (Tier, error) {
	t := Normalize(raw)
	if !c.Valid(t) {
		return "", fmt.Errorf("%w; allowed: %s", ErrInvalidTier, c.allowed())
	}
	return t, nil
}

// Lookup returns a copy of the entry for t.
func (c *Catalog) Lookup(t Tier) (Entry, bool) {
	i, ok := c.index[t]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i].clone(), true
}

func (c *Catalog) allowed() string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = string(e.Tier)
	}
	return strings.Join(names, ", ")
}

func (e Entry) clone() Entry {
	out := Entry{
		Tier:     e.Tier,
		Features: make([]Feature, len(e.Features)),
		Content: Content{
			Summary:        e.Content.Summary,
			DataBasic:      slices.Clone(e.Content.DataBasic),
			DataPro:        slices.Clone(e.Content.DataPro),
			DataEnterprise: slices.Clone(e.Content.DataEnterprise),
		},
	}
	for i, f := range e.Features {
		if f.Limit != nil {
			limit := *f.Limit
			f.Limit = &limit
		}
		out.Features[i] = f
	}
	if e.Content.Analytics != nil {
		out.Content.Analytics = cloneValue(e.Content.Analytics).(map[string]any)
	}
	return out
}

// cloneValue deep-copies the maps and slices yaml.v3 produces for free-form data.
func cloneValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(x))
		for k, val := range x {
			m[k] = cloneValue(val)
		}
		return m
	case []any:
		s := make([]any, len(x))
		for i, val := range x {
			s[i] = cloneValue(val)
		}
		return s
	default:
		return v
	}
}
