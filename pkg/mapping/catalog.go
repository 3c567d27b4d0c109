package mapping

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goccy/go-json"

	"github.com/cadgraph/cadgraph.go/pkg/models"
)

// Builder returns the mapping of one concrete type.
type Builder func() *Mapping

// Catalog builds mappings on first use and caches them. It is safe for
// concurrent use.
type Catalog struct {
	builders map[models.ObjectType]Builder
	cache    map[models.ObjectType]*Mapping
	mu       sync.RWMutex
}

// NewCatalog returns a catalog holding every built-in definition.
func NewCatalog() *Catalog {
	c := &Catalog{
		builders: make(map[models.ObjectType]Builder, len(definitions)),
		cache:    make(map[models.ObjectType]*Mapping),
	}
	for t, b := range definitions {
		c.builders[t] = b
	}
	return c
}

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// Default returns the process-wide catalog.
func Default() *Catalog {
	defaultCatalogOnce.Do(func() {
		defaultCatalog = NewCatalog()
	})
	return defaultCatalog
}

// Register installs or replaces the builder of t and drops any cached
// mapping.
func (c *Catalog) Register(t models.ObjectType, b Builder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.builders[t] = b
	delete(c.cache, t)
}

// Has reports whether t has a mapping.
func (c *Catalog) Has(t models.ObjectType) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.builders[t]
	return ok
}

// Get returns the mapping of t, building it on first use.
func (c *Catalog) Get(t models.ObjectType) (*Mapping, error) {
	c.mu.RLock()
	m, ok := c.cache[t]
	c.mu.RUnlock()

	if ok {
		return m, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check in case another goroutine built it
	if m, ok := c.cache[t]; ok {
		return m, nil
	}

	b, ok := c.builders[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoMapping, t)
	}
	m = b()
	m.Type = t
	c.cache[t] = m
	return m, nil
}

// Types lists the registered types in ascending order.
func (c *Catalog) Types() []models.ObjectType {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.ObjectType, 0, len(c.builders))
	for t := range c.builders {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

type fieldDescription struct {
	Name      string              `json:"name"`
	Code      int                 `json:"code,omitempty"`
	Codes     []int               `json:"codes,omitempty"`
	Flags     []string            `json:"flags,omitempty"`
	Default   any                 `json:"default,omitempty"`
	CountCode int                 `json:"countCode,omitempty"`
	Elements  []*fieldDescription `json:"elements,omitempty"`
}

type subclassDescription struct {
	Name   string              `json:"name"`
	Fields []*fieldDescription `json:"fields"`
}

type mappingDescription struct {
	Type       string                `json:"type"`
	ObjectName string                `json:"objectName"`
	Subclasses []subclassDescription `json:"subclasses"`
}

func describeField(f *Field) *fieldDescription {
	d := &fieldDescription{
		Name:      f.Name,
		Code:      f.Code,
		Flags:     f.Ref.Names(),
		CountCode: f.CountCode,
	}
	for i := 0; i < f.Codes; i++ {
		d.Codes = append(d.Codes, f.Code+10*i)
	}
	if f.Ref.Has(Optional) && !isNilValue(f.Default) {
		d.Default = f.Default
	}
	for _, e := range f.Elements {
		d.Elements = append(d.Elements, describeField(e))
	}
	return d
}

// Describe renders every registered mapping as indented JSON.
func (c *Catalog) Describe() ([]byte, error) {
	var out []mappingDescription
	for _, t := range c.Types() {
		m, err := c.Get(t)
		if err != nil {
			return nil, err
		}
		md := mappingDescription{Type: t.String(), ObjectName: m.ObjectName}
		for _, s := range m.Subclasses {
			sd := subclassDescription{Name: s.Name, Fields: []*fieldDescription{}}
			for _, f := range s.Fields {
				sd.Fields = append(sd.Fields, describeField(f))
			}
			md.Subclasses = append(md.Subclasses, sd)
		}
		out = append(out, md)
	}
	return json.MarshalIndent(out, "", "  ")
}
