// Package save keeps up to MaxSlots save files through gdata. Each slot holds
// a yaml Data payload; an index lists the slots in the order they were made.
package save

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	MaxSlots = 6

	saveObject    = "saves"
	indexProperty = "index"
)

var (
	ErrSlotsFull = errors.New("save: all save slots are used")
	ErrNotFound  = errors.New("save: not found")
)

// Backend is the part of *gdata.Manager the store uses.
type Backend interface {
	ObjectPropExists(objectKey, propKey string) bool
	LoadObjectProp(objectKey, propKey string) ([]byte, error)
	SaveObjectProp(objectKey, propKey string, data []byte) error
}

type Meta struct {
	Name string    `yaml:"name"`
	Date time.Time `yaml:"date"`
}

type Index struct {
	Saves []Meta `yaml:"saves"`
}

type Store struct {
	backend Backend
	now     func() time.Time
}

// Open creates a store in the per-user data directory of appName.
func Open(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("save: open %s: %w", appName, err)
	}
	return NewStore(m), nil
}

func NewStore(backend Backend) *Store {
	return &Store{backend: backend, now: time.Now}
}

func slotName(i int) string {
	return fmt.Sprintf("save%d", i)
}

// Index lists existing saves, oldest first. A missing index is empty.
func (s *Store) Index() (Index, error) {
	var idx Index
	if !s.backend.ObjectPropExists(saveObject, indexProperty) {
		return idx, nil
	}
	data, err := s.backend.LoadObjectProp(saveObject, indexProperty)
	if err != nil {
		return idx, fmt.Errorf("save: load index: %w", err)
	}
	if err := yaml.Unmarshal(data, &idx); err != nil {
		return idx, fmt.Errorf("save: unmarshal index: %w", err)
	}
	return idx, nil
}

// Save writes d into the next free slot and records it in the index.
func (s *Store) Save(d *Data) (Meta, error) {
	idx, err := s.Index()
	if err != nil {
		return Meta{}, err
	}
	if len(idx.Saves) >= MaxSlots {
		return Meta{}, ErrSlotsFull
	}

	meta := Meta{Name: slotName(len(idx.Saves)), Date: s.now().UTC().Truncate(time.Second)}
	d.Date = meta.Date

	payload, err := yaml.Marshal(d)
	if err != nil {
		return Meta{}, fmt.Errorf("save: marshal %s: %w", meta.Name, err)
	}
	if err := s.backend.SaveObjectProp(saveObject, meta.Name, payload); err != nil {
		return Meta{}, fmt.Errorf("save: write %s: %w", meta.Name, err)
	}

	idx.Saves = append(idx.Saves, meta)
	data, err := yaml.Marshal(idx)
	if err != nil {
		return Meta{}, fmt.Errorf("save: marshal index: %w", err)
	}
	if err := s.backend.SaveObjectProp(saveObject, indexProperty, data); err != nil {
		return Meta{}, fmt.Errorf("save: write index: %w", err)
	}
	log.Printf("save: wrote %s", meta.Name)
	return meta, nil
}

// Load reads a slot by name.
func (s *Store) Load(name string) (*Data, error) {
	if !s.backend.ObjectPropExists(saveObject, name) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	payload, err := s.backend.LoadObjectProp(saveObject, name)
	if err != nil {
		return nil, fmt.Errorf("save: load %s: %w", name, err)
	}
	var d Data
	if err := yaml.Unmarshal(payload, &d); err != nil {
		return nil, fmt.Errorf("save: unmarshal %s: %w", name, err)
	}
	return &d, nil
}

// Latest loads the most recent save.
func (s *Store) Latest() (*Data, error) {
	idx, err := s.Index()
	if err != nil {
		return nil, err
	}
	if len(idx.Saves) == 0 {
		return nil, fmt.Errorf("%w: no saves", ErrNotFound)
	}
	return s.Load(idx.Saves[len(idx.Saves)-1].Name)
}
