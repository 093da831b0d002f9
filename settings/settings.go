package settings

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

type WindowSettings struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type GridSettings struct {
	Snap bool    `yaml:"snap"`
	Size float64 `yaml:"size"`
}

type DragSettings struct {
	MinDistance    float64 `yaml:"min_distance"`
	PreventOverlap bool    `yaml:"prevent_overlap"`
	// Bounded limits drags to the visible canvas area.
	Bounded bool `yaml:"bounded"`
}

type PaletteEntry struct {
	Type   string  `yaml:"type"`
	Label  string  `yaml:"label"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Settings is the user-editable configuration file.
type Settings struct {
	Window   WindowSettings `yaml:"window"`
	Grid     GridSettings   `yaml:"grid"`
	Drag     DragSettings   `yaml:"drag"`
	DropRule string         `yaml:"drop_rule"`
	Palette  []PaletteEntry `yaml:"palette"`
}

func Default() Settings {
	return Settings{
		Window: WindowSettings{Width: 1280, Height: 800, Title: "Canvas Builder"},
		Grid:   GridSettings{Snap: true, Size: 10},
		Drag:   DragSettings{MinDistance: 3, Bounded: true},
		Palette: []PaletteEntry{
			{Type: "TEXT", Label: "Text", Width: 200, Height: 60},
			{Type: "IMAGE", Label: "Image", Width: 240, Height: 160},
			{Type: "BUTTON", Label: "Button", Width: 140, Height: 44},
			{Type: "CONTAINER", Label: "Container", Width: 320, Height: 220},
		},
	}
}

// Parse decodes YAML on top of Default.
func Parse(data []byte) (Settings, error) {
	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("parse settings: %w", err)
	}
	s.normalize()
	return s, nil
}

// Load reads path. A missing file yields Default with no error.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("read settings %s: %w", path, err)
	}
	return Parse(data)
}

// Save writes s as YAML.
func Save(path string, s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func (s *Settings) normalize() {
	def := Default()
	if s.Window.Width <= 0 {
		s.Window.Width = def.Window.Width
	}
	if s.Window.Height <= 0 {
		s.Window.Height = def.Window.Height
	}
	if s.Window.Title == "" {
		s.Window.Title = def.Window.Title
	}
	if s.Grid.Size < 0 {
		s.Grid.Size = 0
	}
	if s.Drag.MinDistance <= 0 {
		s.Drag.MinDistance = def.Drag.MinDistance
	}
	palette := s.Palette[:0]
	for _, p := range s.Palette {
		if p.Type == "" {
			continue
		}
		if p.Label == "" {
			p.Label = p.Type
		}
		palette = append(palette, p)
	}
	s.Palette = palette
	if len(s.Palette) == 0 {
		s.Palette = def.Palette
	}
}

// Store holds the current settings for concurrent readers.
type Store struct {
	mu sync.RWMutex
	s  Settings
}

func NewStore(s Settings) *Store {
	return &Store{s: s}
}

func (st *Store) Get() Settings {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.s
}

func (st *Store) Set(s Settings) {
	st.mu.Lock()
	st.s = s
	st.mu.Unlock()
}
