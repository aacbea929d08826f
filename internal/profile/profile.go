// Package profile manages named user profiles stored as JSON files under
// the user's home directory, with a pointer file marking the active one.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"wxstory/internal/config"
)

var (
	// ErrNotFound is returned when a named profile does not exist.
	ErrNotFound = errors.New("profile not found")
	// ErrValidation is returned for invalid names, fields, or values.
	ErrValidation = errors.New("validation failed")
)

var validate = validator.New()

// APIKeys holds per-profile narrative provider credentials. Environment
// variables still win over these at configuration time.
type APIKeys struct {
	Gemini     string `json:"gemini,omitempty"`
	OpenRouter string `json:"openrouter,omitempty"`
}

// Profile is one named user configuration.
type Profile struct {
	Name            string   `json:"name"`
	DefaultLocation string   `json:"default_location,omitempty"`
	APIKeys         APIKeys  `json:"api_keys"`
	Units           string   `json:"units"`
	Favorites       []string `json:"favorites"`
	CreatedAt       string   `json:"created_at"`
}

// Store reads and writes profiles under one directory.
type Store struct {
	dir string
}

// NewStore opens the default profile directory, creating it if needed.
func NewStore() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("determining home directory: %w", err)
	}
	return NewStoreAt(filepath.Join(home, ".wxstory", "profiles"))
}

// NewStoreAt opens a store rooted at dir, creating it if needed.
func NewStoreAt(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating profile directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) profilePath(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *Store) currentPath() string {
	return filepath.Join(s.dir, ".current")
}

// Create makes and persists a new profile with defaults. The first profile
// created becomes the active one, as does any profile created while the
// active pointer is dangling.
func (s *Store) Create(name string) (*Profile, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("%w: invalid profile name %q", ErrValidation, name)
	}
	if s.Exists(name) {
		return nil, fmt.Errorf("%w: profile %q already exists", ErrValidation, name)
	}

	p := &Profile{
		Name:      name,
		Units:     string(config.UnitsImperial),
		Favorites: []string{},
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.Save(p); err != nil {
		return nil, err
	}

	current, err := s.CurrentName()
	if err != nil || !s.Exists(current) {
		if err := s.SetCurrent(name); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Load reads a profile by name.
func (s *Store) Load(name string) (*Profile, error) {
	data, err := os.ReadFile(s.profilePath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return nil, fmt.Errorf("reading profile %q: %w", name, err)
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding profile %q: %w", name, err)
	}
	if p.Favorites == nil {
		p.Favorites = []string{}
	}
	return &p, nil
}

// Save persists a profile.
func (s *Store) Save(p *Profile) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding profile %q: %w", p.Name, err)
	}
	if err := os.WriteFile(s.profilePath(p.Name), data, 0o600); err != nil {
		return fmt.Errorf("writing profile %q: %w", p.Name, err)
	}
	return nil
}

// List returns all profile names, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes a profile. The active profile cannot be deleted; switch
// first.
func (s *Store) Delete(name string) error {
	if !s.Exists(name) {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if current, err := s.CurrentName(); err == nil && current == name {
		return fmt.Errorf("%w: cannot delete active profile %q, switch to another profile first", ErrValidation, name)
	}
	if err := os.Remove(s.profilePath(name)); err != nil {
		return fmt.Errorf("deleting profile %q: %w", name, err)
	}
	return nil
}

// Exists reports whether a named profile is on disk.
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.profilePath(name))
	return err == nil
}

// CurrentName returns the active profile's name.
func (s *Store) CurrentName() (string, error) {
	data, err := os.ReadFile(s.currentPath())
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: no active profile set", ErrNotFound)
		}
		return "", fmt.Errorf("reading active profile marker: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// SetCurrent marks name as the active profile.
func (s *Store) SetCurrent(name string) error {
	if !s.Exists(name) {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err := os.WriteFile(s.currentPath(), []byte(name), 0o600); err != nil {
		return fmt.Errorf("writing active profile marker: %w", err)
	}
	return nil
}

// Update sets one whitelisted field on the profile. Unknown fields and
// invalid values leave the profile unchanged.
func (p *Profile) Update(field, value string) error {
	switch field {
	case "default_location":
		p.DefaultLocation = value
	case "gemini_key":
		p.APIKeys.Gemini = value
	case "openrouter_key":
		p.APIKeys.OpenRouter = value
	case "units":
		if err := validate.Var(value, "oneof=imperial metric"); err != nil {
			return fmt.Errorf("%w: units must be 'imperial' or 'metric'", ErrValidation)
		}
		p.Units = value
	default:
		return fmt.Errorf("%w: unknown field %q", ErrValidation, field)
	}
	return nil
}

// AddFavorite appends a location unless already present.
func (p *Profile) AddFavorite(location string) {
	for _, f := range p.Favorites {
		if f == location {
			return
		}
	}
	p.Favorites = append(p.Favorites, location)
}

// RemoveFavorite drops a location from the favorites list.
func (p *Profile) RemoveFavorite(location string) {
	kept := p.Favorites[:0]
	for _, f := range p.Favorites {
		if f != location {
			kept = append(kept, f)
		}
	}
	p.Favorites = kept
}
