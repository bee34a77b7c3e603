// Package snapshot persists session memory to named slots on disk. Each
// slot is one YAML file under a per-user data directory; saving and
// restoring always move the whole state, never a partial merge.
package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// DefaultSlot is the slot used when save or restore is given no name.
const DefaultSlot = "default"

// ErrPersistence is wrapped around every save/restore failure, whether
// I/O or decoding.
var ErrPersistence = errors.New("persistence error")

// slotName restricts slot names to a filename-safe alphabet.
var slotName = regexp.MustCompile(`^[0-9A-Za-z_-]+$`)

// State is a full serialized memory snapshot.
type State struct {
	SessionID string            `yaml:"session_id"`
	SavedAt   time.Time         `yaml:"saved_at"`
	NextAuto  int               `yaml:"next_auto"`
	Bindings  map[string]string `yaml:"bindings"`
}

// NewState builds a State from bindings and counter, stamping it with a
// fresh session id and timestamp.
func NewState(bindings map[string]string, nextAuto int) State {
	return State{
		SessionID: uuid.New().String(),
		SavedAt:   time.Now().UTC(),
		NextAuto:  nextAuto,
		Bindings:  bindings,
	}
}

// Store reads and writes snapshot slots under a base directory.
type Store struct {
	baseDir string
}

// NewStore creates a Store rooted at baseDir. The directory is created
// lazily on first save.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// DefaultDir returns the per-user snapshot directory.
func DefaultDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: resolving user config dir: %v", ErrPersistence, err)
	}
	return filepath.Join(dir, "recalc"), nil
}

// Save writes state into the named slot, creating the base directory if
// needed. An empty slot means DefaultSlot.
func (s *Store) Save(slot string, state State) error {
	path, err := s.slotPath(slot)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("%w: encoding snapshot: %v", ErrPersistence, err)
	}

	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return fmt.Errorf("%w: creating snapshot dir: %v", ErrPersistence, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: writing slot %s: %v", ErrPersistence, displaySlot(slot), err)
	}
	return nil
}

// Load reads the named slot and decodes it fully before returning, so a
// corrupt file never yields a half-built State. An empty slot means
// DefaultSlot.
func (s *Store) Load(slot string) (State, error) {
	path, err := s.slotPath(slot)
	if err != nil {
		return State{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return State{}, fmt.Errorf("%w: reading slot %s: %v", ErrPersistence, displaySlot(slot), err)
	}

	var state State
	if err := yaml.Unmarshal(data, &state); err != nil {
		return State{}, fmt.Errorf("%w: decoding slot %s: %v", ErrPersistence, displaySlot(slot), err)
	}
	return state, nil
}

// List returns the names of the saved slots, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: listing snapshots: %v", ErrPersistence, err)
	}

	var slots []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".yaml") {
			slots = append(slots, strings.TrimSuffix(name, ".yaml"))
		}
	}
	sort.Strings(slots)
	return slots, nil
}

func (s *Store) slotPath(slot string) (string, error) {
	if slot == "" {
		slot = DefaultSlot
	}
	if !slotName.MatchString(slot) {
		return "", fmt.Errorf("%w: invalid slot name %q", ErrPersistence, slot)
	}
	return filepath.Join(s.baseDir, slot+".yaml"), nil
}

func displaySlot(slot string) string {
	if slot == "" {
		return DefaultSlot
	}
	return slot
}
