// Package store persists banks and the preferred MIDI port to a single JSON
// file, and debounces writes so a burst of edits becomes one disk write.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"ccgrid/bank"
	"ccgrid/debug"
)

// Repository is the persistence surface the controller needs.
type Repository interface {
	LoadBanks() (map[string]bank.Bank, error)
	SaveBanks(banks map[string]bank.Bank) error
	PreferredPort() (string, error)
	SetPreferredPort(name string) error
}

// bankFile is the on-disk layout. Parameter fields are keyed by name, kept
// compatible with the historical format.
type bankFile struct {
	PreferredMIDIPort *string              `json:"preferred_midi_port"`
	Banks             map[string]bankEntry `json:"banks"`
}

type bankEntry struct {
	Params         []string       `json:"params"`
	Values         map[string]int `json:"values"`
	Channels       map[string]int `json:"channels"`
	ControlNumbers map[string]int `json:"control_numbers"`
}

// DataDir returns the per-user data directory for the bank file.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "ccgrid"), nil
}

// DefaultPath returns the full path to banks.json.
func DefaultPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "banks.json"), nil
}

// FileRepository stores everything in one JSON file with atomic replacement.
type FileRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileRepository creates a repository backed by the given file path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

// LoadBanks reads all banks from disk. A missing or unreadable file falls
// back to the default bank set; read errors are logged, not fatal.
func (r *FileRepository) LoadBanks() (map[string]bank.Bank, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.load()
	banks := make(map[string]bank.Bank, len(data.Banks))
	for name, entry := range data.Banks {
		banks[name] = entry.toBank(name)
	}
	return banks, err
}

// toBank rebuilds a bank from its file entry, padding to 64 parameters and
// clamping every numeric field.
func (e bankEntry) toBank(name string) bank.Bank {
	b := bank.New(name)
	for i := range b.Params {
		paramName := b.Params[i].Name
		if i < len(e.Params) {
			paramName = e.Params[i]
		}
		b.Params[i] = bank.Parameter{
			Name:          paramName,
			Value:         bank.ClampValue(e.Values[paramName]),
			Channel:       bank.ClampChannel(e.Channels[paramName]),
			ControlNumber: bank.ClampValue(e.ControlNumbers[paramName]),
		}
	}
	return b
}

func toEntry(b bank.Bank) bankEntry {
	entry := bankEntry{
		Params:         make([]string, 0, len(b.Params)),
		Values:         make(map[string]int, len(b.Params)),
		Channels:       make(map[string]int, len(b.Params)),
		ControlNumbers: make(map[string]int, len(b.Params)),
	}
	for _, p := range b.Params {
		entry.Params = append(entry.Params, p.Name)
		entry.Values[p.Name] = p.Value
		entry.Channels[p.Name] = p.Channel
		entry.ControlNumbers[p.Name] = p.ControlNumber
	}
	return entry
}

// SaveBanks writes all banks, preserving the stored port preference.
func (r *FileRepository) SaveBanks(banks map[string]bank.Bank) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, _ := r.load()
	data.Banks = make(map[string]bankEntry, len(banks))
	for name, b := range banks {
		data.Banks[name] = toEntry(b)
	}
	return r.save(data)
}

// PreferredPort returns the stored MIDI port name, empty if unset.
func (r *FileRepository) PreferredPort() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.load()
	if data.PreferredMIDIPort == nil {
		return "", err
	}
	return *data.PreferredMIDIPort, err
}

// SetPreferredPort stores the MIDI port name immediately (not debounced).
func (r *FileRepository) SetPreferredPort(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, _ := r.load()
	data.PreferredMIDIPort = &name
	return r.save(data)
}

func (r *FileRepository) load() (*bankFile, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultData(), nil
		}
		debug.Log("store", "read %s: %v", r.path, err)
		return defaultData(), fmt.Errorf("read %s: %w", r.path, err)
	}

	var data bankFile
	if err := json.Unmarshal(raw, &data); err != nil {
		debug.Log("store", "parse %s: %v", r.path, err)
		return defaultData(), fmt.Errorf("parse %s: %w", r.path, err)
	}
	if data.Banks == nil {
		data.Banks = defaultData().Banks
	}
	return &data, nil
}

// save writes atomically: temp file in the target directory, then rename.
// A crash mid-write can never truncate the bank file.
func (r *FileRepository) save(data *bankFile) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "banks-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", r.path, err)
	}
	return nil
}

func defaultData() *bankFile {
	return &bankFile{
		Banks: map[string]bankEntry{
			bank.DefaultBankName: toEntry(bank.New(bank.DefaultBankName)),
		},
	}
}
