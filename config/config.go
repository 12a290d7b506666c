// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Pacing configuration store for texelpace.
//
// Configuration lives in ~/.texelpace/texelpace.json. Signal channel names
// are data: the file decides which channels count as activity, quiescence or
// hard reset, and what the backoff table looks like. Missing fields fall back
// to defaults.

package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/framegrace/texelpace/pace"
)

const (
	configDirName = ".texelpace"
	configName    = "texelpace.json"
)

// Pacing holds the redraw pacing configuration.
type Pacing struct {
	// BackoffMillis is the redraw interval table in milliseconds, fastest
	// first, non-decreasing. The last entry is the idle floor.
	BackoffMillis []int `json:"backoff_millis"`

	// ActivityChannels, QuiescenceChannels and ResetChannels name the signal
	// channels routed to each scheduler operation.
	ActivityChannels   []string `json:"activity_channels"`
	QuiescenceChannels []string `json:"quiescence_channels"`
	ResetChannels      []string `json:"reset_channels"`
}

// Default returns the standard pacing configuration.
func Default() Pacing {
	return Pacing{
		BackoffMillis: []int{16, 16, 33, 66, 133, 266, 533, 1000},
		ActivityChannels: []string{
			"pointer-move", "pointer-press", "pointer-release", "wheel",
			"key-press", "touch-start", "touch-move", "focus-gained",
		},
		QuiescenceChannels: []string{"focus-lost"},
		ResetChannels:      []string{"reload-reset"},
	}
}

var (
	mu      sync.RWMutex
	once    sync.Once
	current Pacing
	loadErr error
)

func initStore() {
	path, err := Path()
	if err != nil {
		current, loadErr = Default(), err
		return
	}
	current, loadErr = LoadFrom(path)
}

// Err returns the most recent load error. A missing file is not an error.
func Err() error {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return loadErr
}

// System returns the pacing configuration, loading it on first use.
func System() Pacing {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Reload re-reads the configuration file.
func Reload() error {
	once.Do(initStore)
	path, err := Path()
	if err != nil {
		return err
	}
	loaded, err := LoadFrom(path)
	mu.Lock()
	defer mu.Unlock()
	current, loadErr = loaded, err
	return err
}

// Path returns the configuration file location.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, configDirName, configName), nil
}

// LoadFrom reads a pacing configuration from path. A missing file yields the
// defaults with a nil error; fields absent from the file keep their default.
func LoadFrom(path string) (Pacing, error) {
	p := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("read config: %w", err)
	}

	var loaded Pacing
	if err := json.Unmarshal(data, &loaded); err != nil {
		return p, fmt.Errorf("parse %s: %w", path, err)
	}

	if len(loaded.BackoffMillis) > 0 {
		p.BackoffMillis = loaded.BackoffMillis
	}
	if loaded.ActivityChannels != nil {
		p.ActivityChannels = loaded.ActivityChannels
	}
	if loaded.QuiescenceChannels != nil {
		p.QuiescenceChannels = loaded.QuiescenceChannels
	}
	if loaded.ResetChannels != nil {
		p.ResetChannels = loaded.ResetChannels
	}
	return p, nil
}

// Save writes the configuration to its default location.
func Save(p Pacing) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	current = p
	return nil
}

// BackoffTable converts the millisecond table to durations.
func (p Pacing) BackoffTable() []time.Duration {
	table := make([]time.Duration, len(p.BackoffMillis))
	for i, ms := range p.BackoffMillis {
		table[i] = time.Duration(ms) * time.Millisecond
	}
	return table
}

// SignalMap resolves the configured channel names. Unknown names are logged
// and skipped; a name listed twice keeps its last classification.
func (p Pacing) SignalMap() pace.SignalMap {
	signals := make(pace.SignalMap)
	assign := func(names []string, class pace.SignalClass) {
		for _, name := range names {
			et, ok := pace.EventTypeByName(name)
			if !ok {
				log.Printf("Config: unknown signal channel %q, skipping", name)
				continue
			}
			signals[et] = class
		}
	}
	assign(p.ActivityChannels, pace.SignalActivity)
	assign(p.QuiescenceChannels, pace.SignalQuiescence)
	assign(p.ResetChannels, pace.SignalReset)
	return signals
}
