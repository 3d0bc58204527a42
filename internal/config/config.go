// Package config loads and saves the casetrack configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	configDirName  = ".casetrack"
	configFileName = "config.json"

	// DefaultSyncChannel is the bus channel shared by sibling instances.
	DefaultSyncChannel = "psh-tracker-sync"
)

// Config is the flat casetrack configuration. Zero values select the
// defaults; RedisAddr and MirrorPath left empty disable sync and mirroring.
type Config struct {
	Version string `json:"version"`

	// DataDir holds the bolt store and export files. Defaults to the
	// directory the config lives in.
	DataDir string `json:"data_dir,omitempty"`

	// RedisAddr enables the cross-instance sync bus when set, e.g.
	// "localhost:6379".
	RedisAddr   string `json:"redis_addr,omitempty"`
	SyncChannel string `json:"sync_channel,omitempty"`

	// StalenessMillis is the sync staleness window in milliseconds.
	StalenessMillis int `json:"staleness_millis,omitempty"`

	// MirrorPath enables the sqlite mirror when set.
	MirrorPath string `json:"mirror_path,omitempty"`
	BuildingID string `json:"building_id,omitempty"`

	BackupIntervalMinutes int `json:"backup_interval_minutes,omitempty"`
	BackupRetain          int `json:"backup_retain,omitempty"`

	// DefaultActor is recorded on moves and notes when --by is not given.
	DefaultActor string `json:"default_actor,omitempty"`

	// LogMode selects the log encoder: "dev" or "prod".
	LogMode string `json:"log_mode,omitempty"`
}

// Default returns the configuration a fresh `casetrack init` writes.
func Default() *Config {
	return &Config{
		Version:     "1.0",
		SyncChannel: DefaultSyncChannel,
		BuildingID:  "default",
		LogMode:     "dev",
	}
}

// Load reads .casetrack/config.json from the specified directory.
// Resolution order: dir only (no home fallback).
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, configDirName, configFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Join(dir, configDirName)
	}
	if cfg.SyncChannel == "" {
		cfg.SyncChannel = DefaultSyncChannel
	}
	if cfg.BuildingID == "" {
		cfg.BuildingID = "default"
	}

	return &cfg, nil
}

// Save writes config.json under dir, creating .casetrack when needed.
func Save(dir string, cfg *Config) error {
	caseDir := filepath.Join(dir, configDirName)
	if err := os.MkdirAll(caseDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s dir: %w", configDirName, err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(caseDir, configFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// StorePath returns the bolt store file path.
func (c *Config) StorePath() string {
	return filepath.Join(c.DataDir, "store.db")
}

// ExportDir returns where emergency export files land.
func (c *Config) ExportDir() string {
	return c.DataDir
}

// BackupInterval returns the configured interval, zero for the default.
func (c *Config) BackupInterval() time.Duration {
	return time.Duration(c.BackupIntervalMinutes) * time.Minute
}

// Staleness returns the sync staleness window, zero for the default.
func (c *Config) Staleness() time.Duration {
	return time.Duration(c.StalenessMillis) * time.Millisecond
}
