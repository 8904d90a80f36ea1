package model

import "time"

// Snapshot is the persisted output of one complete collection run
type Snapshot struct {
	GeneratedAt string     `yaml:"generated_at"`
	Sections    []*Section `yaml:"sections"`
}

// NewSnapshot stamps the configuration with a UTC generation time
func NewSnapshot(cfg *Config, now time.Time) *Snapshot {
	return &Snapshot{
		GeneratedAt: now.UTC().Format(time.RFC3339),
		Sections:    cfg.Sections,
	}
}
