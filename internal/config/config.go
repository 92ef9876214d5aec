// Package config loads installer settings from an optional TOML file.
package config

import (
	"github.com/conn-castle/pplus-installer/internal/eligibility"
	"github.com/conn-castle/pplus-installer/internal/update"
)

// DefaultPayloadVersion is the Project+ release bundled with this installer.
const DefaultPayloadVersion = "2.3.2"

// DefaultArchiveName is the bundled payload, resolved next to the executable.
const DefaultArchiveName = "PPlus" + DefaultPayloadVersion + ".7z"

// Config is the full installer configuration.
type Config struct {
	Payload PayloadConfig `toml:"payload"`
	Policy  PolicyConfig  `toml:"policy"`
	Update  UpdateConfig  `toml:"update"`
	Log     LogConfig     `toml:"log"`
}

// PayloadConfig locates the bundled archive and names its version.
type PayloadConfig struct {
	Archive string `toml:"archive"`
	Version string `toml:"version"`
}

// PolicyConfig holds the drive compatibility thresholds.
type PolicyConfig struct {
	MaxDriveBytes        uint64   `toml:"max_drive_bytes"`
	RequiredFreeBytes    uint64   `toml:"required_free_bytes"`
	MinUsableBytes       uint64   `toml:"min_usable_bytes"`
	AllowedFilesystems   []string `toml:"allowed_filesystems"`
	StageBuilderMaxBytes uint64   `toml:"stage_builder_max_bytes"`
}

// UpdateConfig controls the release check.
type UpdateConfig struct {
	Enabled     *bool  `toml:"enabled"`
	ReleasesURL string `toml:"releases_url"`
	DownloadURL string `toml:"download_url"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	policy := eligibility.DefaultPolicy()
	enabled := true
	return &Config{
		Payload: PayloadConfig{
			Archive: DefaultArchiveName,
			Version: DefaultPayloadVersion,
		},
		Policy: PolicyConfig{
			MaxDriveBytes:        policy.MaxDriveBytes,
			RequiredFreeBytes:    policy.RequiredFreeBytes,
			MinUsableBytes:       policy.MinUsableBytes,
			AllowedFilesystems:   policy.AllowedFilesystems,
			StageBuilderMaxBytes: policy.StageBuilderMaxBytes,
		},
		Update: UpdateConfig{
			Enabled:     &enabled,
			ReleasesURL: update.DefaultReleasesURL,
			DownloadURL: update.DefaultDownloadURL,
		},
		Log: LogConfig{Level: "warn"},
	}
}

// UpdateEnabled reports whether the release check should run.
func (c *Config) UpdateEnabled() bool {
	return c.Update.Enabled == nil || *c.Update.Enabled
}

// EligibilityPolicy returns the immutable policy for the eligibility engine.
func (c *Config) EligibilityPolicy() eligibility.Policy {
	return eligibility.Policy{
		MaxDriveBytes:        c.Policy.MaxDriveBytes,
		RequiredFreeBytes:    c.Policy.RequiredFreeBytes,
		MinUsableBytes:       c.Policy.MinUsableBytes,
		AllowedFilesystems:   append([]string(nil), c.Policy.AllowedFilesystems...),
		StageBuilderMaxBytes: c.Policy.StageBuilderMaxBytes,
	}
}
