package config

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/conn-castle/pplus-installer/internal/messages"
	"github.com/conn-castle/pplus-installer/internal/version"
)

// Validate ensures the config is complete and consistent.
// source names the file in error messages.
func (c *Config) Validate(source string) error {
	if problem := c.problem(); problem != "" {
		return fmt.Errorf(messages.ConfigValidationFmt, ErrConfigValidation, source, problem)
	}
	return nil
}

func (c *Config) problem() string {
	if strings.TrimSpace(c.Payload.Archive) == "" {
		return messages.ConfigPayloadArchiveMissing
	}
	if strings.TrimSpace(c.Payload.Version) == "" {
		return messages.ConfigPayloadVersionMissing
	}
	if _, err := version.Normalize(c.Payload.Version); err != nil {
		return fmt.Sprintf(messages.ConfigPayloadVersionInvalid, c.Payload.Version)
	}

	thresholds := []struct {
		key   string
		value uint64
	}{
		{"max_drive_bytes", c.Policy.MaxDriveBytes},
		{"required_free_bytes", c.Policy.RequiredFreeBytes},
		{"stage_builder_max_bytes", c.Policy.StageBuilderMaxBytes},
	}
	for _, th := range thresholds {
		if th.value == 0 {
			return fmt.Sprintf(messages.ConfigPolicyZeroFmt, th.key)
		}
	}
	if c.Policy.MaxDriveBytes < c.Policy.RequiredFreeBytes {
		return messages.ConfigPolicyMaxBelowFree
	}
	if !hasFilesystem(c.Policy.AllowedFilesystems) {
		return messages.ConfigPolicyNoFilesystems
	}

	if c.UpdateEnabled() {
		if strings.TrimSpace(c.Update.ReleasesURL) == "" {
			return fmt.Sprintf(messages.ConfigUpdateURLMissingFmt, "releases_url")
		}
		if strings.TrimSpace(c.Update.DownloadURL) == "" {
			return fmt.Sprintf(messages.ConfigUpdateURLMissingFmt, "download_url")
		}
	}

	if c.Log.Level != "" {
		if _, err := log.ParseLevel(c.Log.Level); err != nil {
			return fmt.Sprintf(messages.ConfigLogLevelInvalidFmt, c.Log.Level)
		}
	}
	return ""
}

func hasFilesystem(list []string) bool {
	for _, fs := range list {
		if strings.TrimSpace(fs) != "" {
			return true
		}
	}
	return false
}
