package messages

// Config messages.
const (
	// ConfigReadFailedFmt formats config read errors.
	ConfigReadFailedFmt         = "failed to read config %s: %w"
	ConfigInvalidConfigFmt      = "invalid config %s: %w"
	ConfigValidationFmt         = "%w: %s: %s"
	ConfigExpandPathFailedFmt   = "expand path %s: %w"
	ConfigResolveHomeFailedFmt  = "resolve home dir: %w"
	ConfigPayloadVersionMissing = "payload.version is required"
	ConfigPayloadVersionInvalid = "payload.version %q is not a valid version"
	ConfigPayloadArchiveMissing = "payload.archive is required"
	ConfigPolicyZeroFmt         = "policy.%s must be greater than zero"
	ConfigPolicyMaxBelowFree    = "policy.max_drive_bytes must not be smaller than policy.required_free_bytes"
	ConfigPolicyNoFilesystems   = "policy.allowed_filesystems must list at least one filesystem"
	ConfigUpdateURLMissingFmt   = "update.%s is required when update.enabled is true"
	ConfigLogLevelInvalidFmt    = "log.level %q is not a valid level"
)
