package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "pplus-install"
	// RootShort is the short description for the root command.
	RootShort = "Install Project+ onto an SD card"
	RootLong  = `Guide you through picking an SD card, checking that it is compatible,
removing an older Project+ install and extracting the bundled payload onto it.`

	RootFlagConfig        = "Path to a TOML config file (default ~/.config/pplus-installer/config.toml)"
	RootFlagArchive       = "Path to the Project+ 7z payload (overrides config)"
	RootFlagDrive         = "Install to this drive path instead of choosing one interactively"
	RootFlagNoUpdateCheck = "Skip checking for a newer installer release"
	RootFlagLogLevel      = "Log level (trace, debug, info, warn, error)"
	RootFlagLogFile       = "Write logs to this file instead of stderr"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// DrivesUse is the drives command name.
	DrivesUse      = "drives"
	DrivesShort    = "List mounted drives and whether Project+ can be installed on them"
	DrivesFlagJSON = "Print the drive report as JSON"
	DrivesNone     = "No mounted drives were found."

	// CheckUse is the check command usage.
	CheckUse      = "check <path>"
	CheckShort    = "Check whether a single drive path is compatible"
	CheckEligible = "%s is compatible with Project+.\n"

	AbortPrefixFmt       = "Error: %s\n"
	ConfigLoadFailedFmt  = "load config: %w"
	LogInitFailedFmt     = "init logging: %w"
	LogLevelInvalidFmt   = "invalid log level %q: %w"
	ResolveArchiveErrFmt = "resolve payload archive: %w"
	ListDrivesFailedFmt  = "list drives: %w"
)
