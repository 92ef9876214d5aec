package messages

// Install, extraction and update messages.
const (
	// InstallMetadataUnreadableFmt formats metadata read and parse errors.
	InstallMetadataUnreadableFmt  = "unreadable metadata %s: %v"
	InstallMetadataMissingVersion = "%s has no version element"
	InstallRemoveFailedFmt        = "remove %s: %w"

	// ExtractOpenArchiveFmt formats archive open errors.
	ExtractOpenArchiveFmt     = "open archive %s: %w"
	ExtractEntryFailedFmt     = "extract %s: %w"
	ExtractUnsafeEntryFmt     = "archive entry %q escapes the destination"
	ExtractIrregularEntryFmt  = "archive entry %q has unsupported type %v"
	ExtractCreateDirFailedFmt = "create directory %s: %w"
	ExtractFailedFmt          = "extraction into %s failed: %v"
	ExtractDestinationMissing = "destination is required"

	// UpdateCreateRequestErrFmt formats request creation errors.
	UpdateCreateRequestErrFmt         = "create releases request: %w"
	UpdateFetchLatestReleaseErrFmt    = "fetch releases: %w"
	UpdateFetchLatestReleaseStatusFmt = "fetch releases: unexpected status %s"
	UpdateDecodeLatestReleaseErrFmt   = "decode releases: %w"
	UpdateNoReleases                  = "release feed is empty"
	UpdateLatestReleaseMissingTag     = "latest release missing tag_name"
	UpdateInvalidLatestReleaseTagFmt  = "invalid latest release tag %q: %w"
	UpdateInvalidCurrentVersionFmt    = "invalid current version %q: %w"
	UpdateRateLimitFmt                = "github api rate limit exceeded (%s, remaining=%s)"
	UpdateOpenBrowserFailedFmt        = "open %s: %w"

	// UpdateWarnAvailableFmt is printed by non-interactive commands.
	UpdateWarnAvailableFmt = "A newer installer (%s) is available; you are running %s. Download it from %s\n"

	// VersionRequired indicates an empty version string.
	VersionRequired   = "version is required"
	VersionInvalidFmt = "version %q must be in the form vX.Y.Z or X.Y.Z"
)
