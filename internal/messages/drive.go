package messages

// Drive discovery and eligibility messages.
const (
	// DriveTooLarge is shown when the card exceeds the maximum supported size.
	DriveTooLarge = "Drive is too big. SD card should be 32GB or smaller!"
	// DriveNeverFits is shown when the card could not hold the payload even when empty.
	DriveNeverFits              = "Drive is too small to ever hold Project+. Use a bigger SD card."
	DriveInsufficientFreeSpace  = "The mod needs more space, remove items from your SD or use a different one"
	DriveNotRemovable           = "Drive is not removable. Select the SD card, not an internal disk."
	DriveWrongFilesystem        = "Wrong file system, format the drive or use a different one"
	DriveUnknownReasonFmt       = "drive rejected (%s)"
	DriveRejectedFmt            = "%s: %s"
	DriveFactsFailedFmt         = "read drive facts for %s: %w"
	DrivePartitionsFailedFmt    = "list partitions: %w"
	DriveUsageFailedFmt         = "read usage for %s: %w"
	DriveRemovableLookupErrFmt  = "look up removable flag for %s: %w"
	DrivePathRequired           = "drive path is required"
	DriveEligibleLabel          = "ok"
	DriveTableHeaderPath        = "Drive"
	DriveTableHeaderSize        = "Size"
	DriveTableHeaderFree        = "Free"
	DriveTableHeaderFilesystem  = "Filesystem"
	DriveTableHeaderRemovable   = "Removable"
	DriveTableHeaderVerdict     = "Verdict"
	DriveRemovableYes           = "yes"
	DriveRemovableNo            = "no"
	DriveReasonTooLarge         = "too large"
	DriveReasonNeverFits        = "too small"
	DriveReasonInsufficientFree = "not enough free space"
	DriveReasonNotRemovable     = "not removable"
	DriveReasonWrongFilesystem  = "wrong filesystem"
)
