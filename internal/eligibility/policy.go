package eligibility

import "strings"

const (
	gib = uint64(1) << 30

	// DefaultMaxDriveBytes is the largest card the console's SD stack reads reliably.
	DefaultMaxDriveBytes = 32 * gib
	// DefaultRequiredFreeBytes is the size of the extracted payload.
	DefaultRequiredFreeBytes = uint64(1766703104)
	// DefaultStageBuilderMaxBytes is the largest card Stage Builder can boot from.
	DefaultStageBuilderMaxBytes = 2 * gib
)

// DefaultAllowedFilesystems are the FAT variants, as Windows and as Linux/macOS name them.
var DefaultAllowedFilesystems = []string{"FAT32", "FAT", "FAT16", "vfat", "msdos"}

// Policy holds the compatibility thresholds. A Policy is built once at startup
// and never modified.
type Policy struct {
	MaxDriveBytes        uint64
	RequiredFreeBytes    uint64
	MinUsableBytes       uint64
	AllowedFilesystems   []string
	StageBuilderMaxBytes uint64
}

// DefaultPolicy returns the thresholds for the bundled payload.
func DefaultPolicy() Policy {
	return Policy{
		MaxDriveBytes:        DefaultMaxDriveBytes,
		RequiredFreeBytes:    DefaultRequiredFreeBytes,
		MinUsableBytes:       DefaultRequiredFreeBytes,
		AllowedFilesystems:   append([]string(nil), DefaultAllowedFilesystems...),
		StageBuilderMaxBytes: DefaultStageBuilderMaxBytes,
	}
}

// neverFitsBelow is the capacity under which a card can never hold the payload.
func (p Policy) neverFitsBelow() uint64 {
	if p.MinUsableBytes > p.RequiredFreeBytes {
		return p.MinUsableBytes
	}
	return p.RequiredFreeBytes
}

// AllowsFilesystem reports whether fs is in the allowed set, ignoring case.
func (p Policy) AllowsFilesystem(fs string) bool {
	fs = strings.TrimSpace(fs)
	for _, allowed := range p.AllowedFilesystems {
		if strings.EqualFold(allowed, fs) {
			return true
		}
	}
	return false
}

// SupportsStageBuilder reports whether a card of totalBytes can boot through Stage Builder.
func (p Policy) SupportsStageBuilder(totalBytes uint64) bool {
	return totalBytes <= p.StageBuilderMaxBytes
}
