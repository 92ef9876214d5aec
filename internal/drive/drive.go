// Package drive reports capacity, filesystem and removability facts for
// mounted volumes. Facts are read fresh on every call and never cached.
package drive

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"

	"github.com/conn-castle/pplus-installer/internal/messages"
)

// Facts describes one candidate path at the moment it was queried.
type Facts struct {
	Path       string `json:"path"`
	Device     string `json:"device,omitempty"`
	TotalBytes uint64 `json:"totalBytes"`
	FreeBytes  uint64 `json:"freeBytes"`
	Filesystem string `json:"filesystem"`
	Removable  bool   `json:"removable"`
}

// Provider lists mounted volumes and reports facts about a path.
type Provider interface {
	Candidates(ctx context.Context) ([]string, error)
	Facts(ctx context.Context, path string) (Facts, error)
}

// virtualFS lists pseudo filesystems that can never hold an install.
var virtualFS = map[string]bool{
	"autofs":     true,
	"bpf":        true,
	"cgroup":     true,
	"cgroup2":    true,
	"configfs":   true,
	"debugfs":    true,
	"devpts":     true,
	"devtmpfs":   true,
	"efivarfs":   true,
	"fusectl":    true,
	"hugetlbfs":  true,
	"mqueue":     true,
	"overlay":    true,
	"proc":       true,
	"pstore":     true,
	"ramfs":      true,
	"securityfs": true,
	"squashfs":   true,
	"sysfs":      true,
	"tmpfs":      true,
	"tracefs":    true,
}

// SystemProvider reads facts from the running OS.
type SystemProvider struct {
	partitions func(ctx context.Context, all bool) ([]disk.PartitionStat, error)
	usage      func(ctx context.Context, path string) (*disk.UsageStat, error)
	removable  func(part disk.PartitionStat) (bool, error)
	windows    bool
}

// NewSystemProvider returns a Provider backed by gopsutil and the
// platform's removable-media lookup.
func NewSystemProvider() *SystemProvider {
	return &SystemProvider{
		partitions: disk.PartitionsWithContext,
		usage:      disk.UsageWithContext,
		removable:  isRemovable,
		windows:    runtime.GOOS == "windows",
	}
}

// Candidates returns the mount points of every real filesystem, in the order
// the OS reports them, without duplicates.
func (p *SystemProvider) Candidates(ctx context.Context) ([]string, error) {
	parts, err := p.partitions(ctx, false)
	if err != nil {
		return nil, fmt.Errorf(messages.DrivePartitionsFailedFmt, err)
	}
	seen := make(map[string]bool, len(parts))
	paths := make([]string, 0, len(parts))
	for _, part := range parts {
		if part.Mountpoint == "" || virtualFS[strings.ToLower(part.Fstype)] {
			continue
		}
		mount := volumeRoot(part.Mountpoint, p.windows)
		key := pathKey(mount, p.windows)
		if seen[key] {
			continue
		}
		seen[key] = true
		paths = append(paths, mount)
	}
	return paths, nil
}

// Facts reports the capacity, filesystem and removability of path.
// path does not have to be a mount point; the enclosing mount is used for
// the filesystem and removable lookups.
func (p *SystemProvider) Facts(ctx context.Context, path string) (Facts, error) {
	if strings.TrimSpace(path) == "" {
		return Facts{}, errors.New(messages.DrivePathRequired)
	}
	path = volumeRoot(path, p.windows)
	usage, err := p.usage(ctx, path)
	if err != nil {
		return Facts{}, fmt.Errorf(messages.DriveUsageFailedFmt, path, err)
	}
	facts := Facts{
		Path:       path,
		TotalBytes: usage.Total,
		FreeBytes:  usage.Free,
		Filesystem: usage.Fstype,
	}

	parts, err := p.partitions(ctx, false)
	if err != nil {
		return Facts{}, fmt.Errorf(messages.DriveFactsFailedFmt, path, err)
	}
	part, ok := enclosingPartition(parts, path, p.windows)
	if !ok {
		part = disk.PartitionStat{Mountpoint: path, Fstype: usage.Fstype}
	}
	facts.Device = part.Device
	if part.Fstype != "" {
		facts.Filesystem = part.Fstype
	}
	removable, err := p.removable(part)
	if err != nil {
		return Facts{}, fmt.Errorf(messages.DriveRemovableLookupErrFmt, path, err)
	}
	facts.Removable = removable
	return facts, nil
}

// VolumeRoot turns a bare Windows volume such as "E:" into its root `E:\`.
// A bare volume is relative to the current directory on that drive.
// Other paths, and every path on other platforms, are returned unchanged.
func VolumeRoot(path string) string {
	return volumeRoot(path, runtime.GOOS == "windows")
}

func volumeRoot(path string, windows bool) string {
	if !windows || path == "" {
		return path
	}
	if isDriveLetter(path) || filepath.VolumeName(path) == path {
		return path + `\`
	}
	return path
}

func isDriveLetter(path string) bool {
	if len(path) != 2 || path[1] != ':' {
		return false
	}
	c := path[0] | 0x20
	return c >= 'a' && c <= 'z'
}

// enclosingPartition returns the partition with the longest mount point that
// contains path. Mount points are normalized the same way as path, so a bare
// Windows volume such as "E:" matches `E:\`.
func enclosingPartition(parts []disk.PartitionStat, path string, windows bool) (disk.PartitionStat, bool) {
	target := pathKey(path, windows)
	var (
		best    disk.PartitionStat
		bestLen int
		found   bool
	)
	for _, part := range parts {
		mount := pathKey(volumeRoot(part.Mountpoint, windows), windows)
		if mount == "" || !within(target, mount, windows) {
			continue
		}
		if !found || len(mount) > bestLen {
			best, bestLen, found = part, len(mount), true
		}
	}
	return best, found
}

func within(target, mount string, windows bool) bool {
	if target == mount {
		return true
	}
	sep := string(filepath.Separator)
	if windows {
		sep = `\`
	}
	prefix := mount
	if !strings.HasSuffix(prefix, sep) {
		prefix += sep
	}
	return strings.HasPrefix(target, prefix)
}

// pathKey normalizes a path for comparison. Windows paths compare
// case-insensitively with backslash separators.
func pathKey(path string, windows bool) string {
	if strings.TrimSpace(path) == "" {
		return ""
	}
	if !windows {
		return filepath.Clean(path)
	}
	key := strings.ToUpper(strings.ReplaceAll(path, "/", `\`))
	for len(key) > 3 && strings.HasSuffix(key, `\`) {
		key = strings.TrimSuffix(key, `\`)
	}
	return key
}
