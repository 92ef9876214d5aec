//go:build windows

package drive

import (
	"strings"

	"github.com/shirou/gopsutil/v3/disk"
	"golang.org/x/sys/windows"
)

// isRemovable asks Windows for the drive type of the partition's root.
func isRemovable(part disk.PartitionStat) (bool, error) {
	root := part.Mountpoint
	if root == "" {
		root = part.Device
	}
	if !strings.HasSuffix(root, `\`) {
		root += `\`
	}
	ptr, err := windows.UTF16PtrFromString(root)
	if err != nil {
		return false, err
	}
	return windows.GetDriveType(ptr) == windows.DRIVE_REMOVABLE, nil
}
