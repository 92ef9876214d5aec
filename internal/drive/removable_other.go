//go:build !linux && !windows

package drive

import (
	"strings"

	"github.com/shirou/gopsutil/v3/disk"
)

// externalMountRoots are where macOS and the BSDs mount external media.
var externalMountRoots = []string{"/Volumes/", "/media/", "/run/media/"}

func isRemovable(part disk.PartitionStat) (bool, error) {
	for _, root := range externalMountRoots {
		if strings.HasPrefix(part.Mountpoint, root) {
			return true, nil
		}
	}
	return false, nil
}
