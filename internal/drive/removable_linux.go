//go:build linux

package drive

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"
)

// sysfsRoot is the sysfs mount point; tests point it at a fake tree.
var sysfsRoot = "/sys"

var (
	mmcPartition  = regexp.MustCompile(`^(mmcblk\d+|nvme\d+n\d+|loop\d+)p\d+$`)
	diskPartition = regexp.MustCompile(`^([a-z]+)\d+$`)
)

// isRemovable reads /sys/block/<disk>/removable for the partition's parent disk.
// MMC block devices are SD slots and count as removable even when the kernel
// reports them as fixed.
func isRemovable(part disk.PartitionStat) (bool, error) {
	name := filepath.Base(part.Device)
	if !strings.HasPrefix(part.Device, "/dev/") || name == "" {
		return false, nil
	}
	parent := parentDisk(name)
	if strings.HasPrefix(parent, "mmcblk") {
		return true, nil
	}
	data, err := os.ReadFile(filepath.Join(sysfsRoot, "block", parent, "removable"))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(string(data)) == "1", nil
}

// parentDisk maps a partition name (sdb1, mmcblk0p1) to its disk (sdb, mmcblk0).
func parentDisk(name string) string {
	if _, err := os.Stat(filepath.Join(sysfsRoot, "block", name)); err == nil {
		return name
	}
	if m := mmcPartition.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	if m := diskPartition.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	return name
}
