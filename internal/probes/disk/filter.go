package disk

import "strings"

// Device names that never represent real storage hardware.
var excludedPrefixes = []string{"loop", "ram", "zram", "fd"}

// IncludeDevice reports whether a device name from the kernel counter table
// should be kept in a reading.
//
// Loop devices and RAM disks are dropped by prefix. Names ending in a digit
// are partitions (sda1, dm-0, nvme0n1p1) and are dropped too, with one
// exception: NVMe whole-disk names like nvme0n1 end in a digit but carry no
// partition separator, so a name containing "nvme" is kept as long as it has
// no "p" in it.
func IncludeDevice(name string) bool {
	if name == "" {
		return false
	}

	for _, prefix := range excludedPrefixes {
		if strings.HasPrefix(name, prefix) {
			return false
		}
	}

	last := name[len(name)-1]
	if last >= '0' && last <= '9' {
		if strings.Contains(name, "nvme") && !strings.Contains(name, "p") {
			return true
		}
		return false
	}

	return true
}
