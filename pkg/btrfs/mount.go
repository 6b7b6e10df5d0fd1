package btrfs

import (
	"errors"
	"strings"

	"github.com/prometheus/procfs"
)

// IsBtrfsMount tells whether path lives on a btrfs mount. Used for an advisory
// warning - snapshot roots on other filesystems are almost certainly a
// configuration mistake.
func IsBtrfsMount(path string) (bool, error) {
	procSelf, err := procfs.Self()
	if err != nil {
		return false, err
	}

	mounts, err := procSelf.MountStats()
	if err != nil {
		return false, err
	}

	mount := mountForPath(path, mounts)
	if mount == nil {
		return false, errors.New("unable to resolve mount for path")
	}

	return mount.Type == "btrfs", nil
}

// the mount whose mountpoint is the longest prefix of path
func mountForPath(path string, mounts []*procfs.Mount) *procfs.Mount {
	var winner *procfs.Mount

	for _, mount := range mounts {
		if !strings.HasPrefix(path, mount.Mount) {
			continue
		}

		if winner == nil || len(mount.Mount) > len(winner.Mount) {
			winner = mount
		}
	}

	return winner
}
