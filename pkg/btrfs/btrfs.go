// Btrfs helpers: deleting snapshot subvolumes and probing the environment.
// Subvolume deletion requires root, so the commands run through sudo.
package btrfs

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
)

type runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	//nolint:gosec // ok
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

type SubvolumeDeleter struct {
	root string
	run  runner
}

func NewSubvolumeDeleter(root string) *SubvolumeDeleter {
	return &SubvolumeDeleter{root, execRunner}
}

func (s *SubvolumeDeleter) Delete(ctx context.Context, group string, name string) error {
	subvolumePath := filepath.Join(s.root, group, name)

	output, err := s.run(ctx, "sudo", "btrfs", "subvolume", "delete", subvolumePath)
	if err != nil {
		return fmt.Errorf(
			"btrfs subvolume delete failed: %s, output: %s",
			err.Error(),
			output)
	}

	return nil
}

// CheckPrivilege probes whether sudo works without a password prompt. Advisory
// only: a failing probe means deletions will most likely fail, but callers must
// not stop on it.
func CheckPrivilege(ctx context.Context) error {
	return checkPrivilege(ctx, execRunner)
}

func checkPrivilege(ctx context.Context, run runner) error {
	output, err := run(ctx, "sudo", "-n", "true")
	if err != nil {
		return fmt.Errorf("sudo -n probe failed: %v, output: %s", err, output)
	}

	return nil
}
