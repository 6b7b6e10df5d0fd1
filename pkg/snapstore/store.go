// Access to the snapshot tree: one subdirectory per group under the root, one
// snapshot (a directory) per entry under a group.
package snapstore

import (
	"context"
)

type Store interface {
	// group names, e.g. ["etc", "home"]
	Groups() ([]string, error)
	EntryNames(group string) ([]string, error)
}

// deletes one snapshot entry. production implementation is btrfs subvolume delete
type Deleter interface {
	Delete(ctx context.Context, group string, name string) error
}
