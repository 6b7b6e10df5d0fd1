package snapstore

import (
	"io/ioutil"
	"os"
	"path/filepath"
)

type dirStore struct {
	root string
}

// Store reading an on-disk snapshot root. Listings come out sorted by name, so
// enumeration order is deterministic.
func DirStore(root string) Store {
	return &dirStore{root}
}

func (d *dirStore) Groups() ([]string, error) {
	dentries, err := ioutil.ReadDir(d.root)
	if err != nil {
		if os.IsNotExist(err) { // a root that was never snapshotted to has nothing to prune
			return []string{}, nil
		}

		return nil, err
	}

	groups := []string{}
	for _, dentry := range dentries {
		if !dentry.IsDir() {
			continue
		}

		groups = append(groups, dentry.Name())
	}

	return groups, nil
}

func (d *dirStore) EntryNames(group string) ([]string, error) {
	dentries, err := ioutil.ReadDir(filepath.Join(d.root, group))
	if err != nil {
		return nil, err
	}

	names := []string{}
	for _, dentry := range dentries {
		if !dentry.IsDir() { // snapshots are always directories (subvolumes)
			continue
		}

		names = append(names, dentry.Name())
	}

	return names, nil
}
