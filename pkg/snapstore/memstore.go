package snapstore

import (
	"context"
	"fmt"
	"sort"
)

// in-memory Store for tests
type MemStore struct {
	Entries      map[string][]string
	BrokenGroups map[string]error // group => error its EntryNames() fails with
}

func NewMemStore() *MemStore {
	return &MemStore{
		Entries:      map[string][]string{},
		BrokenGroups: map[string]error{},
	}
}

func (m *MemStore) Groups() ([]string, error) {
	groups := []string{}
	for group := range m.Entries {
		groups = append(groups, group)
	}
	for group := range m.BrokenGroups {
		groups = append(groups, group)
	}

	sort.Strings(groups)

	return groups, nil
}

func (m *MemStore) EntryNames(group string) ([]string, error) {
	if err, broken := m.BrokenGroups[group]; broken {
		return nil, err
	}

	names, found := m.Entries[group]
	if !found {
		return nil, fmt.Errorf("no such group: %s", group)
	}

	return append([]string{}, names...), nil
}

// in-memory Deleter for tests. records deletions in order, and can be made to
// fail for chosen entries
type MemDeleter struct {
	Deleted []string         // "group/name"
	Failing map[string]error // "group/name" => error to fail with
}

func NewMemDeleter() *MemDeleter {
	return &MemDeleter{
		Deleted: []string{},
		Failing: map[string]error{},
	}
}

func (m *MemDeleter) Delete(ctx context.Context, group string, name string) error {
	key := group + "/" + name

	if err, fails := m.Failing[key]; fails {
		return err
	}

	m.Deleted = append(m.Deleted, key)

	return nil
}
