package snapstore

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/function61/gokit/assert"
)

func TestDirStore(t *testing.T) {
	root := t.TempDir()

	for _, dir := range []string{
		"home/home-20240601_0000",
		"home/home-20240410_0000",
		"etc/etc-20240601_0000",
	} {
		assert.Assert(t, os.MkdirAll(filepath.Join(root, dir), 0755) == nil)
	}

	// stray files must not show up as groups or entries
	assert.Assert(t, ioutil.WriteFile(filepath.Join(root, "README.txt"), []byte("hi"), 0644) == nil)
	assert.Assert(t, ioutil.WriteFile(filepath.Join(root, "home", "notes.txt"), []byte("hi"), 0644) == nil)

	store := DirStore(root)

	groups, err := store.Groups()
	assert.Assert(t, err == nil)
	assert.EqualString(t, strings.Join(groups, " "), "etc home")

	names, err := store.EntryNames("home")
	assert.Assert(t, err == nil)
	assert.EqualString(t, strings.Join(names, " "), "home-20240410_0000 home-20240601_0000")

	_, err = store.EntryNames("nonexistent")
	assert.Assert(t, err != nil)
}

func TestDirStoreMissingRoot(t *testing.T) {
	store := DirStore(filepath.Join(t.TempDir(), "does-not-exist"))

	groups, err := store.Groups()
	assert.Assert(t, err == nil)
	assert.Assert(t, len(groups) == 0)
}
