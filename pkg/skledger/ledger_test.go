package skledger

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/function61/gokit/assert"
)

func TestRecordAndListRuns(t *testing.T) {
	ledgerPath := filepath.Join(t.TempDir(), "ledger.db")

	started := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"20240613_1200-aaaa", "20240614_1200-bbbb", "20240615_1200-cccc"} {
		assert.Assert(t, Record(ledgerPath, Run{
			ID:       id,
			Started:  started.AddDate(0, 0, i-2),
			Finished: started.AddDate(0, 0, i-2).Add(3 * time.Second),
			Groups: []GroupCounts{
				{Group: "home", Kept: 5, Deleted: i, Failed: 0, Unrecognized: 1},
			},
		}) == nil)
	}

	db, err := Open(ledgerPath)
	assert.Assert(t, err == nil)
	defer db.Close()

	runs, err := ListRuns(db, 2)
	assert.Assert(t, err == nil)

	// newest first, respecting max
	assert.Assert(t, len(runs) == 2)
	assert.EqualString(t, runs[0].ID, "20240615_1200-cccc")
	assert.EqualString(t, runs[1].ID, "20240614_1200-bbbb")

	assert.EqualString(t, runs[0].Groups[0].Group, "home")
	assert.Assert(t, runs[0].Groups[0].Deleted == 2)
}

func TestExportRuns(t *testing.T) {
	ledgerPath := filepath.Join(t.TempDir(), "ledger.db")

	assert.Assert(t, Record(ledgerPath, Run{
		ID:       "20240615_1200-cafe",
		Started:  time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
		Finished: time.Date(2024, 6, 15, 12, 0, 2, 0, time.UTC),
		Groups:   []GroupCounts{{Group: "etc", Kept: 3}},
	}) == nil)

	db, err := Open(ledgerPath)
	assert.Assert(t, err == nil)
	defer db.Close()

	export := &bytes.Buffer{}
	assert.Assert(t, exportRuns(db, export) == nil)

	assert.Assert(t, strings.Contains(export.String(), `"ID":"20240615_1200-cafe"`))
	assert.Assert(t, strings.Contains(export.String(), `"Group":"etc"`))
}

func TestNewRunId(t *testing.T) {
	id := NewRunId(time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC))

	assert.Assert(t, strings.HasPrefix(id, "20240615_1200-"))
	assert.Assert(t, len(id) == len("20240615_1200-")+4)
}
