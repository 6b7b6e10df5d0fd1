package skmanifest

import (
	"strings"
	"testing"

	"github.com/function61/gokit/assert"
)

func TestRestorePlan(t *testing.T) {
	manifest := &Manifest{Records: []Record{
		testRecord("2024-01", TypeFull, "", "2024-01-05T03:00:00Z"),
		testRecord("2024-02", TypeIncr, "2024-01", "2024-02-05T03:00:00Z"),
		testRecord("2024-03", TypeIncr, "2024-02", "2024-03-05T03:00:00Z"),
	}}

	plan, err := manifest.RestorePlan("2024-03")
	assert.Assert(t, err == nil)
	assert.EqualString(t, planLabels(plan), "2024-01 2024-02 2024-03")

	plan, err = manifest.RestorePlan("latest")
	assert.Assert(t, err == nil)
	assert.EqualString(t, planLabels(plan), "2024-01 2024-02 2024-03")

	// restoring the anchor itself needs nothing else
	plan, err = manifest.RestorePlan("2024-01")
	assert.Assert(t, err == nil)
	assert.EqualString(t, planLabels(plan), "2024-01")
}

func TestRestorePlanErrors(t *testing.T) {
	manifest := &Manifest{Records: []Record{
		testRecord("2024-01", TypeFull, "", "2024-01-05T03:00:00Z"),
		testRecord("2024-04", TypeIncr, "2024-09", "2024-04-05T03:00:00Z"),
		testRecord("2024-05", TypeIncr, "", "2024-05-05T03:00:00Z"),
	}}

	cs := []struct {
		label string
		err   string
	}{
		{"2024-13", "invalid label: 2024-13"},
		{"2024-08", "no artifact with label 2024-08"},
		{"2024-04", "2024-04: parent 2024-09 not in manifest"},
		{"2024-05", "2024-05: incremental without a parent"},
	}

	for _, c := range cs {
		t.Run(c.label, func(t *testing.T) {
			_, err := manifest.RestorePlan(c.label)

			assert.Assert(t, err != nil)
			assert.EqualString(t, err.Error(), c.err)
		})
	}
}

func TestRestorePlanParentCycle(t *testing.T) {
	manifest := &Manifest{Records: []Record{
		testRecord("2024-01", TypeIncr, "2024-02", "2024-01-05T03:00:00Z"),
		testRecord("2024-02", TypeIncr, "2024-01", "2024-02-05T03:00:00Z"),
	}}

	_, err := manifest.RestorePlan("2024-02")
	assert.Assert(t, err != nil)
	assert.EqualString(t, err.Error(), "parent cycle at 2024-02")
}

func TestRestorePlanEmptyManifest(t *testing.T) {
	empty := &Manifest{Records: []Record{}}

	_, err := empty.RestorePlan("latest")
	assert.Assert(t, err != nil)
	assert.EqualString(t, err.Error(), "cannot resolve latest: manifest is empty")
}

func planLabels(plan []Record) string {
	labels := []string{}
	for _, record := range plan {
		labels = append(labels, record.Label)
	}

	return strings.Join(labels, " ")
}
