package skmanifest

import (
	"testing"
	"time"

	"github.com/function61/gokit/assert"
)

func TestNextArtifactEmptyManifest(t *testing.T) {
	manifest := &Manifest{Records: []Record{}}

	next := manifest.NextArtifact(time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC))

	assert.EqualString(t, next.Type, TypeFull)
	assert.EqualString(t, next.Reason, "no full artifact yet")
}

func TestNextArtifactIncrementalFromNewest(t *testing.T) {
	full := testRecord("2024-06", TypeFull, "", "2024-06-05T03:00:00Z")
	full.Bytes = 10 * 1024 * 1024
	incr := testRecord("2024-07", TypeIncr, "2024-06", "2024-07-05T03:00:00Z")
	incr.Bytes = 1024 * 1024

	manifest := &Manifest{Records: []Record{full, incr}}

	next := manifest.NextArtifact(time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC))

	assert.EqualString(t, next.Type, TypeIncr)
	assert.EqualString(t, next.Parent, "2024-07")
	assert.EqualString(t, next.Reason, "last full (2024-06) is recent enough")
}

func TestNextArtifactAnchorTooOld(t *testing.T) {
	full := testRecord("2023-06", TypeFull, "", "2023-06-05T03:00:00Z")
	full.Bytes = 10 * 1024 * 1024

	manifest := &Manifest{Records: []Record{full}}

	next := manifest.NextArtifact(time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC))

	assert.EqualString(t, next.Type, TypeFull)
	assert.EqualString(t, next.Reason, "12 months since last full (2023-06)")
}

func TestNextArtifactIncrementalsOutgrowAnchor(t *testing.T) {
	full := testRecord("2024-06", TypeFull, "", "2024-06-05T03:00:00Z")
	full.Bytes = 10 * 1024 * 1024
	julIncr := testRecord("2024-07", TypeIncr, "2024-06", "2024-07-05T03:00:00Z")
	julIncr.Bytes = 6 * 1024 * 1024
	augIncr := testRecord("2024-08", TypeIncr, "2024-07", "2024-08-05T03:00:00Z")
	augIncr.Bytes = 6 * 1024 * 1024

	manifest := &Manifest{Records: []Record{full, julIncr, augIncr}}

	next := manifest.NextArtifact(time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC))

	assert.EqualString(t, next.Type, TypeFull)
	assert.EqualString(t, next.Reason, "incrementals since last full have outgrown it (12.0 MiB >= 10.0 MiB)")
}

func TestNextArtifactCountsOnlyIncrementalsAfterAnchor(t *testing.T) {
	// incremental from a previous chain. must not count against the new anchor
	oldIncr := testRecord("2024-05", TypeIncr, "2024-04", "2024-05-05T03:00:00Z")
	oldIncr.Bytes = 100 * 1024 * 1024
	full := testRecord("2024-06", TypeFull, "", "2024-06-05T03:00:00Z")
	full.Bytes = 10 * 1024 * 1024

	manifest := &Manifest{Records: []Record{oldIncr, full}}

	next := manifest.NextArtifact(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))

	assert.EqualString(t, next.Type, TypeIncr)
	assert.EqualString(t, next.Parent, "2024-06")
}
