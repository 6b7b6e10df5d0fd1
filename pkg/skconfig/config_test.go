package skconfig

import (
	"testing"
	"time"

	"github.com/function61/gokit/assert"
)

func TestKeepFor(t *testing.T) {
	conf := &Config{SnapshotRoot: "/mnt/snapshots"}

	assert.Assert(t, conf.KeepFor() == 30*24*time.Hour)

	conf.RetentionDays = 7

	assert.Assert(t, conf.KeepFor() == 7*24*time.Hour)
}

func TestValidate(t *testing.T) {
	assert.EqualString(t, (&Config{}).validate().Error(), "snapshot_root not set")

	assert.EqualString(t,
		(&Config{SnapshotRoot: "/mnt/snapshots", RetentionDays: -1}).validate().Error(),
		"retention_days must not be negative; got -1")

	assert.Assert(t, (&Config{SnapshotRoot: "/mnt/snapshots"}).validate() == nil)
}
