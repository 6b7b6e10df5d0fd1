package skmanifest

import (
	"strings"
	"testing"
	"time"

	"github.com/function61/gokit/assert"
)

func TestSerializeAndParseRecord(t *testing.T) {
	record := Record{
		Time:      time.Date(2024, 6, 5, 3, 0, 0, 0, time.UTC),
		Label:     "2024-06",
		Type:      TypeFull,
		Parent:    "",
		Bytes:     123456789,
		Sha256:    "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08",
		LocalPath: "/backup/artifacts/dev@2024-06.full.send.zst.age",
		ObjectKey: "dev@2024-06.full.send.zst.age",
	}

	serialized := serializeRecord(record)

	assert.EqualString(t, serialized, "2024-06-05T03:00:00Z\t2024-06\tfull\t-\t123456789\t9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08\t/backup/artifacts/dev@2024-06.full.send.zst.age\tdev@2024-06.full.send.zst.age")

	parsed, err := parseRecord(serialized)
	assert.Assert(t, err == nil)
	assert.Assert(t, parsed == record)
}

func TestParseRecordErrors(t *testing.T) {
	cs := []struct {
		name      string
		input     string
		errPrefix string
	}{
		{"columns", "a\tb\tc", "expected 8 columns; got 3"},
		{"timestamp", "yesterday\t2024-06\tfull\t-\t1\tx\t/a\ta", "bad timestamp:"},
		{"label", "2024-06-05T03:00:00Z\t2024-13\tfull\t-\t1\tx\t/a\ta", "bad label: 2024-13"},
		{"type", "2024-06-05T03:00:00Z\t2024-06\tdifferential\t-\t1\tx\t/a\ta", "bad type: differential"},
		{"bytes", "2024-06-05T03:00:00Z\t2024-06\tfull\t-\tmany\tx\t/a\ta", "bad bytes:"},
	}

	for _, c := range cs {
		t.Run(c.name, func(t *testing.T) {
			_, err := parseRecord(c.input)
			assert.Assert(t, err != nil)
			assert.Assert(t, strings.HasPrefix(err.Error(), c.errPrefix))
		})
	}
}

func TestValidLabel(t *testing.T) {
	cs := []struct {
		input string
		valid bool
	}{
		{"2024-06", true},
		{"2019-12", true},
		{"2024-13", false},
		{"2024-00", false},
		{"24-06", false},
		{"2024-6", false},
		{"2024-06x", false},
		{"latest", false},
	}

	for _, c := range cs {
		t.Run(c.input, func(t *testing.T) {
			assert.Assert(t, ValidLabel(c.input) == c.valid)
		})
	}
}

func TestObjectKey(t *testing.T) {
	key, err := ObjectKey("/backup/artifacts/dev@2024-06.full.send.zst.age", "/backup/artifacts")
	assert.Assert(t, err == nil)
	assert.EqualString(t, key, "dev@2024-06.full.send.zst.age")

	key, err = ObjectKey("/backup/artifacts/laptop/dev@2024-06.full.send.zst.age", "/backup/artifacts")
	assert.Assert(t, err == nil)
	assert.EqualString(t, key, "laptop/dev@2024-06.full.send.zst.age")

	_, err = ObjectKey("/tmp/dev@2024-06.full.send.zst.age", "/backup/artifacts")
	assert.Assert(t, err != nil)
	assert.EqualString(t, err.Error(), "/tmp/dev@2024-06.full.send.zst.age is not under artifact root /backup/artifacts")
}
