// Manifest of backup artifacts: a TSV ledger recording which artifact files
// exist, how they chain together (full vs. incremental) and where they live
// locally and in cloud storage.
package skmanifest

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	TypeFull = "full"
	TypeIncr = "incr"
)

type Record struct {
	Time      time.Time // when the artifact was registered
	Label     string    // year-month, e.g. "2024-06"
	Type      string    // full | incr
	Parent    string    // label the incremental builds on. empty for full
	Bytes     int64
	Sha256    string
	LocalPath string
	ObjectKey string // key in cloud storage
}

// columns: ts, label, type, parent, bytes, sha256, local_path, object_key
const manifestColumns = 8

// empty parent serialized as "-" so each line always has all columns non-empty
const noParent = "-"

func serializeRecord(record Record) string {
	parent := record.Parent
	if parent == "" {
		parent = noParent
	}

	return strings.Join([]string{
		record.Time.UTC().Format(time.RFC3339),
		record.Label,
		record.Type,
		parent,
		strconv.FormatInt(record.Bytes, 10),
		record.Sha256,
		record.LocalPath,
		record.ObjectKey,
	}, "\t")
}

func parseRecord(line string) (Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != manifestColumns {
		return Record{}, fmt.Errorf("expected %d columns; got %d", manifestColumns, len(fields))
	}

	ts, err := time.Parse(time.RFC3339, fields[0])
	if err != nil {
		return Record{}, fmt.Errorf("bad timestamp: %v", err)
	}

	if !ValidLabel(fields[1]) {
		return Record{}, fmt.Errorf("bad label: %s", fields[1])
	}

	if fields[2] != TypeFull && fields[2] != TypeIncr {
		return Record{}, fmt.Errorf("bad type: %s", fields[2])
	}

	parent := fields[3]
	if parent == noParent {
		parent = ""
	}

	bytes, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("bad bytes: %v", err)
	}

	return Record{
		Time:      ts,
		Label:     fields[1],
		Type:      fields[2],
		Parent:    parent,
		Bytes:     bytes,
		Sha256:    fields[5],
		LocalPath: fields[6],
		ObjectKey: fields[7],
	}, nil
}

// labels are year-month, e.g. "2024-06". "2024-13" is not a label
func ValidLabel(label string) bool {
	if len(label) != len("2006-01") {
		return false
	}

	_, err := time.Parse("2006-01", label)

	return err == nil
}

// object key is the local path relative to the artifact root:
// ObjectKey("/backup/artifacts/dev@2024-06.full.send.zst.age", "/backup/artifacts")
// => "dev@2024-06.full.send.zst.age"
func ObjectKey(localPath string, artifactRoot string) (string, error) {
	rel, err := filepath.Rel(artifactRoot, localPath)
	if err != nil {
		return "", err
	}

	if strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%s is not under artifact root %s", localPath, artifactRoot)
	}

	return filepath.ToSlash(rel), nil
}
