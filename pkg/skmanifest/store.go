package skmanifest

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/function61/gokit/atomicfilewrite"
	"github.com/function61/gokit/fileexists"
)

type Manifest struct {
	Records []Record
}

// missing file yields an empty manifest - the first register creates it
func Load(path string) (*Manifest, error) {
	exists, err := fileexists.Exists(path)
	if err != nil {
		return nil, err
	}

	manifest := &Manifest{Records: []Record{}}

	if !exists {
		return manifest, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	lines := bufio.NewScanner(file)
	lineNumber := 0
	for lines.Scan() {
		lineNumber++

		record, err := parseRecord(lines.Text())
		if err != nil {
			return nil, fmt.Errorf("manifest %s line %d: %v", path, lineNumber, err)
		}

		manifest.Records = append(manifest.Records, record)
	}
	if err := lines.Err(); err != nil {
		return nil, err
	}

	return manifest, nil
}

func Save(path string, manifest *Manifest) error {
	return atomicfilewrite.Write(path, func(sink io.Writer) error {
		for _, record := range manifest.Records {
			if _, err := fmt.Fprintln(sink, serializeRecord(record)); err != nil {
				return err
			}
		}

		return nil
	})
}

// newest record, by registration time. for equal times the later line wins
func (m *Manifest) Latest() *Record {
	var latest *Record

	for i := range m.Records {
		record := &m.Records[i]

		if latest == nil || !record.Time.Before(latest.Time) {
			latest = record
		}
	}

	return latest
}

// newest record carrying the label. nil if the label was never registered
func (m *Manifest) ByLabel(label string) *Record {
	var found *Record

	for i := range m.Records {
		record := &m.Records[i]

		if record.Label != label {
			continue
		}

		if found == nil || !record.Time.Before(found.Time) {
			found = record
		}
	}

	return found
}

// newest full artifact - the current anchor. nil before the first full backup
func (m *Manifest) LatestFull() *Record {
	var found *Record

	for i := range m.Records {
		record := &m.Records[i]

		if record.Type != TypeFull {
			continue
		}

		if found == nil || !record.Time.Before(found.Time) {
			found = record
		}
	}

	return found
}
