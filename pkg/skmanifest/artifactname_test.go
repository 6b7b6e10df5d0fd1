package skmanifest

import (
	"testing"

	"github.com/function61/gokit/assert"
)

func TestParseArtifactName(t *testing.T) {
	cs := []struct {
		input  string
		expect string // "label type parent", or the error message
	}{
		{"dev@2024-06.full.send.zst.age", "2024-06 full"},
		{"dev@2024-07.incr.from_2024-06.send.zst.age", "2024-07 incr 2024-06"},
		{"workstation@2025-01.full.tar.zst", "2025-01 full"},
		{"dev@2024-13.full.send.zst.age", "invalid label in artifact name: 2024-13"},
		{"dev@2024-07.incr.from_2024-13.send.zst.age", "invalid parent label in artifact name: 2024-13"},
		{"dev@2024-07.incr.from_2024-07.send.zst.age", "artifact 2024-07 is its own parent"},
		{"random.tar.gz", "unrecognized artifact name: random.tar.gz"},
		{"dev@latest.full.send.zst.age", "unrecognized artifact name: dev@latest.full.send.zst.age"},
	}

	for _, c := range cs {
		t.Run(c.input, func(t *testing.T) {
			label, artifactType, parent, err := ParseArtifactName(c.input)

			got := ""
			if err != nil {
				got = err.Error()
			} else {
				got = label + " " + artifactType
				if parent != "" {
					got += " " + parent
				}
			}

			assert.EqualString(t, got, c.expect)
		})
	}
}
