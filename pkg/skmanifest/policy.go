package skmanifest

import (
	"fmt"
	"time"

	"github.com/function61/snapkeep/pkg/byteshuman"
)

// a new full anchor at least this often, no matter how small the incrementals are
const anchorEveryMonths = 12

type NextArtifact struct {
	Type   string
	Parent string // label to increment from. empty when Type is full
	Reason string
}

// NextArtifact decides what the next backup artifact should be: a full anchor
// when enough months have passed since the last one or when the incrementals
// taken since have outgrown the anchor itself, an incremental from the newest
// artifact otherwise.
func (m *Manifest) NextArtifact(now time.Time) NextArtifact {
	anchor := m.LatestFull()
	if anchor == nil {
		return NextArtifact{Type: TypeFull, Reason: "no full artifact yet"}
	}

	if months := monthsBetween(anchor.Time, now); months >= anchorEveryMonths {
		return NextArtifact{
			Type:   TypeFull,
			Reason: fmt.Sprintf("%d months since last full (%s)", months, anchor.Label),
		}
	}

	incrementalBytes := int64(0)
	for _, record := range m.Records {
		if record.Type == TypeIncr && record.Time.After(anchor.Time) {
			incrementalBytes += record.Bytes
		}
	}

	if incrementalBytes >= anchor.Bytes {
		return NextArtifact{
			Type: TypeFull,
			Reason: fmt.Sprintf(
				"incrementals since last full have outgrown it (%s >= %s)",
				byteshuman.Humanize(uint64(incrementalBytes)),
				byteshuman.Humanize(uint64(anchor.Bytes))),
		}
	}

	return NextArtifact{
		Type:   TypeIncr,
		Parent: m.Latest().Label,
		Reason: fmt.Sprintf("last full (%s) is recent enough", anchor.Label),
	}
}

func monthsBetween(a time.Time, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}
