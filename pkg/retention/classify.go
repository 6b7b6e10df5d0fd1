package retention

import (
	"sort"
	"time"
)

// how long every snapshot is kept before monthly thinning kicks in, unless configured otherwise
const DefaultKeepDays = 30

type Entry struct {
	Name string
	Time time.Time
}

type Classification struct {
	Keep         []Entry
	Delete       []Entry  // ascending by timestamp
	Unrecognized []string // not valid snapshot names => never deletion candidates
}

type monthKey struct {
	year  int
	month time.Month
}

// Classify decides the fate of each snapshot name: everything newer than
// now-keepFor is kept, and of the older ones the earliest snapshot of each
// (year, month) is kept as that month's representative. Names without a
// recognizable timestamp are reported separately and left alone.
//
// Pure function. Entries with identical timestamps keep their input order
// (stable sort), so for duplicates the one enumerated first wins the monthly
// keeper slot.
func Classify(names []string, now time.Time, keepFor time.Duration) Classification {
	cutoff := now.Add(-keepFor)

	c := Classification{
		Keep:         []Entry{},
		Delete:       []Entry{},
		Unrecognized: []string{},
	}

	entries := []Entry{}

	for _, name := range names {
		ts, ok := TimestampIn(name, now.Location())
		if !ok {
			c.Unrecognized = append(c.Unrecognized, name)
			continue
		}

		entries = append(entries, Entry{name, ts})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Time.Before(entries[j].Time)
	})

	monthKept := map[monthKey]bool{}

	for _, entry := range entries {
		month := monthKey{entry.Time.Year(), entry.Time.Month()}

		switch {
		case entry.Time.After(cutoff): // inside the keep-everything window. does not claim the month
			c.Keep = append(c.Keep, entry)
		case !monthKept[month]: // earliest of its month => monthly keeper
			monthKept[month] = true
			c.Keep = append(c.Keep, entry)
		default:
			c.Delete = append(c.Delete, entry)
		}
	}

	return c
}
