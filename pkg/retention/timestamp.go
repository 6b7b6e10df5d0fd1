// Two-tier snapshot retention: recent snapshots are all kept, older ones are
// thinned down to one per month.
package retention

import (
	"regexp"
	"time"
)

// matches e.g. "home-20240615_1200". the timestamp must be at the very end of the name
var nameTimestampRe = regexp.MustCompile(`-(\d{8}_\d{4})$`)

const nameTimestampFormat = "20060102_1504"

// Timestamp extracts the creation time encoded at the end of a snapshot name.
// Not-ok for names without the suffix, and also for suffixes that have the right
// shape but aren't valid calendar timestamps (there is no 13th month).
func Timestamp(name string) (time.Time, bool) {
	return TimestampIn(name, time.Local)
}

// snapshot names don't encode a timezone, so the caller chooses the location to
// interpret them in
func TimestampIn(name string, loc *time.Location) (time.Time, bool) {
	match := nameTimestampRe.FindStringSubmatch(name)
	if match == nil {
		return time.Time{}, false
	}

	ts, err := time.ParseInLocation(nameTimestampFormat, match[1], loc)
	if err != nil {
		return time.Time{}, false
	}

	return ts, true
}

// HasTimestampShape tells whether the name merely ends in something timestamp-shaped.
// Shaped but failing Timestamp() means the timestamp was an invalid calendar date.
func HasTimestampShape(name string) bool {
	return nameTimestampRe.MatchString(name)
}
