package duration

import (
	"fmt"
	"time"
)

// Humanize gives a duration as one coarse unit, e.g. "3 days". Precision is
// deliberately thrown away - in UI tables "2 hours" reads better than "1h59m59.8s".
func Humanize(dur time.Duration) string {
	plural := func(num int64, unit string) string {
		if num == 1 {
			return "1 " + unit
		}

		return fmt.Sprintf("%d %ss", num, unit)
	}

	switch {
	case dur >= 24*time.Hour:
		return plural(int64(dur/(24*time.Hour)), "day")
	case dur >= time.Hour:
		return plural(int64(dur/time.Hour), "hour")
	case dur >= time.Minute:
		return plural(int64(dur/time.Minute), "minute")
	case dur >= time.Second:
		return plural(int64(dur/time.Second), "second")
	default:
		return plural(dur.Milliseconds(), "millisecond")
	}
}
