// Formats byte amounts into human readable format
package byteshuman

import (
	"fmt"
)

const unitPrefixes = "kMGTP"

func Humanize(num uint64) string {
	if num < 1024 {
		return fmt.Sprintf("%d B", num)
	}

	value := float64(num)
	prefixIdx := -1

	for value >= 1024 && prefixIdx < len(unitPrefixes)-1 {
		value /= 1024
		prefixIdx++
	}

	return fmt.Sprintf("%.1f %ciB", value, unitPrefixes[prefixIdx])
}
