package byteshuman

import (
	"testing"

	"github.com/function61/gokit/assert"
)

func TestHumanize(t *testing.T) {
	for _, tc := range []struct {
		input  uint64
		output string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 kiB"},
		{1536, "1.5 kiB"},
		{1048576, "1.0 MiB"},
		{5368709120, "5.0 GiB"},
		{1099511627776, "1.0 TiB"},
		{1125899906842624, "1.0 PiB"},
		{1152921504606846976, "1024.0 PiB"},
	} {
		t.Run(tc.output, func(t *testing.T) {
			assert.EqualString(t, Humanize(tc.input), tc.output)
		})
	}
}
