package skmanifest

import (
	"fmt"
	"regexp"
)

// artifact file names encode their place in the backup chain:
//
//   dev@2024-06.full.send.zst.age
//   dev@2024-07.incr.from_2024-06.send.zst.age
var (
	fullArtifactNameRe = regexp.MustCompile(`^[^@]+@(\d{4}-\d{2})\.full\.`)
	incrArtifactNameRe = regexp.MustCompile(`^[^@]+@(\d{4}-\d{2})\.incr\.from_(\d{4}-\d{2})\.`)
)

// ParseArtifactName gives (label, type, parent) for an artifact file name.
// Unlike snapshot name parsing this is loud: registering is an explicit user
// action, so a bogus name is an error and not a shrug.
func ParseArtifactName(filename string) (string, string, string, error) {
	if match := incrArtifactNameRe.FindStringSubmatch(filename); match != nil {
		label, parent := match[1], match[2]

		if !ValidLabel(label) {
			return "", "", "", fmt.Errorf("invalid label in artifact name: %s", label)
		}
		if !ValidLabel(parent) {
			return "", "", "", fmt.Errorf("invalid parent label in artifact name: %s", parent)
		}
		if label == parent {
			return "", "", "", fmt.Errorf("artifact %s is its own parent", label)
		}

		return label, TypeIncr, parent, nil
	}

	if match := fullArtifactNameRe.FindStringSubmatch(filename); match != nil {
		label := match[1]

		if !ValidLabel(label) {
			return "", "", "", fmt.Errorf("invalid label in artifact name: %s", label)
		}

		return label, TypeFull, "", nil
	}

	return "", "", "", fmt.Errorf("unrecognized artifact name: %s", filename)
}
