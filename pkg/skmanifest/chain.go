package skmanifest

import (
	"fmt"
)

// resolves explicit labels, and "latest" to the newest record
const LatestAlias = "latest"

// RestorePlan gives the artifacts to apply, oldest first (starting from a full
// anchor), to reconstruct the artifact with the given label. Broken parent
// links and cycles are errors - a restore that cannot reach an anchor is no
// restore at all.
func (m *Manifest) RestorePlan(label string) ([]Record, error) {
	var target *Record

	if label == LatestAlias {
		target = m.Latest()
		if target == nil {
			return nil, fmt.Errorf("cannot resolve %s: manifest is empty", LatestAlias)
		}
	} else {
		if !ValidLabel(label) {
			return nil, fmt.Errorf("invalid label: %s", label)
		}

		target = m.ByLabel(label)
		if target == nil {
			return nil, fmt.Errorf("no artifact with label %s", label)
		}
	}

	chain := []Record{*target}
	visited := map[string]bool{target.Label: true}

	current := *target
	for current.Type != TypeFull {
		if current.Parent == "" {
			return nil, fmt.Errorf("%s: incremental without a parent", current.Label)
		}

		parent := m.ByLabel(current.Parent)
		if parent == nil {
			return nil, fmt.Errorf("%s: parent %s not in manifest", current.Label, current.Parent)
		}

		if visited[parent.Label] {
			return nil, fmt.Errorf("parent cycle at %s", parent.Label)
		}
		visited[parent.Label] = true

		chain = append(chain, *parent)
		current = *parent
	}

	// walked target -> anchor; restore applies anchor -> target
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	return chain, nil
}
