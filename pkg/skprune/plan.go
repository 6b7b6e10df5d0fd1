// Prune driver: computes a retention plan over every snapshot group, explains
// it (dry run) or executes the deletions.
package skprune

import (
	"fmt"
	"io"
	"time"

	"github.com/function61/gokit/logex"
	"github.com/function61/snapkeep/pkg/retention"
	"github.com/function61/snapkeep/pkg/snapstore"
	"github.com/olekukonko/tablewriter"
)

type GroupPlan struct {
	Group string
	retention.Classification
}

type Plan struct {
	Cutoff  time.Time // same instant for every group
	Groups  []*GroupPlan
	Skipped []string // groups whose enumeration failed
}

func computePlan(store snapstore.Store, now time.Time, keepFor time.Duration, logl *logex.Leveled) (*Plan, error) {
	groups, err := store.Groups()
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		Cutoff:  now.Add(-keepFor),
		Groups:  []*GroupPlan{},
		Skipped: []string{},
	}

	for _, group := range groups {
		names, err := store.EntryNames(group)
		if err != nil { // broken group must not stop the others from being pruned
			logl.Error.Printf("skipping group %s: %v", group, err)
			plan.Skipped = append(plan.Skipped, group)
			continue
		}

		classification := retention.Classify(names, now, keepFor)

		for _, name := range classification.Unrecognized {
			if retention.HasTimestampShape(name) {
				logl.Error.Printf("%s/%s: timestamp-shaped name but not a valid date; leaving alone", group, name)
			} else {
				logl.Debug.Printf("%s/%s: no timestamp in name; leaving alone", group, name)
			}
		}

		plan.Groups = append(plan.Groups, &GroupPlan{
			Group:          group,
			Classification: classification,
		})
	}

	return plan, nil
}

func explainPlan(plan *Plan, out io.Writer, renderTable bool) {
	type row struct {
		group    string
		snapshot string
		fate     string
	}

	rows := []row{}

	for _, group := range plan.Groups {
		for _, entry := range group.Keep {
			fate := "keep (monthly)"
			if entry.Time.After(plan.Cutoff) {
				fate = "keep (recent)"
			}

			rows = append(rows, row{group.Group, entry.Name, fate})
		}

		for _, entry := range group.Delete {
			rows = append(rows, row{group.Group, entry.Name, "delete"})
		}

		for _, name := range group.Unrecognized {
			rows = append(rows, row{group.Group, name, "unrecognized"})
		}
	}

	if renderTable {
		tblBuilder := tablewriter.NewWriter(out)
		tblBuilder.SetAutoFormatHeaders(false)
		tblBuilder.SetBorder(false)
		tblBuilder.SetHeader([]string{"Group", "Snapshot", "Fate"})

		for _, row := range rows {
			tblBuilder.Append([]string{row.group, row.snapshot, row.fate})
		}

		tblBuilder.Render()
	} else {
		for _, row := range rows {
			fmt.Fprintf(out, "%s %s/%s\n", row.fate, row.group, row.snapshot)
		}
	}

	for _, group := range plan.Skipped {
		fmt.Fprintf(out, "SKIPPED (enumeration failed) %s/\n", group)
	}

	fmt.Fprintf(out, "\nwould delete %d snapshot(s)\n", plan.TotalDelete())
}

func (p *Plan) TotalDelete() int {
	total := 0
	for _, group := range p.Groups {
		total += len(group.Delete)
	}

	return total
}
