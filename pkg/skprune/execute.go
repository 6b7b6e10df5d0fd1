package skprune

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/function61/gokit/logex"
	"github.com/function61/snapkeep/pkg/skledger"
	"github.com/function61/snapkeep/pkg/snapstore"
	"github.com/samber/lo"
)

type DeletionFailure struct {
	Name  string
	Error string
}

type GroupOutcome struct {
	Group        string
	Kept         int
	Deleted      []string
	Failed       []DeletionFailure
	Unrecognized []string
}

type Outcome struct {
	Started  time.Time
	Finished time.Time
	Groups   []*GroupOutcome
	Skipped  []string
}

// deletes everything the plan marked for deletion, oldest first. a failed
// deletion is logged and the sweep moves on - one stuck subvolume must not
// shield the rest from pruning. no retries.
func executePlan(ctx context.Context, plan *Plan, deleter snapstore.Deleter, logl *logex.Leveled) *Outcome {
	outcome := &Outcome{
		Started: time.Now(),
		Groups:  []*GroupOutcome{},
		Skipped: plan.Skipped,
	}

	for _, group := range plan.Groups {
		groupOutcome := &GroupOutcome{
			Group:        group.Group,
			Kept:         len(group.Keep),
			Deleted:      []string{},
			Failed:       []DeletionFailure{},
			Unrecognized: group.Unrecognized,
		}

		for _, entry := range group.Delete {
			if err := deleter.Delete(ctx, group.Group, entry.Name); err != nil {
				logl.Error.Printf("delete %s/%s: %v", group.Group, entry.Name, err)

				groupOutcome.Failed = append(groupOutcome.Failed, DeletionFailure{
					Name:  entry.Name,
					Error: err.Error(),
				})
				continue
			}

			logl.Info.Printf("deleted %s/%s", group.Group, entry.Name)

			groupOutcome.Deleted = append(groupOutcome.Deleted, entry.Name)
		}

		outcome.Groups = append(outcome.Groups, groupOutcome)
	}

	outcome.Finished = time.Now()

	return outcome
}

func printOutcome(outcome *Outcome, out io.Writer) {
	for _, group := range outcome.Groups {
		fmt.Fprintf(
			out,
			"%s: kept %d, deleted %d, failed %d, unrecognized %d\n",
			group.Group,
			group.Kept,
			len(group.Deleted),
			len(group.Failed),
			len(group.Unrecognized))

		for _, failure := range group.Failed {
			fmt.Fprintf(out, "  failed %s: %s\n", failure.Name, failure.Error)
		}
	}

	for _, group := range outcome.Skipped {
		fmt.Fprintf(out, "%s: skipped (enumeration failed)\n", group)
	}
}

func (o *Outcome) ledgerRun() skledger.Run {
	return skledger.Run{
		ID:       skledger.NewRunId(o.Started),
		Started:  o.Started,
		Finished: o.Finished,
		Groups: lo.Map(o.Groups, func(group *GroupOutcome, _ int) skledger.GroupCounts {
			return skledger.GroupCounts{
				Group:        group.Group,
				Kept:         group.Kept,
				Deleted:      len(group.Deleted),
				Failed:       len(group.Failed),
				Unrecognized: len(group.Unrecognized),
			}
		}),
	}
}
