package skprune

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/function61/gokit/logex"
	"github.com/function61/snapkeep/pkg/btrfs"
	"github.com/function61/snapkeep/pkg/skconfig"
	"github.com/function61/snapkeep/pkg/skledger"
	"github.com/function61/snapkeep/pkg/snapstore"
	"github.com/mattn/go-isatty"
)

func prune(ctx context.Context, doIt bool, retentionDays int, logger *log.Logger) error {
	logl := logex.Levels(logger)

	conf, err := skconfig.ReadConfig()
	if err != nil {
		return err
	}

	keepFor := conf.KeepFor()
	if retentionDays != 0 { // flag overrides config
		keepFor = time.Duration(retentionDays) * 24 * time.Hour
	}

	if doIt {
		environmentPreflight(ctx, conf, logl)
	}

	plan, err := computePlan(snapstore.DirStore(conf.SnapshotRoot), time.Now(), keepFor, logl)
	if err != nil {
		return err
	}

	if len(plan.Groups) == 0 && len(plan.Skipped) == 0 {
		logl.Info.Println("nothing to prune")
		return nil
	}

	if !doIt {
		explainPlan(plan, os.Stdout, isatty.IsTerminal(os.Stdout.Fd()))
		return nil
	}

	outcome := executePlan(ctx, plan, btrfs.NewSubvolumeDeleter(conf.SnapshotRoot), logl)

	printOutcome(outcome, os.Stdout)

	if conf.LedgerPath != "" {
		if err := skledger.Record(conf.LedgerPath, outcome.ledgerRun()); err != nil {
			logl.Error.Printf("recording run to ledger: %v", err)
		}
	}

	return nil
}

// advisory probes only. a failed probe means deletions will most likely fail
// (and each failure is handled), so these never stop the run.
func environmentPreflight(ctx context.Context, conf *skconfig.Config, logl *logex.Leveled) {
	if err := btrfs.CheckPrivilege(ctx); err != nil {
		logl.Error.Printf("privilege pre-check: %v", err)
	}

	if onBtrfs, err := btrfs.IsBtrfsMount(conf.SnapshotRoot); err != nil {
		logl.Debug.Printf("btrfs mount probe: %v", err)
	} else if !onBtrfs {
		logl.Error.Printf("%s is not on a btrfs mount", conf.SnapshotRoot)
	}
}
