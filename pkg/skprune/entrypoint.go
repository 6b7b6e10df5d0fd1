package skprune

import (
	"context"
	"os"
	"time"

	"github.com/function61/gokit/logex"
	"github.com/function61/gokit/osutil"
	"github.com/function61/snapkeep/pkg/skconfig"
	"github.com/spf13/cobra"
)

func Entrypoints() []*cobra.Command {
	return []*cobra.Command{
		pruneEntrypoint(),
		lsEntrypoint(),
	}
}

func pruneEntrypoint() *cobra.Command {
	doIt := false
	retentionDays := 0

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Prunes snapshots: keeps recent ones, thins older ones to one per month",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			osutil.ExitIfError(wrapWithStopSupport(func(ctx context.Context) error {
				return prune(ctx, doIt, retentionDays, logex.StandardLogger())
			}))
		},
	}

	cmd.Flags().BoolVarP(&doIt, "do", "", doIt, "Whether to execute the plan or run a dry run")
	cmd.Flags().IntVarP(&retentionDays, "retention-days", "", retentionDays, "Override the configured keep-everything window, in days")

	return cmd
}

func lsEntrypoint() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "Lists snapshots of all groups",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			conf, err := skconfig.ReadConfig()
			osutil.ExitIfError(err)

			osutil.ExitIfError(listSnapshots(conf, time.Now(), os.Stdout))
		},
	}
}

func wrapWithStopSupport(fn func(ctx context.Context) error) error {
	return fn(osutil.CancelOnInterruptOrTerminate(logex.StandardLogger()))
}
