package skledger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/function61/gokit/logex"
	"github.com/function61/gokit/osutil"
	"github.com/function61/snapkeep/pkg/duration"
	"github.com/function61/snapkeep/pkg/skconfig"
	"github.com/function61/ubackup/pkg/ubbackup"
	"github.com/function61/ubackup/pkg/ubtypes"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func Entrypoints() []*cobra.Command {
	return []*cobra.Command{
		historyEntrypoint(),
		ledgerEntrypoint(),
	}
}

func historyEntrypoint() *cobra.Command {
	max := 20

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Shows recent prune runs",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			osutil.ExitIfError(printHistory(os.Stdout, max))
		},
	}

	cmd.Flags().IntVarP(&max, "max", "n", max, "How many runs to show")

	return cmd
}

func ledgerEntrypoint() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Prune run ledger operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "backup",
		Short: "Backs up the ledger to the configured µbackup storage",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			rootLogger := logex.StandardLogger()

			osutil.ExitIfError(backupLedger(
				osutil.CancelOnInterruptOrTerminate(rootLogger),
				rootLogger))
		},
	})

	return cmd
}

func printHistory(out *os.File, max int) error {
	conf, err := skconfig.ReadConfig()
	if err != nil {
		return err
	}

	if conf.LedgerPath == "" {
		return errors.New("ledger_path not set")
	}

	db, err := Open(conf.LedgerPath)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := ListRuns(db, max)
	if err != nil {
		return err
	}

	tblBuilder := tablewriter.NewWriter(out)
	tblBuilder.SetAutoFormatHeaders(false)
	tblBuilder.SetBorder(false)
	tblBuilder.SetHeader([]string{"Run", "Started", "Took", "Deleted", "Failed"})

	for _, run := range runs {
		tblBuilder.Append([]string{
			run.ID,
			run.Started.Format("2006-01-02 15:04"),
			duration.Humanize(run.Finished.Sub(run.Started)),
			strconv.Itoa(lo.SumBy(run.Groups, func(group GroupCounts) int { return group.Deleted })),
			strconv.Itoa(lo.SumBy(run.Groups, func(group GroupCounts) int { return group.Failed })),
		})
	}

	tblBuilder.Render()

	return nil
}

func backupLedger(ctx context.Context, logger *log.Logger) error {
	conf, err := skconfig.ReadConfig()
	if err != nil {
		return err
	}

	if conf.BackupConfig == nil {
		return errors.New("backups not configured")
	}

	if conf.LedgerPath == "" {
		return errors.New("ledger_path not set")
	}

	db, err := Open(conf.LedgerPath)
	if err != nil {
		return err
	}
	defer db.Close()

	target := ubtypes.BackupTarget{
		ServiceName: "snapkeep",
		TaskId:      fmt.Sprintf("%d", os.Getpid()),
	}

	return ubbackup.BackupAndStore(ctx, target, *conf.BackupConfig, func(sink io.Writer) error {
		return exportRuns(db, sink)
	}, logex.Prefix("µbackup", logger))
}
