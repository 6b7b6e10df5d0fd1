package main

import (
	"os"

	"github.com/function61/gokit/dynversion"
	"github.com/function61/gokit/osutil"
	"github.com/function61/snapkeep/pkg/skconfig"
	"github.com/function61/snapkeep/pkg/skledger"
	"github.com/function61/snapkeep/pkg/skmanifest"
	"github.com/function61/snapkeep/pkg/skprune"
	"github.com/function61/snapkeep/pkg/sksync"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     os.Args[0],
		Short:   "snapkeep: keeps btrfs snapshots pruned and their backup artifacts synced",
		Version: dynversion.Version,
		// hide the default "completion" subcommand from polluting UX (it can still be used). https://github.com/spf13/cobra/issues/1507
		CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	}

	// pruning commands are at the root level since they're the ones used most often
	for _, entrypoint := range skprune.Entrypoints() {
		rootCmd.AddCommand(entrypoint)
	}

	for _, entrypoint := range skledger.Entrypoints() {
		rootCmd.AddCommand(entrypoint)
	}

	for _, entrypoint := range skmanifest.Entrypoints() {
		rootCmd.AddCommand(entrypoint)
	}

	rootCmd.AddCommand(sksync.Entrypoint())

	for _, entrypoint := range skconfig.Entrypoints() {
		rootCmd.AddCommand(entrypoint)
	}

	osutil.ExitIfError(rootCmd.Execute())
}
