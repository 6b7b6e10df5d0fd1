package sksync

import (
	"context"
	"log"

	"github.com/function61/gokit/fileexists"
	"github.com/function61/gokit/logex"
	"github.com/function61/gokit/osutil"
	"github.com/function61/snapkeep/pkg/skconfig"
	"github.com/function61/snapkeep/pkg/skmanifest"
	"github.com/spf13/cobra"
)

func Entrypoint() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Syncs backup artifacts with the configured S3 bucket",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "push",
		Short: "Uploads artifacts (and the manifest) the bucket doesn't have yet",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			osutil.ExitIfError(wrapWithStopSupport(func(ctx context.Context) error {
				return push(ctx, logex.StandardLogger())
			}))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "pull",
		Short: "Downloads manifest artifacts that are missing locally",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			osutil.ExitIfError(wrapWithStopSupport(func(ctx context.Context) error {
				return pull(ctx, logex.StandardLogger())
			}))
		},
	})

	return cmd
}

func push(ctx context.Context, logger *log.Logger) error {
	conf, err := skconfig.ReadConfig()
	if err != nil {
		return err
	}

	s, err := syncerFromConfig(conf, logger)
	if err != nil {
		return err
	}

	manifest, err := skmanifest.Load(conf.ManifestPath)
	if err != nil {
		return err
	}

	return s.push(ctx, conf.ManifestPath, manifest)
}

func pull(ctx context.Context, logger *log.Logger) error {
	conf, err := skconfig.ReadConfig()
	if err != nil {
		return err
	}

	s, err := syncerFromConfig(conf, logger)
	if err != nil {
		return err
	}

	manifestExists, err := fileexists.Exists(conf.ManifestPath)
	if err != nil {
		return err
	}

	return s.pull(ctx, conf.ManifestPath, !manifestExists)
}

func wrapWithStopSupport(fn func(ctx context.Context) error) error {
	return fn(osutil.CancelOnInterruptOrTerminate(logex.StandardLogger()))
}
