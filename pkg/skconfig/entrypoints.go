package skconfig

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/function61/gokit/fileexists"
	"github.com/function61/gokit/osutil"
	"github.com/spf13/cobra"
)

func Entrypoints() []*cobra.Command {
	return []*cobra.Command{
		configInitEntrypoint(),
		configPrintEntrypoint(),
	}
}

func configInitEntrypoint() *cobra.Command {
	return &cobra.Command{
		Use:   "config-init [snapshotRoot]",
		Short: "Initialize configuration",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			confPath, err := ConfigFilePath()
			osutil.ExitIfError(err)

			exists, err := fileexists.Exists(confPath)
			osutil.ExitIfError(err)

			if exists {
				osutil.ExitIfError(errors.New("config file already exists"))
			}

			conf := &Config{
				SnapshotRoot: args[0],
			}

			osutil.ExitIfError(WriteConfig(conf))
		},
	}
}

func configPrintEntrypoint() *cobra.Command {
	return &cobra.Command{
		Use:   "config-print",
		Short: "Prints path to config file & its contents",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			confPath, err := ConfigFilePath()
			osutil.ExitIfError(err)

			fmt.Printf("file: %s\n", confPath)

			exists, err := fileexists.Exists(confPath)
			osutil.ExitIfError(err)

			if !exists {
				fmt.Printf(".. does not exist. To configure, run:\n    $ %s config-init\n", os.Args[0])
				return
			}

			file, err := os.Open(confPath)
			osutil.ExitIfError(err)
			defer file.Close()

			_, err = io.Copy(os.Stdout, file)
			osutil.ExitIfError(err)
		},
	}
}
