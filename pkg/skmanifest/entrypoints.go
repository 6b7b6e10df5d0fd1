package skmanifest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/function61/gokit/osutil"
	"github.com/function61/snapkeep/pkg/byteshuman"
	"github.com/function61/snapkeep/pkg/duration"
	"github.com/function61/snapkeep/pkg/skconfig"
	"github.com/minio/sha256-simd"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func Entrypoints() []*cobra.Command {
	return []*cobra.Command{
		artifactEntrypoint(),
		restoreEntrypoint(),
	}
}

func artifactEntrypoint() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "artifact",
		Short: "Backup artifact manifest operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "register [file]",
		Short: "Registers an artifact file into the manifest",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			osutil.ExitIfError(registerArtifact(args[0]))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "ls",
		Short: "Lists registered artifacts",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			osutil.ExitIfError(listArtifacts(time.Now(), os.Stdout))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "next",
		Short: "Tells whether the next backup should be a full anchor or an incremental",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			osutil.ExitIfError(printNextArtifact(time.Now(), os.Stdout))
		},
	})

	return cmd
}

func restoreEntrypoint() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore planning",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "plan [label]",
		Short: `Shows which artifacts to apply, in order, to reconstruct a label ("latest" works)`,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			osutil.ExitIfError(printRestorePlan(args[0], os.Stdout))
		},
	})

	return cmd
}

func registerArtifact(path string) error {
	conf, err := skconfig.ReadConfig()
	if err != nil {
		return err
	}

	if conf.ManifestPath == "" {
		return errors.New("manifest_path not set")
	}

	label, artifactType, parent, err := ParseArtifactName(filepath.Base(path))
	if err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	contentHash := sha256.New()

	size, err := io.Copy(contentHash, file)
	if err != nil {
		return err
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	objectKey := filepath.Base(absPath)
	if conf.ArtifactRoot != "" {
		objectKey, err = ObjectKey(absPath, conf.ArtifactRoot)
		if err != nil {
			return err
		}
	}

	manifest, err := Load(conf.ManifestPath)
	if err != nil {
		return err
	}

	manifest.Records = append(manifest.Records, Record{
		Time:      time.Now().UTC(),
		Label:     label,
		Type:      artifactType,
		Parent:    parent,
		Bytes:     size,
		Sha256:    fmt.Sprintf("%x", contentHash.Sum(nil)),
		LocalPath: absPath,
		ObjectKey: objectKey,
	})

	if err := Save(conf.ManifestPath, manifest); err != nil {
		return err
	}

	fmt.Printf("registered %s (%s, %s)\n", objectKey, artifactType, byteshuman.Humanize(uint64(size)))

	return nil
}

func listArtifacts(now time.Time, out io.Writer) error {
	_, manifest, err := loadConfigured()
	if err != nil {
		return err
	}

	tblBuilder := tablewriter.NewWriter(out)
	tblBuilder.SetAutoFormatHeaders(false)
	tblBuilder.SetBorder(false)
	tblBuilder.SetHeader([]string{"Label", "Type", "Parent", "Size", "Age"})

	for _, record := range manifest.Records {
		parent := record.Parent
		if parent == "" {
			parent = noParent
		}

		tblBuilder.Append([]string{
			record.Label,
			record.Type,
			parent,
			byteshuman.Humanize(uint64(record.Bytes)),
			duration.Humanize(now.Sub(record.Time)),
		})
	}

	tblBuilder.Render()

	return nil
}

func printNextArtifact(now time.Time, out io.Writer) error {
	_, manifest, err := loadConfigured()
	if err != nil {
		return err
	}

	decision := manifest.NextArtifact(now)

	if decision.Type == TypeIncr {
		fmt.Fprintf(out, "next artifact: incr from %s (%s)\n", decision.Parent, decision.Reason)
	} else {
		fmt.Fprintf(out, "next artifact: full (%s)\n", decision.Reason)
	}

	return nil
}

func printRestorePlan(label string, out io.Writer) error {
	_, manifest, err := loadConfigured()
	if err != nil {
		return err
	}

	chain, err := manifest.RestorePlan(label)
	if err != nil {
		return err
	}

	for i, record := range chain {
		fmt.Fprintf(out, "%d. %s (%s, %s)\n", i+1, record.ObjectKey, record.Type, byteshuman.Humanize(uint64(record.Bytes)))
	}

	return nil
}

func loadConfigured() (*skconfig.Config, *Manifest, error) {
	conf, err := skconfig.ReadConfig()
	if err != nil {
		return nil, nil, err
	}

	if conf.ManifestPath == "" {
		return nil, nil, errors.New("manifest_path not set")
	}

	manifest, err := Load(conf.ManifestPath)
	if err != nil {
		return nil, nil, err
	}

	return conf, manifest, nil
}
