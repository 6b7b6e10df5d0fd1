package skprune

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/djherbis/times"
	"github.com/function61/snapkeep/pkg/duration"
	"github.com/function61/snapkeep/pkg/retention"
	"github.com/function61/snapkeep/pkg/skconfig"
	"github.com/olekukonko/tablewriter"
)

// lists snapshots directly off the disk (not through the Store abstraction)
// because for entries without a name timestamp we show file metadata instead
func listSnapshots(conf *skconfig.Config, now time.Time, out io.Writer) error {
	groups, err := ioutil.ReadDir(conf.SnapshotRoot)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(out, "no snapshots (%s does not exist)\n", conf.SnapshotRoot)
			return nil
		}

		return err
	}

	tblBuilder := tablewriter.NewWriter(out)
	tblBuilder.SetAutoFormatHeaders(false)
	tblBuilder.SetBorder(false)
	tblBuilder.SetHeader([]string{"Group", "Snapshot", "Created", "Age"})

	for _, group := range groups {
		if !group.IsDir() {
			continue
		}

		dentries, err := ioutil.ReadDir(filepath.Join(conf.SnapshotRoot, group.Name()))
		if err != nil {
			return err
		}

		for _, dentry := range dentries {
			if !dentry.IsDir() {
				continue
			}

			created, note := snapshotCreationTime(dentry)

			tblBuilder.Append([]string{
				group.Name(),
				dentry.Name(),
				created.Format("2006-01-02 15:04") + note,
				duration.Humanize(now.Sub(created)),
			})
		}
	}

	tblBuilder.Render()

	return nil
}

// primarily the timestamp from the name. for unrecognized names fall back to
// filesystem metadata: birth time where the filesystem records one, mtime otherwise
func snapshotCreationTime(dentry os.FileInfo) (time.Time, string) {
	if ts, ok := retention.Timestamp(dentry.Name()); ok {
		return ts, ""
	}

	maybeCreationTime := dentry.ModTime()

	allTimes := times.Get(dentry)
	if allTimes.HasBirthTime() {
		maybeCreationTime = allTimes.BirthTime()
	}

	return maybeCreationTime, " (from filesystem; name unrecognized)"
}
