// Ledger of prune runs (bolt DB), so "what did pruning do, and when" can be
// answered afterwards.
package skledger

import (
	"encoding/json"
	"io"
	"time"

	"github.com/asdine/storm/codec/msgpack"
	"github.com/function61/gokit/cryptorandombytes"
	bolt "go.etcd.io/bbolt"
)

type GroupCounts struct {
	Group        string
	Kept         int
	Deleted      int
	Failed       int
	Unrecognized int
}

type Run struct {
	ID       string
	Started  time.Time
	Finished time.Time
	Groups   []GroupCounts
}

// ids sort chronologically, so bolt's key order doubles as time order
func NewRunId(started time.Time) string {
	return started.UTC().Format("20060102_1504") + "-" + cryptorandombytes.Hex(2)
}

var runsBucket = []byte("prunerun:v1")

func Open(ledgerPath string) (*bolt.DB, error) {
	return bolt.Open(ledgerPath, 0700, nil)
}

// Record appends one run to the ledger. first use creates the DB & bucket.
func Record(ledgerPath string, run Run) error {
	db, err := Open(ledgerPath)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(runsBucket)
		if err != nil {
			return err
		}

		data, err := msgpack.Codec.Marshal(&run)
		if err != nil {
			return err
		}

		return bucket.Put([]byte(run.ID), data)
	})
}

// newest first
func ListRuns(db *bolt.DB, max int) ([]Run, error) {
	runs := []Run{}

	if err := db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(runsBucket)
		if bucket == nil { // nothing recorded yet
			return nil
		}

		cursor := bucket.Cursor()
		for key, value := cursor.Last(); key != nil && len(runs) < max; key, value = cursor.Prev() {
			run := Run{}
			if err := msgpack.Codec.Unmarshal(value, &run); err != nil {
				return err
			}

			runs = append(runs, run)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return runs, nil
}

// each run as one JSON line, oldest first. this is the backup stream format
func exportRuns(db *bolt.DB, sink io.Writer) error {
	encoder := json.NewEncoder(sink)

	return db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(runsBucket)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(key []byte, value []byte) error {
			run := Run{}
			if err := msgpack.Codec.Unmarshal(value, &run); err != nil {
				return err
			}

			return encoder.Encode(run)
		})
	})
}
