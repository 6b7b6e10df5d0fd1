// Syncs backup artifacts between the local artifact root and an S3 bucket.
package sksync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/function61/gokit/atomicfilewrite"
	"github.com/function61/gokit/aws/s3facade"
	"github.com/function61/gokit/fileexists"
	"github.com/function61/gokit/logex"
	"github.com/function61/snapkeep/pkg/byteshuman"
	"github.com/function61/snapkeep/pkg/skconfig"
	"github.com/function61/snapkeep/pkg/skmanifest"
	"github.com/minio/sha256-simd"
	"github.com/samber/lo"
)

// the manifest always lives under the same key, so a fresh machine can find it
// without knowing anything but the bucket
const manifestObjectKey = "manifest.tsv"

type syncer struct {
	bucket string
	client *s3.S3
	logl   *logex.Leveled
}

func newSyncer(opts string, logger *log.Logger) (*syncer, error) {
	bucket, regionId, accessKeyId, secret, err := parseOptionsString(opts)
	if err != nil {
		return nil, err
	}

	client, err := s3facade.Client(accessKeyId, secret, regionId)
	if err != nil {
		return nil, err
	}

	return &syncer{
		bucket: bucket,
		client: client,
		logl:   logex.Levels(logger),
	}, nil
}

// uploads artifacts the bucket doesn't have, then the manifest. manifest goes
// last so it never names artifacts the bucket is missing.
func (s *syncer) push(ctx context.Context, manifestPath string, manifest *skmanifest.Manifest) error {
	existing, err := s.remoteKeys(ctx)
	if err != nil {
		return err
	}

	missing := computeMissing(manifest.Records, existing)

	for _, record := range missing {
		if err := s.uploadArtifact(ctx, record); err != nil {
			return err
		}
	}

	if err := s.uploadManifest(ctx, manifestPath); err != nil {
		return err
	}

	s.logl.Info.Printf(
		"pushed %d artifact(s), %s",
		len(missing),
		byteshuman.Humanize(uint64(lo.SumBy(missing, func(record skmanifest.Record) int64 { return record.Bytes }))))

	return nil
}

// downloads artifacts the manifest names that are missing locally. with
// fetchManifest also fetches the manifest itself first, which is how a fresh
// machine bootstraps.
func (s *syncer) pull(ctx context.Context, manifestPath string, fetchManifest bool) error {
	if fetchManifest {
		s.logl.Info.Printf("fetching %s from bucket", manifestObjectKey)

		if err := s.downloadManifest(ctx, manifestPath); err != nil {
			return err
		}
	}

	manifest, err := skmanifest.Load(manifestPath)
	if err != nil {
		return err
	}

	onDisk := map[string]bool{}
	for _, record := range manifest.Records {
		exists, err := fileexists.Exists(record.LocalPath)
		if err != nil {
			return err
		}

		if exists {
			onDisk[record.ObjectKey] = true
		}
	}

	missing := computeMissing(manifest.Records, onDisk)

	for _, record := range missing {
		if err := s.downloadArtifact(ctx, record); err != nil {
			return err
		}
	}

	s.logl.Info.Printf(
		"pulled %d artifact(s), %s",
		len(missing),
		byteshuman.Humanize(uint64(lo.SumBy(missing, func(record skmanifest.Record) int64 { return record.Bytes }))))

	return nil
}

func (s *syncer) uploadArtifact(ctx context.Context, record skmanifest.Record) error {
	s.logl.Info.Printf("uploading %s (%s)", record.ObjectKey, byteshuman.Humanize(uint64(record.Bytes)))

	file, err := os.Open(record.LocalPath)
	if err != nil {
		return err
	}
	defer file.Close()

	// catch bit rot before it propagates to the bucket
	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return err
	}

	if digest := fmt.Sprintf("%x", hash.Sum(nil)); digest != record.Sha256 {
		return fmt.Errorf("%s: local sha256 %s does not match manifest %s", record.ObjectKey, digest, record.Sha256)
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return err
	}

	if _, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket: &s.bucket,
		Key:    aws.String(record.ObjectKey),
		Body:   file,
	}); err != nil {
		return fmt.Errorf("s3 PutObject: %v", err)
	}

	return nil
}

func (s *syncer) uploadManifest(ctx context.Context, manifestPath string) error {
	file, err := os.Open(manifestPath)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket: &s.bucket,
		Key:    aws.String(manifestObjectKey),
		Body:   file,
	}); err != nil {
		return fmt.Errorf("s3 PutObject: %v", err)
	}

	return nil
}

func (s *syncer) downloadArtifact(ctx context.Context, record skmanifest.Record) error {
	s.logl.Info.Printf("downloading %s (%s)", record.ObjectKey, byteshuman.Humanize(uint64(record.Bytes)))

	res, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    aws.String(record.ObjectKey),
	})
	if err != nil {
		return fmt.Errorf("s3 GetObject: %v", err)
	}
	defer res.Body.Close()

	if err := os.MkdirAll(filepath.Dir(record.LocalPath), 0755); err != nil {
		return err
	}

	if err := atomicfilewrite.Write(record.LocalPath, func(sink io.Writer) error {
		hash := sha256.New()

		if _, err := io.Copy(io.MultiWriter(sink, hash), res.Body); err != nil {
			return err
		}

		if digest := fmt.Sprintf("%x", hash.Sum(nil)); digest != record.Sha256 {
			return fmt.Errorf("sha256 mismatch: got %s, manifest has %s", digest, record.Sha256)
		}

		return nil
	}); err != nil {
		return fmt.Errorf("%s: %v", record.ObjectKey, err)
	}

	return nil
}

func (s *syncer) downloadManifest(ctx context.Context, manifestPath string) error {
	res, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    aws.String(manifestObjectKey),
	})
	if err != nil {
		return fmt.Errorf("s3 GetObject: %v", err)
	}
	defer res.Body.Close()

	if err := os.MkdirAll(filepath.Dir(manifestPath), 0755); err != nil {
		return err
	}

	return atomicfilewrite.Write(manifestPath, func(sink io.Writer) error {
		_, err := io.Copy(sink, res.Body)
		return err
	})
}

func (s *syncer) remoteKeys(ctx context.Context) (map[string]bool, error) {
	keys := map[string]bool{}

	if err := s.client.ListObjectsPagesWithContext(ctx, &s3.ListObjectsInput{
		Bucket: &s.bucket,
	}, func(page *s3.ListObjectsOutput, lastPage bool) bool {
		for _, object := range page.Contents {
			keys[*object.Key] = true
		}

		return true
	}); err != nil {
		return nil, fmt.Errorf("s3 ListObjects: %v", err)
	}

	return keys, nil
}

// records whose object key is not in existing, one per key (a re-registered
// artifact's newest manifest line wins), oldest first so an anchor always
// lands before the incrementals building on it
func computeMissing(records []skmanifest.Record, existing map[string]bool) []skmanifest.Record {
	newest := map[string]skmanifest.Record{}

	for _, record := range records {
		if existing[record.ObjectKey] {
			continue
		}

		newest[record.ObjectKey] = record
	}

	missing := lo.Values(newest)

	sort.Slice(missing, func(i, j int) bool {
		if !missing[i].Time.Equal(missing[j].Time) {
			return missing[i].Time.Before(missing[j].Time)
		}

		return missing[i].ObjectKey < missing[j].ObjectKey
	})

	return missing
}

var parseOptionsStringRe = regexp.MustCompile("^([^:]+):([^:]+):([^:]+):([^:]+)$")

func parseOptionsString(serialized string) (string, string, string, string, error) {
	match := parseOptionsStringRe.FindStringSubmatch(serialized)
	if match == nil {
		return "", "", "", "", errors.New("s3 options not in format bucket:region:accessKeyId:secret")
	}

	return match[1], match[2], match[3], match[4], nil
}

func syncerFromConfig(conf *skconfig.Config, logger *log.Logger) (*syncer, error) {
	if conf.S3Options == "" {
		return nil, errors.New("s3_options not set")
	}

	if conf.ManifestPath == "" {
		return nil, errors.New("manifest_path not set")
	}

	return newSyncer(conf.S3Options, logger)
}
