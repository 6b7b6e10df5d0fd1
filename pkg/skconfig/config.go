// Configuration file handling for snapkeep
package skconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/function61/gokit/jsonfile"
	"github.com/function61/snapkeep/pkg/retention"
	"github.com/function61/ubackup/pkg/ubconfig"
)

const (
	configFilename = "snapkeep-config.json"
)

type Config struct {
	SnapshotRoot  string           `json:"snapshot_root"`            // example: "/mnt/snapshots"
	RetentionDays int              `json:"retention_days,omitempty"` // 0 = default (30)
	ArtifactRoot  string           `json:"artifact_root,omitempty"`  // backup artifact files live under this
	ManifestPath  string           `json:"manifest_path,omitempty"`  // TSV ledger of backup artifacts
	LedgerPath    string           `json:"ledger_path,omitempty"`    // bolt DB recording prune runs
	S3Options     string           `json:"s3_options,omitempty"`     // "bucket:region:accessKeyId:secret"
	BackupConfig  *ubconfig.Config `json:"backup_config,omitempty"`
}

// how long every snapshot is kept before monthly thinning applies to it
func (c *Config) KeepFor() time.Duration {
	days := c.RetentionDays
	if days == 0 {
		days = retention.DefaultKeepDays
	}

	return time.Duration(days) * 24 * time.Hour
}

func ReadConfig() (*Config, error) {
	confPath, err := ConfigFilePath()
	if err != nil {
		return nil, fmt.Errorf("snapkeep config: %v", err)
	}

	conf := &Config{}
	if err := jsonfile.Read(confPath, conf, true); err != nil {
		return nil, fmt.Errorf("snapkeep config: %v", err)
	}

	if err := conf.validate(); err != nil {
		return nil, fmt.Errorf("snapkeep config: %v", err)
	}

	return conf, nil
}

func WriteConfig(conf *Config) error {
	confPath, err := ConfigFilePath()
	if err != nil {
		return err
	}

	return jsonfile.Write(confPath, conf)
}

func ConfigFilePath() (string, error) {
	usersHomeDirectory, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(usersHomeDirectory, configFilename), nil
}

func (c *Config) validate() error {
	if c.SnapshotRoot == "" {
		return errors.New("snapshot_root not set")
	}

	if c.RetentionDays < 0 {
		return fmt.Errorf("retention_days must not be negative; got %d", c.RetentionDays)
	}

	return nil
}
