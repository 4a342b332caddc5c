package config

import (
	"context"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/covnotify/pkg/domain/interfaces"
	"github.com/m-mizutani/covnotify/pkg/infra/lastrun"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"google.golang.org/api/option"
)

// LastRun holds where the coverage baseline is kept
type LastRun struct {
	File           string
	GCSBucket      string
	GCSObject      string
	GCSCredentials string
}

// Flags returns CLI flags for the last run store
func (c *LastRun) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "last-run-file",
			Usage:       "Local file holding the coverage of the previous run",
			Value:       lastrun.DefaultFilePath,
			Destination: &c.File,
			Sources:     cli.EnvVars("COVNOTIFY_LAST_RUN_FILE"),
		},
		&cli.StringFlag{
			Name:        "last-run-gcs-bucket",
			Usage:       "Cloud Storage bucket holding the previous run, used instead of the local file",
			Destination: &c.GCSBucket,
			Sources:     cli.EnvVars("COVNOTIFY_LAST_RUN_GCS_BUCKET"),
		},
		&cli.StringFlag{
			Name:        "last-run-gcs-object",
			Usage:       "Cloud Storage object name of the previous run",
			Value:       ".last_run.json",
			Destination: &c.GCSObject,
			Sources:     cli.EnvVars("COVNOTIFY_LAST_RUN_GCS_OBJECT"),
		},
		&cli.StringFlag{
			Name:        "last-run-gcs-credentials",
			Usage:       "Service account credentials file for Cloud Storage",
			Destination: &c.GCSCredentials,
			Sources:     cli.EnvVars("COVNOTIFY_LAST_RUN_GCS_CREDENTIALS"),
		},
	}
}

// NewStore creates the configured store. The returned function releases
// resources held by the store and must be called when done.
func (c *LastRun) NewStore(ctx context.Context) (interfaces.LastRunStore, func(), error) {
	if c.GCSBucket == "" {
		if c.File == "" {
			return nil, nil, goerr.New("last-run-file must not be empty")
		}
		return lastrun.NewFile(c.File), func() {}, nil
	}

	if c.GCSObject == "" {
		return nil, nil, goerr.New("last-run-gcs-object must not be empty")
	}

	var opts []option.ClientOption
	if c.GCSCredentials != "" {
		opts = append(opts, option.WithCredentialsFile(c.GCSCredentials))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to create Cloud Storage client")
	}

	closer := func() {
		_ = client.Close() // nothing left to flush after a read or a finished write
	}
	return lastrun.NewGCS(client, c.GCSBucket, c.GCSObject), closer, nil
}
