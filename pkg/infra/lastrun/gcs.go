package lastrun

import (
	"context"
	"errors"
	"io"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/covnotify/pkg/domain/interfaces"
	"github.com/m-mizutani/covnotify/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

type gcs struct {
	client *storage.Client
	bucket string
	object string
}

// NewGCS creates a store keeping the last run in a Cloud Storage object, for
// CI executors that do not keep files between builds
func NewGCS(client *storage.Client, bucket, object string) interfaces.LastRunStore {
	return &gcs{client: client, bucket: bucket, object: object}
}

func (g *gcs) ReadLastRun(ctx context.Context) (*model.LastRun, error) {
	r, err := g.client.Bucket(g.bucket).Object(g.object).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		ctxlog.From(ctx).Debug("Last run object not found", "bucket", g.bucket, "object", g.object)
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open last run object",
			goerr.V("bucket", g.bucket), goerr.V("object", g.object))
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read last run object",
			goerr.V("bucket", g.bucket), goerr.V("object", g.object))
	}

	report, err := decode(data)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid last run object",
			goerr.V("bucket", g.bucket), goerr.V("object", g.object))
	}
	return report, nil
}

func (g *gcs) WriteLastRun(ctx context.Context, report *model.LastRun) error {
	data, err := encode(report)
	if err != nil {
		return err
	}

	w := g.client.Bucket(g.bucket).Object(g.object).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return goerr.Wrap(err, "failed to write last run object",
			goerr.V("bucket", g.bucket), goerr.V("object", g.object))
	}
	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to finalize last run object",
			goerr.V("bucket", g.bucket), goerr.V("object", g.object))
	}

	ctxlog.From(ctx).Debug("Saved last run", "bucket", g.bucket, "object", g.object)
	return nil
}
