package lastrun

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/m-mizutani/covnotify/pkg/domain/interfaces"
	"github.com/m-mizutani/covnotify/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultFilePath is where the last run is kept when no location is configured
const DefaultFilePath = "coverage/.last_run.json"

type file struct {
	path string
}

// NewFile creates a store keeping the last run in a local JSON file
func NewFile(path string) interfaces.LastRunStore {
	return &file{path: path}
}

// ReadLastRun returns nil when the file does not exist or is empty
func (f *file) ReadLastRun(ctx context.Context) (*model.LastRun, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		ctxlog.From(ctx).Debug("Last run file not found", "path", f.path)
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read last run file", goerr.V("path", f.path))
	}

	report, err := decode(data)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid last run file", goerr.V("path", f.path))
	}
	return report, nil
}

// WriteLastRun replaces the file atomically
func (f *file) WriteLastRun(ctx context.Context, report *model.LastRun) error {
	data, err := encode(report)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return goerr.Wrap(err, "failed to create last run directory", goerr.V("dir", dir))
	}

	tmp, err := os.CreateTemp(dir, ".last_run-*.json")
	if err != nil {
		return goerr.Wrap(err, "failed to create temporary file", goerr.V("dir", dir))
	}
	defer func() {
		_ = os.Remove(tmp.Name()) // no-op after a successful rename
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return goerr.Wrap(err, "failed to write last run", goerr.V("path", tmp.Name()))
	}
	if err := tmp.Close(); err != nil {
		return goerr.Wrap(err, "failed to close last run", goerr.V("path", tmp.Name()))
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return goerr.Wrap(err, "failed to replace last run file", goerr.V("path", f.path))
	}

	ctxlog.From(ctx).Debug("Saved last run", "path", f.path)
	return nil
}
