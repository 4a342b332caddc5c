package interfaces

import (
	"context"

	"github.com/m-mizutani/covnotify/pkg/domain/model"
)

// LastRunReader reads the coverage recorded by the previous run.
// It returns nil without error when nothing was recorded yet.
type LastRunReader interface {
	ReadLastRun(ctx context.Context) (*model.LastRun, error)
}

// LastRunStore reads and records the coverage baseline
type LastRunStore interface {
	LastRunReader
	WriteLastRun(ctx context.Context, report *model.LastRun) error
}
