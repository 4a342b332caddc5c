package interfaces

import (
	"context"

	"github.com/m-mizutani/covnotify/pkg/domain/model"
)

// NotificationUseCase reports a coverage result for a CI build
type NotificationUseCase interface {
	Notify(ctx context.Context, current *model.CoverageResult, ci *model.CIContext) error
}
