package interfaces

//go:generate moq -out mocks/reporter_mock.go -pkg mocks . Reporter LastRunReader

import (
	"context"

	"github.com/m-mizutani/covnotify/pkg/domain/model"
)

// Reporter publishes coverage results to a code review platform
type Reporter interface {
	// CreateStatus attaches a status to the commit sha of repoPath ("owner/repo")
	CreateStatus(ctx context.Context, repoPath, sha string, status *model.CommitStatus) error

	// AddComment posts a comment on a pull request of repoPath
	AddComment(ctx context.Context, repoPath, pullRequest, body string) error
}
