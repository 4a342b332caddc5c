package usecase

import (
	"context"

	"github.com/m-mizutani/covnotify/pkg/domain/interfaces"
	"github.com/m-mizutani/covnotify/pkg/domain/model"
	"github.com/m-mizutani/covnotify/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// NotificationOption configures the notification use case
type NotificationOption func(*notification)

// WithStatusContext sets the context label of the commit status
func WithStatusContext(statusContext string) NotificationOption {
	return func(n *notification) {
		n.statusContext = statusContext
	}
}

type notification struct {
	reporter      interfaces.Reporter
	lastRun       interfaces.LastRunReader
	statusContext string
}

// NewNotification creates a use case that compares coverage with the last run
// and reports the result through reporter
func NewNotification(reporter interfaces.Reporter, lastRun interfaces.LastRunReader, opts ...NotificationOption) interfaces.NotificationUseCase {
	n := &notification{
		reporter:      reporter,
		lastRun:       lastRun,
		statusContext: types.DefaultStatusContext,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Notify reports current coverage against the last run. Nothing is reported
// when no previous run was recorded. The commit status is always sent once a
// baseline exists; a pull request comment follows only when coverage dropped
// on a pull request build.
func (uc *notification) Notify(ctx context.Context, current *model.CoverageResult, ci *model.CIContext) error {
	logger := ctxlog.From(ctx)

	lastRun, err := uc.lastRun.ReadLastRun(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to read last run")
	}
	if !lastRun.HasBaseline() {
		logger.Info("No previous coverage recorded, skip notification",
			"current_coverage", current.CoveredPercent,
		)
		return nil
	}
	if err := lastRun.Validate(); err != nil {
		return goerr.Wrap(err, "invalid last run")
	}

	outcome := model.NewCoverageOutcome(lastRun.CoveredPercent(), current.CoveredPercent)
	drop, dropped := outcome.Drop()

	logger.Info("Compared coverage with last run",
		"previous_coverage", outcome.Previous(),
		"current_coverage", outcome.Current(),
		"dropped", dropped,
		"drop", drop,
	)

	status := &model.CommitStatus{
		State:       outcome.State(),
		Context:     uc.statusContext,
		TargetURL:   ci.ArtifactsURL(),
		Description: outcome.StatusDescription(),
	}
	if err := uc.reporter.CreateStatus(ctx, ci.RepoPath(), ci.CommitSHA(), status); err != nil {
		return goerr.Wrap(err, "failed to create commit status",
			goerr.V("repo_path", ci.RepoPath()),
			goerr.V("commit_sha", ci.CommitSHA()),
			goerr.V("state", status.State),
		)
	}

	pr, hasPR := ci.PullRequest()
	if !hasPR {
		logger.Debug("Not a pull request build, skip comment")
		return nil
	}

	body, ok := outcome.CommentBody(ci.Username())
	if !ok {
		return nil
	}

	if err := uc.reporter.AddComment(ctx, ci.RepoPath(), pr, body); err != nil {
		return goerr.Wrap(err, "failed to add pull request comment",
			goerr.V("repo_path", ci.RepoPath()),
			goerr.V("pull_request", pr),
		)
	}

	logger.Info("Reported coverage drop to pull request",
		"repo_path", ci.RepoPath(),
		"pull_request", pr,
	)

	return nil
}
