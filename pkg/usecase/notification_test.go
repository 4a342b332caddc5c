package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/covnotify/pkg/domain/interfaces/mocks"
	"github.com/m-mizutani/covnotify/pkg/domain/model"
	"github.com/m-mizutani/covnotify/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func testEnv(pullRequest string) map[string]string {
	env := map[string]string{
		"CIRCLE_SHA1":             "9fc29099caa165efef809d67fc274abba5c8c8fa",
		"CIRCLE_PROJECT_USERNAME": "tastyworks",
		"CIRCLE_PROJECT_REPONAME": "order-api",
		"CIRCLE_USERNAME":         "octocat",
		"CIRCLE_BUILD_NUM":        "458",
		"CIRCLE_ARTIFACTS":        "0/some-random-path/to/artifacts",
	}
	if pullRequest != "" {
		env["CI_PULL_REQUEST"] = pullRequest
	}
	return env
}

func lastRunOf(percent float64) *mocks.LastRunReaderMock {
	return &mocks.LastRunReaderMock{
		ReadLastRunFunc: func(ctx context.Context) (*model.LastRun, error) {
			return model.NewLastRun(&model.CoverageResult{CoveredPercent: percent}), nil
		},
	}
}

func newReporter() *mocks.ReporterMock {
	return &mocks.ReporterMock{
		CreateStatusFunc: func(ctx context.Context, repoPath, sha string, status *model.CommitStatus) error {
			return nil
		},
		AddCommentFunc: func(ctx context.Context, repoPath, pullRequest, body string) error {
			return nil
		},
	}
}

func TestNotification_NoPreviousCoverage(t *testing.T) {
	readers := map[string]*mocks.LastRunReaderMock{
		"nothing recorded": {
			ReadLastRunFunc: func(ctx context.Context) (*model.LastRun, error) { return nil, nil },
		},
		"record without result": {
			ReadLastRunFunc: func(ctx context.Context) (*model.LastRun, error) { return &model.LastRun{}, nil },
		},
	}

	for name, reader := range readers {
		t.Run(name, func(t *testing.T) {
			reporter := newReporter()
			ci := model.NewCIContext(testEnv("https://github.com/tastyworks/order-api/pull/88"))
			uc := usecase.NewNotification(reporter, reader)

			err := uc.Notify(context.Background(), &model.CoverageResult{CoveredPercent: 98}, ci)
			gt.NoError(t, err)
			gt.Number(t, len(reporter.CreateStatusCalls())).Equal(0)
			gt.Number(t, len(reporter.AddCommentCalls())).Equal(0)
		})
	}
}

func TestNotification_WithoutPullRequest(t *testing.T) {
	for _, current := range []float64{98, 10} {
		reporter := newReporter()
		ci := model.NewCIContext(testEnv(""))
		uc := usecase.NewNotification(reporter, lastRunOf(23))

		gt.NoError(t, uc.Notify(context.Background(), &model.CoverageResult{CoveredPercent: current}, ci))
		gt.Number(t, len(reporter.CreateStatusCalls())).Equal(1)
		gt.Number(t, len(reporter.AddCommentCalls())).Equal(0)
	}
}

func TestNotification_StatusOnImprovement(t *testing.T) {
	reporter := newReporter()
	ci := model.NewCIContext(testEnv("https://github.com/tastyworks/order-api/pull/88"))
	uc := usecase.NewNotification(reporter, lastRunOf(23))

	gt.NoError(t, uc.Notify(context.Background(), &model.CoverageResult{CoveredPercent: 98}, ci))

	calls := reporter.CreateStatusCalls()
	gt.Number(t, len(calls)).Equal(1)
	gt.Equal(t, calls[0].RepoPath, "tastyworks/order-api")
	gt.Equal(t, calls[0].Sha, "9fc29099caa165efef809d67fc274abba5c8c8fa")
	gt.Equal(t, *calls[0].Status, model.CommitStatus{
		State:       model.StatusSuccess,
		Context:     "coverage-notifications",
		TargetURL:   ci.ArtifactsURL(),
		Description: "Current code coverage is at 98%",
	})
	gt.Number(t, len(reporter.AddCommentCalls())).Equal(0)
}

func TestNotification_EqualCoverageIsSuccess(t *testing.T) {
	reporter := newReporter()
	ci := model.NewCIContext(testEnv("88"))
	uc := usecase.NewNotification(reporter, lastRunOf(75.5))

	gt.NoError(t, uc.Notify(context.Background(), &model.CoverageResult{CoveredPercent: 75.5}, ci))
	gt.Equal(t, reporter.CreateStatusCalls()[0].Status.State, model.StatusSuccess)
	gt.Number(t, len(reporter.AddCommentCalls())).Equal(0)
}

func TestNotification_CommentOnDrop(t *testing.T) {
	reporter := newReporter()
	ci := model.NewCIContext(testEnv("https://github.com/tastyworks/order-api/pull/88"))
	uc := usecase.NewNotification(reporter, lastRunOf(100), usecase.WithStatusContext("ci/coverage"))

	gt.NoError(t, uc.Notify(context.Background(), &model.CoverageResult{CoveredPercent: 50}, ci))

	statuses := reporter.CreateStatusCalls()
	gt.Number(t, len(statuses)).Equal(1)
	gt.Equal(t, statuses[0].Status.State, model.StatusFailure)
	gt.Equal(t, statuses[0].Status.Context, "ci/coverage")
	gt.Equal(t, statuses[0].Status.Description, "Code coverage dropped by 50%.")

	comments := reporter.AddCommentCalls()
	gt.Number(t, len(comments)).Equal(1)
	gt.Equal(t, comments[0].RepoPath, "tastyworks/order-api")
	gt.Equal(t, comments[0].PullRequest, "88")
	gt.String(t, comments[0].Body).Contains("*50%* code coverage drop from *100%* to *50%*")
	gt.String(t, comments[0].Body).Contains("@octocat:")
}

func TestNotification_StatusFailureStopsComment(t *testing.T) {
	errAPI := errors.New("401 Bad credentials")
	reporter := newReporter()
	reporter.CreateStatusFunc = func(ctx context.Context, repoPath, sha string, status *model.CommitStatus) error {
		return errAPI
	}
	ci := model.NewCIContext(testEnv("88"))
	uc := usecase.NewNotification(reporter, lastRunOf(100))

	err := uc.Notify(context.Background(), &model.CoverageResult{CoveredPercent: 50}, ci)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, errAPI))
	gt.Number(t, len(reporter.CreateStatusCalls())).Equal(1)
	gt.Number(t, len(reporter.AddCommentCalls())).Equal(0)
}

func TestNotification_CommentFailurePropagates(t *testing.T) {
	errAPI := errors.New("rate limited")
	reporter := newReporter()
	reporter.AddCommentFunc = func(ctx context.Context, repoPath, pullRequest, body string) error {
		return errAPI
	}
	ci := model.NewCIContext(testEnv("88"))
	uc := usecase.NewNotification(reporter, lastRunOf(100))

	err := uc.Notify(context.Background(), &model.CoverageResult{CoveredPercent: 50}, ci)
	gt.True(t, errors.Is(err, errAPI))
	gt.Number(t, len(reporter.AddCommentCalls())).Equal(1)
}

func TestNotification_LastRunReadError(t *testing.T) {
	errRead := errors.New("broken json")
	reporter := newReporter()
	reader := &mocks.LastRunReaderMock{
		ReadLastRunFunc: func(ctx context.Context) (*model.LastRun, error) { return nil, errRead },
	}
	uc := usecase.NewNotification(reporter, reader)

	err := uc.Notify(context.Background(), &model.CoverageResult{CoveredPercent: 50}, model.NewCIContext(testEnv("88")))
	gt.True(t, errors.Is(err, errRead))
	gt.Number(t, len(reporter.CreateStatusCalls())).Equal(0)
}

func TestNotification_ResultWithoutPercent(t *testing.T) {
	reporter := newReporter()
	reader := &mocks.LastRunReaderMock{
		ReadLastRunFunc: func(ctx context.Context) (*model.LastRun, error) {
			return &model.LastRun{Result: &model.LastRunResult{}}, nil
		},
	}
	uc := usecase.NewNotification(reporter, reader)

	err := uc.Notify(context.Background(), &model.CoverageResult{CoveredPercent: 50}, model.NewCIContext(testEnv("88")))
	gt.Error(t, err)
	gt.Number(t, len(reporter.CreateStatusCalls())).Equal(0)
	gt.Number(t, len(reporter.AddCommentCalls())).Equal(0)
}

func TestNotification_StatusAlwaysSentWithBaseline(t *testing.T) {
	pairs := []struct{ previous, current float64 }{
		{0, 0}, {0, 100}, {100, 0}, {42.42, 42.41}, {42.41, 42.42}, {99.99, 99.99},
	}

	for _, p := range pairs {
		for _, pr := range []string{"", "12"} {
			reporter := newReporter()
			uc := usecase.NewNotification(reporter, lastRunOf(p.previous))
			gt.NoError(t, uc.Notify(context.Background(), &model.CoverageResult{CoveredPercent: p.current}, model.NewCIContext(testEnv(pr))))

			statuses := reporter.CreateStatusCalls()
			gt.Number(t, len(statuses)).Equal(1)
			wantState := model.StatusSuccess
			if p.previous > p.current {
				wantState = model.StatusFailure
			}
			gt.Equal(t, statuses[0].Status.State, wantState)

			wantComments := 0
			if pr != "" && p.previous > p.current {
				wantComments = 1
			}
			gt.Number(t, len(reporter.AddCommentCalls())).Equal(wantComments)
		}
	}
}
