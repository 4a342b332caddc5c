package console

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/m-mizutani/covnotify/pkg/domain/interfaces"
	"github.com/m-mizutani/covnotify/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

type reporter struct {
	w       io.Writer
	success *color.Color
	failure *color.Color
	label   *color.Color
}

// NewReporter creates a reporter that prints what would be sent to the code
// review platform instead of sending it
func NewReporter(w io.Writer) interfaces.Reporter {
	return &reporter{
		w:       w,
		success: color.New(color.FgGreen, color.Bold),
		failure: color.New(color.FgRed, color.Bold),
		label:   color.New(color.FgCyan),
	}
}

func (r *reporter) CreateStatus(ctx context.Context, repoPath, sha string, status *model.CommitStatus) error {
	state := r.success
	if status.State == model.StatusFailure {
		state = r.failure
	}

	if _, err := fmt.Fprintf(r.w, "%s %s@%s [%s] %s\n",
		r.label.Sprint("status"),
		repoPath, sha,
		state.Sprint(status.State),
		status.Context,
	); err != nil {
		return goerr.Wrap(err, "failed to print status")
	}
	if _, err := fmt.Fprintf(r.w, "  %s\n  %s\n", status.Description, status.TargetURL); err != nil {
		return goerr.Wrap(err, "failed to print status")
	}
	return nil
}

func (r *reporter) AddComment(ctx context.Context, repoPath, pullRequest, body string) error {
	if _, err := fmt.Fprintf(r.w, "%s %s#%s\n  %s\n",
		r.label.Sprint("comment"),
		repoPath, pullRequest,
		body,
	); err != nil {
		return goerr.Wrap(err, "failed to print comment")
	}
	return nil
}
