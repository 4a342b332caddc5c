package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/m-mizutani/covnotify/pkg/cli/config"
	"github.com/m-mizutani/covnotify/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"
)

type runConfig struct {
	env map[string]string
	out io.Writer
}

// Option configures Run
type Option func(*runConfig)

// WithEnv replaces the process environment as the source of CI build information
func WithEnv(env map[string]string) Option {
	return func(r *runConfig) {
		r.env = env
	}
}

// WithOutput sets where command output is written, stdout by default
func WithOutput(w io.Writer) Option {
	return func(r *runConfig) {
		r.out = w
	}
}

// Run runs the CLI application
func Run(ctx context.Context, args []string, opts ...Option) error {
	rt := &runConfig{out: os.Stdout}
	for _, opt := range opts {
		opt(rt)
	}
	if rt.env == nil {
		rt.env = config.EnvMap(os.Environ())
	}

	var (
		loggerCfg config.Logger
		sentryCfg config.Sentry
		logger    *slog.Logger
	)

	app := &cli.Command{
		Name:    "covnotify",
		Usage:   "Report code coverage drops to GitHub",
		Version: types.Version,
		Flags:   append(loggerCfg.Flags(), sentryCfg.Flags()...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}
			if err := sentryCfg.Configure(); err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdReport(rt),
			cmdBaseline(rt),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		sentryCfg.Capture(err)
		return err
	}

	return nil
}
