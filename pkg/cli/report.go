package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/covnotify/pkg/cli/config"
	"github.com/m-mizutani/covnotify/pkg/domain/interfaces"
	"github.com/m-mizutani/covnotify/pkg/domain/model"
	"github.com/m-mizutani/covnotify/pkg/domain/types"
	"github.com/m-mizutani/covnotify/pkg/infra/console"
	"github.com/m-mizutani/covnotify/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdReport(rt *runConfig) *cli.Command {
	var (
		configPath    string
		coverageCfg   config.Coverage
		lastRunCfg    config.LastRun
		githubCfg     config.GitHub
		statusContext string
		dryRun        bool
		save          bool
	)

	flags := []cli.Flag{
		config.ConfigFlag(&configPath),
		&cli.StringFlag{
			Name:        "status-context",
			Usage:       "Context label of the commit status",
			Value:       types.DefaultStatusContext,
			Destination: &statusContext,
			Sources:     cli.EnvVars("COVNOTIFY_STATUS_CONTEXT"),
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Print the status and comment instead of sending them to GitHub",
			Destination: &dryRun,
			Sources:     cli.EnvVars("COVNOTIFY_DRY_RUN"),
		},
		&cli.BoolFlag{
			Name:        "save",
			Usage:       "Record the current coverage as the baseline of the next run after reporting",
			Destination: &save,
			Sources:     cli.EnvVars("COVNOTIFY_SAVE"),
		},
	}
	flags = append(flags, coverageCfg.Flags()...)
	flags = append(flags, lastRunCfg.Flags()...)
	flags = append(flags, githubCfg.Flags()...)

	return &cli.Command{
		Name:    "report",
		Aliases: []string{"r"},
		Usage:   "Compare coverage with the last run and report it to GitHub",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if err := applyConfigFile(c, configPath); err != nil {
				return err
			}

			current, err := coverageCfg.Load(c)
			if err != nil {
				return err
			}

			ci := model.NewCIContext(rt.env)
			logger.Debug("Loaded configuration",
				slog.Any("github", githubCfg),
				slog.Any("last_run", lastRunCfg),
				slog.String("repo_path", ci.RepoPath()),
				slog.String("commit_sha", ci.CommitSHA()),
			)

			store, closeStore, err := lastRunCfg.NewStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			var reporter interfaces.Reporter
			if dryRun {
				reporter = console.NewReporter(rt.out)
			} else {
				reporter, err = githubCfg.NewReporter()
				if err != nil {
					return err
				}
			}

			uc := usecase.NewNotification(reporter, store, usecase.WithStatusContext(statusContext))
			if err := uc.Notify(ctx, current, ci); err != nil {
				return goerr.Wrap(err, "failed to report coverage")
			}

			if save {
				if err := store.WriteLastRun(ctx, model.NewLastRun(current)); err != nil {
					return goerr.Wrap(err, "failed to save coverage as baseline")
				}
				logger.Info("Saved coverage as baseline", "covered_percent", current.CoveredPercent)
			}

			return nil
		},
	}
}

func applyConfigFile(c *cli.Command, path string) error {
	if path == "" {
		return nil
	}

	f, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	return f.Apply(c)
}
