package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/covnotify/pkg/cli/config"
	"github.com/m-mizutani/covnotify/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdBaseline(rt *runConfig) *cli.Command {
	return &cli.Command{
		Name:  "baseline",
		Usage: "Inspect or record the coverage used as the comparison point",
		Commands: []*cli.Command{
			cmdBaselineShow(rt),
			cmdBaselineSave(),
		},
	}
}

func cmdBaselineShow(rt *runConfig) *cli.Command {
	var (
		configPath string
		lastRunCfg config.LastRun
	)

	return &cli.Command{
		Name:  "show",
		Usage: "Print the recorded baseline",
		Flags: append([]cli.Flag{config.ConfigFlag(&configPath)}, lastRunCfg.Flags()...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := applyConfigFile(c, configPath); err != nil {
				return err
			}

			store, closeStore, err := lastRunCfg.NewStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			report, err := store.ReadLastRun(ctx)
			if err != nil {
				return err
			}

			if !report.HasBaseline() {
				_, err = fmt.Fprintln(rt.out, "No baseline recorded")
			} else {
				_, err = fmt.Fprintf(rt.out, "Baseline coverage: %s%%\n", model.FormatPercent(report.CoveredPercent()))
			}
			if err != nil {
				return goerr.Wrap(err, "failed to print baseline")
			}
			return nil
		},
	}
}

func cmdBaselineSave() *cli.Command {
	var (
		configPath  string
		coverageCfg config.Coverage
		lastRunCfg  config.LastRun
	)

	flags := append([]cli.Flag{config.ConfigFlag(&configPath)}, coverageCfg.Flags()...)
	flags = append(flags, lastRunCfg.Flags()...)

	return &cli.Command{
		Name:  "save",
		Usage: "Record the coverage of the current run as the baseline",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := applyConfigFile(c, configPath); err != nil {
				return err
			}

			current, err := coverageCfg.Load(c)
			if err != nil {
				return err
			}

			store, closeStore, err := lastRunCfg.NewStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := store.WriteLastRun(ctx, model.NewLastRun(current)); err != nil {
				return err
			}

			ctxlog.From(ctx).Info("Saved baseline", "covered_percent", current.CoveredPercent)
			return nil
		},
	}
}
