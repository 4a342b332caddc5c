package config

import (
	"github.com/m-mizutani/covnotify/pkg/domain/model"
	"github.com/m-mizutani/covnotify/pkg/infra/coverprofile"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const flagPercent = "percent"

// Coverage selects where the current coverage comes from
type Coverage struct {
	Percent      float64
	CoverProfile string
}

// Flags returns CLI flags for the current coverage
func (c *Coverage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.FloatFlag{
			Name:        flagPercent,
			Aliases:     []string{"p"},
			Usage:       "Covered percent of the current run",
			Destination: &c.Percent,
			Sources:     cli.EnvVars("COVNOTIFY_PERCENT"),
		},
		&cli.StringFlag{
			Name:        "coverprofile",
			Usage:       "Go cover profile of the current run (go test -coverprofile)",
			Destination: &c.CoverProfile,
			Sources:     cli.EnvVars("COVNOTIFY_COVERPROFILE"),
		},
	}
}

// Load returns the current coverage. Exactly one source must be given.
func (c *Coverage) Load(cmd *cli.Command) (*model.CoverageResult, error) {
	percentSet := cmd.IsSet(flagPercent)

	switch {
	case percentSet && c.CoverProfile != "":
		return nil, goerr.New("--percent and --coverprofile are mutually exclusive")
	case percentSet:
		if !(c.Percent >= 0 && c.Percent <= 100) {
			return nil, goerr.New("covered percent must be between 0 and 100", goerr.V("percent", c.Percent))
		}
		return &model.CoverageResult{CoveredPercent: c.Percent}, nil
	case c.CoverProfile != "":
		return coverprofile.Load(c.CoverProfile)
	default:
		return nil, goerr.New("current coverage is not given, use --percent or --coverprofile")
	}
}
