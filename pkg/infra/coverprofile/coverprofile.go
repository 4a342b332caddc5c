package coverprofile

import (
	"github.com/m-mizutani/covnotify/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/tools/cover"
)

// Load computes the statement coverage of a profile written by
// `go test -coverprofile`. A profile without statements is 0% covered.
func Load(path string) (*model.CoverageResult, error) {
	profiles, err := cover.ParseProfiles(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse cover profile", goerr.V("path", path))
	}
	return Summarize(profiles), nil
}

// Summarize returns the share of statements executed at least once
func Summarize(profiles []*cover.Profile) *model.CoverageResult {
	var total, covered int64
	for _, p := range profiles {
		for _, b := range p.Blocks {
			total += int64(b.NumStmt)
			if b.Count > 0 {
				covered += int64(b.NumStmt)
			}
		}
	}

	if total == 0 {
		return &model.CoverageResult{CoveredPercent: 0}
	}
	return &model.CoverageResult{
		CoveredPercent: float64(covered) / float64(total) * 100,
	}
}
