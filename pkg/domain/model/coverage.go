package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// CoverageResult is the coverage measured by the run that just completed
type CoverageResult struct {
	CoveredPercent float64
}

// LastRun is the coverage report persisted by a previous run.
// A LastRun without Result carries no baseline.
type LastRun struct {
	Result *LastRunResult `json:"result,omitempty"`
}

// LastRunResult holds the recorded coverage of a previous run
type LastRunResult struct {
	CoveredPercent *float64 `json:"covered_percent"`
}

// NewLastRun creates a LastRun recording the given result
func NewLastRun(result *CoverageResult) *LastRun {
	percent := result.CoveredPercent
	return &LastRun{
		Result: &LastRunResult{CoveredPercent: &percent},
	}
}

// HasBaseline reports whether the report can be compared against
func (r *LastRun) HasBaseline() bool {
	return r != nil && r.Result != nil
}

// Validate rejects a recorded result that lacks its covered percent
func (r *LastRun) Validate() error {
	if r.HasBaseline() && r.Result.CoveredPercent == nil {
		return goerr.New("last run result has no covered_percent")
	}
	return nil
}

// CoveredPercent returns the recorded percent, 0 when there is none
func (r *LastRun) CoveredPercent() float64 {
	if !r.HasBaseline() || r.Result.CoveredPercent == nil {
		return 0
	}
	return *r.Result.CoveredPercent
}

// StatusState is the state of a commit status
type StatusState string

const (
	StatusSuccess StatusState = "success"
	StatusFailure StatusState = "failure"
)

// CommitStatus is a status to attach to a commit
type CommitStatus struct {
	State       StatusState
	Context     string
	TargetURL   string
	Description string
}

// CoverageOutcome compares the current coverage with the previous run
type CoverageOutcome struct {
	current  float64
	previous float64
}

// NewCoverageOutcome creates an outcome from previous and current covered percents
func NewCoverageOutcome(previous, current float64) *CoverageOutcome {
	return &CoverageOutcome{current: current, previous: previous}
}

func (o *CoverageOutcome) Current() float64 { return o.current }
func (o *CoverageOutcome) Previous() float64 { return o.previous }

// Drop returns how many points coverage fell. It reports false when coverage
// stayed the same or improved.
func (o *CoverageOutcome) Drop() (float64, bool) {
	if o.previous > o.current {
		return o.previous - o.current, true
	}
	return 0, false
}

// State returns failure on a drop, success otherwise
func (o *CoverageOutcome) State() StatusState {
	if _, dropped := o.Drop(); dropped {
		return StatusFailure
	}
	return StatusSuccess
}

// StatusDescription returns the short text shown next to the commit status
func (o *CoverageOutcome) StatusDescription() string {
	decimals := o.decimals()
	if drop, dropped := o.Drop(); dropped {
		return fmt.Sprintf("Code coverage dropped by %s%%.", formatPercentAt(drop, decimals))
	}
	return fmt.Sprintf("Current code coverage is at %s%%", formatPercentAt(o.current, decimals))
}

// CommentBody returns the pull request comment for a drop. It reports false
// when there is nothing to comment on.
func (o *CoverageOutcome) CommentBody(username string) (string, bool) {
	drop, dropped := o.Drop()
	if !dropped {
		return "", false
	}
	decimals := o.decimals()
	return fmt.Sprintf("@%s: Your last push resulted in a *%s%%* code coverage drop from *%s%%* to *%s%%*.",
		username,
		formatPercentAt(drop, decimals),
		formatPercentAt(o.previous, decimals),
		formatPercentAt(o.current, decimals),
	), true
}

// decimals is the precision shared by all numbers of the outcome: two
// decimals, or as many as a small drop needs to print as non-zero.
func (o *CoverageOutcome) decimals() int {
	decimals := percentDecimals
	drop, dropped := o.Drop()
	if !dropped {
		return decimals
	}
	for decimals < maxPercentDecimals && formatPercentAt(drop, decimals) == "0" {
		decimals++
	}
	return decimals
}

const (
	percentDecimals    = 2
	maxPercentDecimals = 15
)

// FormatPercent rounds v to two decimals and drops trailing zeros, so 98 is
// printed as "98" and 9.899999999999991 as "9.9".
func FormatPercent(v float64) string {
	return formatPercentAt(v, percentDecimals)
}

func formatPercentAt(v float64, decimals int) string {
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}
