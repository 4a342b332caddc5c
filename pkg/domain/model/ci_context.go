package model

import (
	"fmt"
	"regexp"
	"strings"
)

// Environment keys read from a CircleCI build
const (
	EnvProjectUsername = "CIRCLE_PROJECT_USERNAME"
	EnvUsername        = "CIRCLE_USERNAME"
	EnvProjectRepoName = "CIRCLE_PROJECT_REPONAME"
	EnvBuildNum        = "CIRCLE_BUILD_NUM"
	EnvPullRequest     = "CI_PULL_REQUEST"
	EnvSHA1            = "CIRCLE_SHA1"
	EnvArtifacts       = "CIRCLE_ARTIFACTS"
)

const artifactsURLFormat = "https://circleci.com/gh/%s/%s/%s/index.html"

var trailingNumber = regexp.MustCompile(`(\d+)/?$`)

// CIContext describes the CI build being reported on. It is immutable once built.
type CIContext struct {
	owner         string
	repo          string
	username      string
	buildNumber   string
	commitSHA     string
	artifactsPath string
	pullRequest   string
	hasPR         bool
}

// NewCIContext builds a CIContext from an environment mapping. Missing keys
// leave the corresponding fields empty.
func NewCIContext(env map[string]string) *CIContext {
	ci := &CIContext{
		owner:         env[EnvProjectUsername],
		repo:          env[EnvProjectRepoName],
		username:      env[EnvUsername],
		buildNumber:   env[EnvBuildNum],
		commitSHA:     env[EnvSHA1],
		artifactsPath: env[EnvArtifacts],
	}
	ci.pullRequest, ci.hasPR = ExtractPullRequestNumber(env[EnvPullRequest])
	return ci
}

// ExtractPullRequestNumber returns the trailing run of digits of a pull request
// reference such as "https://github.com/owner/repo/pull/88" or "88/". It reports
// false when raw is empty or does not end with a number. Surrounding
// whitespace is ignored.
func ExtractPullRequestNumber(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	m := trailingNumber.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func (c *CIContext) Owner() string { return c.owner }
func (c *CIContext) Repo() string { return c.repo }
func (c *CIContext) Username() string { return c.username }
func (c *CIContext) BuildNumber() string { return c.buildNumber }
func (c *CIContext) CommitSHA() string { return c.commitSHA }
func (c *CIContext) ArtifactsPath() string { return c.artifactsPath }

// PullRequest returns the pull request number, if the build belongs to one
func (c *CIContext) PullRequest() (string, bool) {
	return c.pullRequest, c.hasPR
}

// RepoPath returns "owner/repo"
func (c *CIContext) RepoPath() string {
	return c.owner + "/" + c.repo
}

// ArtifactsURL returns the link to the coverage report stored as a build artifact
func (c *CIContext) ArtifactsURL() string {
	return fmt.Sprintf(artifactsURLFormat, c.RepoPath(), c.buildNumber, c.artifactsPath)
}
