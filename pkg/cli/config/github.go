package config

import (
	"os"

	"github.com/m-mizutani/covnotify/pkg/domain/interfaces"
	githubinfra "github.com/m-mizutani/covnotify/pkg/infra/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub configuration
type GitHub struct {
	Token          string `masq:"secret"`
	AppID          int64
	InstallationID int64
	PrivateKey     string `masq:"secret"`
	PrivateKeyFile string
	BaseURL        string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub access token",
			Destination: &c.Token,
			Sources:     cli.EnvVars("COVNOTIFY_GITHUB_TOKEN", "GITHUB_ACCESS_TOKEN"),
		},
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID, used instead of a token",
			Destination: &c.AppID,
			Sources:     cli.EnvVars("COVNOTIFY_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-installation-id",
			Usage:       "GitHub App installation ID",
			Destination: &c.InstallationID,
			Sources:     cli.EnvVars("COVNOTIFY_GITHUB_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "github-private-key",
			Usage:       "GitHub App private key (PEM)",
			Destination: &c.PrivateKey,
			Sources:     cli.EnvVars("COVNOTIFY_GITHUB_PRIVATE_KEY"),
		},
		&cli.StringFlag{
			Name:        "github-private-key-file",
			Usage:       "Path to the GitHub App private key (PEM)",
			Destination: &c.PrivateKeyFile,
			Sources:     cli.EnvVars("COVNOTIFY_GITHUB_PRIVATE_KEY_FILE"),
		},
		&cli.StringFlag{
			Name:        "github-base-url",
			Usage:       "GitHub API base URL for GitHub Enterprise Server",
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("COVNOTIFY_GITHUB_BASE_URL"),
		},
	}
}

// NewReporter creates a GitHub reporter. App authentication is used when an
// App ID is set, token authentication otherwise.
func (c *GitHub) NewReporter() (interfaces.Reporter, error) {
	var opts []githubinfra.Option
	if c.BaseURL != "" {
		opts = append(opts, githubinfra.WithBaseURL(c.BaseURL))
	}

	if c.AppID != 0 {
		if c.InstallationID == 0 {
			return nil, goerr.New("github-installation-id is required with github-app-id")
		}
		key, err := c.privateKey()
		if err != nil {
			return nil, err
		}
		return githubinfra.NewAppClient(c.AppID, c.InstallationID, key, opts...)
	}

	if c.Token == "" {
		return nil, goerr.New("GitHub credentials are not set, use --github-token or --github-app-id (or --dry-run)")
	}
	return githubinfra.NewClient(c.Token, opts...)
}

func (c *GitHub) privateKey() ([]byte, error) {
	if c.PrivateKey != "" {
		return []byte(c.PrivateKey), nil
	}
	if c.PrivateKeyFile == "" {
		return nil, goerr.New("github-private-key or github-private-key-file is required with github-app-id")
	}

	key, err := os.ReadFile(c.PrivateKeyFile)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read GitHub App private key", goerr.V("path", c.PrivateKeyFile))
	}
	return key, nil
}
