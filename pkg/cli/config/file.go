package config

import (
	"os"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// File is the optional TOML configuration file. Command line flags and
// environment variables take precedence over its values.
//
//	[status]
//	context = "ci/coverage"
//
//	[last_run]
//	file = "coverage/.last_run.json"
//	gcs_bucket = "my-bucket"
//	gcs_object = "order-api/.last_run.json"
//
//	[github]
//	base_url = "https://github.example.com/api/v3/"
//	app_id = 1234
//	installation_id = 5678
//	private_key_file = "/secrets/app.pem"
type File struct {
	Status struct {
		Context string `toml:"context"`
	} `toml:"status"`

	LastRun struct {
		File           string `toml:"file"`
		GCSBucket      string `toml:"gcs_bucket"`
		GCSObject      string `toml:"gcs_object"`
		GCSCredentials string `toml:"gcs_credentials"`
	} `toml:"last_run"`

	GitHub struct {
		BaseURL        string `toml:"base_url"`
		AppID          int64  `toml:"app_id"`
		InstallationID int64  `toml:"installation_id"`
		PrivateKeyFile string `toml:"private_key_file"`
	} `toml:"github"`
}

// ConfigFlag returns the flag selecting the configuration file
func ConfigFlag(dst *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "TOML configuration file",
		Destination: dst,
		Sources:     cli.EnvVars("COVNOTIFY_CONFIG"),
	}
}

// LoadFile reads a TOML configuration file
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", path))
	}
	return &f, nil
}

// Apply sets flags of cmd from the file unless they were given explicitly.
// Flags not defined on cmd are ignored.
func (f *File) Apply(cmd *cli.Command) error {
	values := map[string]string{
		"status-context":           f.Status.Context,
		"last-run-file":            f.LastRun.File,
		"last-run-gcs-bucket":      f.LastRun.GCSBucket,
		"last-run-gcs-object":      f.LastRun.GCSObject,
		"last-run-gcs-credentials": f.LastRun.GCSCredentials,
		"github-base-url":          f.GitHub.BaseURL,
		"github-private-key-file":  f.GitHub.PrivateKeyFile,
	}
	if f.GitHub.AppID != 0 {
		values["github-app-id"] = strconv.FormatInt(f.GitHub.AppID, 10)
	}
	if f.GitHub.InstallationID != 0 {
		values["github-installation-id"] = strconv.FormatInt(f.GitHub.InstallationID, 10)
	}

	for name, value := range values {
		if value == "" || cmd.IsSet(name) || !hasFlag(cmd, name) {
			continue
		}
		if err := cmd.Set(name, value); err != nil {
			return goerr.Wrap(err, "failed to apply config file value", goerr.V("flag", name))
		}
	}
	return nil
}

func hasFlag(cmd *cli.Command, name string) bool {
	for _, fl := range cmd.Flags {
		for _, n := range fl.Names() {
			if n == name {
				return true
			}
		}
	}
	return false
}
