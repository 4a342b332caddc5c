package lastrun

import (
	"bytes"
	"encoding/json"

	"github.com/m-mizutani/covnotify/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// decode parses a persisted last run. Empty input means nothing was recorded.
func decode(data []byte) (*model.LastRun, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var report model.LastRun
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, goerr.Wrap(err, "failed to parse last run report")
	}
	if err := report.Validate(); err != nil {
		return nil, err
	}
	return &report, nil
}

func encode(report *model.LastRun) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode last run report")
	}
	return append(data, '\n'), nil
}
