// Package eval loads conversation datasets and replays them through the
// agent, either as persistent per-row sessions or as isolated single turns.
package eval

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	errx "github.com/meridianbank/nova/internal/core/error"
)

// Row is one scripted conversation: the prompts are sent in order.
type Row struct {
	ID       string   `json:"id"`
	Messages []string `json:"messages"`
}

// Dataset is a named collection of rows loaded from a JSON file.
type Dataset struct {
	ID   string
	Rows []Row
}

// Load reads the dataset file "<id>.json" from dir. A missing file maps to a
// not-found error so the HTTP layer can answer 404.
func Load(dir, id string) (*Dataset, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return nil, errx.Validation("invalid dataset id")
	}

	path := filepath.Join(dir, id+".json")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errx.NotFoundMsg(fmt.Sprintf("dataset %q does not exist", id))
		}
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}

	var rows []Row
	if err := json.Unmarshal(b, &rows); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}

	return &Dataset{ID: id, Rows: rows}, nil
}
