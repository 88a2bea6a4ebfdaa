package main

import (
	"encoding/json"
	"os"
)

// loadSampleRows reads a previously exported JSON snapshot as export rows.
func loadSampleRows(path string) ([]map[string]any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rows []map[string]any
	if err := json.Unmarshal(b, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
