package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/grunt24/grading-api/internal/scoring"
)

// Input files may hold the bare value or the API envelope around it.
var envelopeKeys = []string{"data", "records", "equivalents"}

func readJSON(path string) (json.RawMessage, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	raw = bytes.TrimSpace(raw)
	if !json.Valid(raw) {
		return nil, fmt.Errorf("decode %s: invalid JSON", path)
	}
	return unwrap(raw), nil
}

func unwrap(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || raw[0] != '{' {
		return raw
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return raw
	}
	for _, key := range envelopeKeys {
		if inner, ok := obj[key]; ok && len(inner) > 0 && string(inner) != "null" {
			return inner
		}
	}
	return raw
}

func loadRecords(path string) ([]scoring.GradeRecord, error) {
	raw, err := readJSON(path)
	if err != nil {
		return nil, err
	}
	var records []scoring.GradeRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode records %s: %w", path, err)
	}
	return records, nil
}

func loadWeights(path string) (scoring.WeightConfig, error) {
	raw, err := readJSON(path)
	if err != nil {
		return nil, err
	}
	var weights scoring.WeightConfig
	if err := json.Unmarshal(raw, &weights); err != nil {
		return nil, fmt.Errorf("decode weights %s: %w", path, err)
	}
	return weights, nil
}

func loadScale(path string) (scoring.GradeScale, error) {
	raw, err := readJSON(path)
	if err != nil {
		return nil, err
	}
	var scale scoring.GradeScale
	if err := json.Unmarshal(raw, &scale); err != nil {
		return nil, fmt.Errorf("decode scale %s: %w", path, err)
	}
	return scale, nil
}
