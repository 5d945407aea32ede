package task

import (
	"encoding/json"
	"fmt"
	"os"
)

// File is the on-disk task collection.
type File struct {
	Tasks []WorkItem `json:"tasks"`
}

// LoadFile reads a task collection from a JSON file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tasks file: %w", err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshal tasks file: %w", err)
	}

	if err := Validate(f.Tasks); err != nil {
		return nil, fmt.Errorf("validate tasks file: %w", err)
	}

	return &f, nil
}

// SaveFile writes a task collection to a JSON file.
func SaveFile(f *File, path string) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tasks file: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write tasks file: %w", err)
	}

	return nil
}

// LoadReport reads a complexity report from a JSON file.
func LoadReport(path string) (*ComplexityReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read complexity report: %w", err)
	}

	var r ComplexityReport
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("unmarshal complexity report: %w", err)
	}

	return &r, nil
}

// SaveReport writes a complexity report to a JSON file.
func SaveReport(r *ComplexityReport, path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal complexity report: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write complexity report: %w", err)
	}

	return nil
}
