package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"shelfscan/internal/recon"
)

// readDetected loads detected titles from a JSON file, or from stdin when
// the path is "-" or empty. The expected shape is a JSON array of objects
// with "id" and "title" fields.
func readDetected(path string, stdin io.Reader) ([]recon.Detected, error) {
	var reader io.Reader
	path = strings.TrimSpace(path)
	if path == "" || path == "-" {
		reader = stdin
	} else {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open detected titles: %w", err)
		}
		defer file.Close()
		reader = file
	}

	var items []recon.Detected
	dec := json.NewDecoder(reader)
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("parse detected titles: %w", err)
	}

	seen := make(map[int64]bool, len(items))
	cleaned := make([]recon.Detected, 0, len(items))
	for _, item := range items {
		if item.ExternalID <= 0 {
			return nil, fmt.Errorf("detected title %q has invalid id %d", item.Title, item.ExternalID)
		}
		if strings.TrimSpace(item.Title) == "" {
			return nil, fmt.Errorf("detected title with id %d has an empty title", item.ExternalID)
		}
		if seen[item.ExternalID] {
			continue
		}
		seen[item.ExternalID] = true
		cleaned = append(cleaned, item)
	}
	return cleaned, nil
}
