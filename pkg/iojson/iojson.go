// Package iojson writes and reads JSON for the command line: JSON lines
// for streams of records and indented documents for single results.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteLine writes obj as a single line of compact JSON.
func WriteLine(w io.Writer, obj any) error {
	bits, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("marshal json line: %w", err)
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// WriteLines writes each item of items with WriteLine.
func WriteLines[T any](w io.Writer, items []T) error {
	for _, it := range items {
		if err := WriteLine(w, it); err != nil {
			return err
		}
	}
	return nil
}

// WriteIndented writes obj as a two-space indented document.
func WriteIndented(w io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}
