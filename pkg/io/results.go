package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gduarte0/program2mass/pkg/room"
)

// WriteResults encodes rooms as an indented JSON array.
func WriteResults(w io.Writer, rooms []room.Room) error {
	if rooms == nil {
		rooms = []room.Room{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rooms); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportResults writes rooms to a JSON file at path.
func ExportResults(rooms []room.Room, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteResults(f, rooms); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadResults decodes a JSON array of rooms. Room types are validated by
// the decoder.
func ReadResults(r io.Reader) ([]room.Room, error) {
	var rooms []room.Room
	if err := json.NewDecoder(r).Decode(&rooms); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return rooms, nil
}

// ImportResults reads a JSON results file at path.
func ImportResults(path string) ([]room.Room, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadResults(f)
}
