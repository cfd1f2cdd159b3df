// Package snapshot persists an energy system as an opaque binary blob. The
// format is implementation private: it is only guaranteed to restore under
// the same build, not to interchange with anything else.
package snapshot

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"github.com/gridmodel/esmt/internal/pkg/es"
)

// Dump encodes sys into w.
func Dump(w io.Writer, sys *es.System) error {
	if err := gob.NewEncoder(w).Encode(sys); err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}
	return nil
}

// Restore decodes a system dumped by Dump.
func Restore(r io.Reader) (*es.System, error) {
	var sys es.System
	if err := gob.NewDecoder(r).Decode(&sys); err != nil {
		return nil, fmt.Errorf("snapshot: decode: %w", err)
	}
	return &sys, nil
}

// Bytes returns the encoded snapshot of sys.
func Bytes(sys *es.System) ([]byte, error) {
	var buf bytes.Buffer
	if err := Dump(&buf, sys); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveFile dumps sys to path.
func SaveFile(path string, sys *es.System) error {
	data, err := Bytes(sys)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("snapshot: write %s: %w", path, err)
	}
	return nil
}

// LoadFile restores a system dumped by SaveFile.
func LoadFile(path string) (*es.System, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read %s: %w", path, err)
	}
	return Restore(bytes.NewReader(data))
}
