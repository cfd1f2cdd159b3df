package snapshot

import (
	"bytes"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/gridmodel/esmt/internal/pkg/es/example"
)

func TestRoundTrip(t *testing.T) {
	want := example.FuelPowered()

	var buf bytes.Buffer
	assert.NilError(t, Dump(&buf, want))

	got, err := Restore(&buf)
	assert.NilError(t, err)

	assert.Equal(t, got.UID.Name, "Fuel Powered")
	assert.DeepEqual(t, got.Busses, want.Busses)
	assert.DeepEqual(t, got.Sources, want.Sources)
	assert.DeepEqual(t, got.Storages, want.Storages)
	assert.Equal(t, len(got.Edges()), len(want.Edges()))
}

func TestFileRoundTrip(t *testing.T) {
	want := example.Minimal()
	path := filepath.Join(t.TempDir(), "minimal.bin")

	assert.NilError(t, SaveFile(path, want))

	got, err := LoadFile(path)
	assert.NilError(t, err)
	assert.Equal(t, got.UID.Name, "Minimal")
	assert.Equal(t, len(got.Nodes()), 3)
}

func TestRestoreRejectsGarbage(t *testing.T) {
	_, err := Restore(bytes.NewReader([]byte("not a snapshot")))
	assert.Assert(t, err != nil)
}
