package cfgdir

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/gridmodel/esmt/internal/pkg/es/example"
)

func TestRoundTrip(t *testing.T) {
	want := example.FuelPowered()
	dir := filepath.Join(t.TempDir(), "Fuel Powered")

	assert.NilError(t, Write(dir, want))

	got, err := Read(dir)
	assert.NilError(t, err)

	// the system uid comes from the folder name
	assert.Equal(t, got.UID.Name, "Fuel Powered")
	assert.DeepEqual(t, got.Timeframe, want.Timeframe)
	assert.DeepEqual(t, got.Busses, want.Busses)
	assert.DeepEqual(t, got.Sources, want.Sources)
	assert.DeepEqual(t, got.Sinks, want.Sinks)
	assert.DeepEqual(t, got.Transformers, want.Transformers)
	assert.DeepEqual(t, got.Storages, want.Storages)
	assert.Assert(t, math.IsInf(got.GlobalConstraints["emissions"], 1))
}

func TestWriteSkipsEmptyGroups(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Minimal")
	assert.NilError(t, Write(dir, example.Minimal()))

	_, err := os.Stat(filepath.Join(dir, "storages.cfg"))
	assert.Assert(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "connectors.cfg"))
	assert.Assert(t, os.IsNotExist(err))

	// timeframe and constraints are always written
	_, err = os.Stat(filepath.Join(dir, "timeframe.cfg"))
	assert.NilError(t, err)
	_, err = os.Stat(filepath.Join(dir, "global_constraints.cfg"))
	assert.NilError(t, err)
}

func TestReadToleratesMissingGroupFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Sparse")
	assert.NilError(t, os.MkdirAll(dir, 0o755))
	writeTestFile(t, dir, "timeframe.cfg", `
[timeframe]
start = "2019-10-03T00:00:00Z"
periods = 4
step = "1h0m0s"
`)

	sys, err := Read(dir)
	assert.NilError(t, err)
	assert.Equal(t, len(sys.Nodes()), 0)
	assert.Equal(t, sys.Timeframe.Periods, 4)
}

func TestReadAcceptsQuotedInfinity(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Quoted")
	assert.NilError(t, os.MkdirAll(dir, 0o755))
	writeTestFile(t, dir, "timeframe.cfg", `
[timeframe]
start = "2019-10-03T00:00:00Z"
periods = 4
step = "1h0m0s"
`)
	writeTestFile(t, dir, "sources.cfg", `
[Wind]
outputs = ["electricity"]

[Wind.uid]
name = "Wind"

[Wind.flow_rates.electricity]
min = 0.0
max = "inf"
`)
	writeTestFile(t, dir, "global_constraints.cfg", `
[global_constraints]
emissions = "inf"
`)

	sys, err := Read(dir)
	assert.NilError(t, err)
	assert.Equal(t, len(sys.Sources), 1)
	assert.Assert(t, math.IsInf(sys.Sources[0].Rate("electricity").Max, 1))
	assert.Assert(t, math.IsInf(sys.GlobalConstraints["emissions"], 1))
}

func TestBoundDecodesNativeAndQuoted(t *testing.T) {
	var b Bound
	assert.NilError(t, b.UnmarshalTOML(1.5))
	assert.Equal(t, float64(b), 1.5)

	assert.NilError(t, b.UnmarshalTOML("-inf"))
	assert.Assert(t, math.IsInf(float64(b), -1))

	assert.Assert(t, b.UnmarshalTOML("not a number") != nil)
}

func writeTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	assert.NilError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
