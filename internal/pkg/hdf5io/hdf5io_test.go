package hdf5io

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/gridmodel/esmt/internal/pkg/es/example"
)

func TestExtractParameters(t *testing.T) {
	params := ExtractParameters(example.FuelPowered())

	uid := params["uid"].(map[string]interface{})
	assert.Equal(t, uid["name"], "Fuel Powered")

	timeframe := params["timeframe"].(map[string]interface{})
	assert.Equal(t, timeframe["periods"], 4)
	assert.Equal(t, timeframe["step_seconds"], 3600.0)
	assert.Equal(t, timeframe["start"], "2019-10-03T00:00:00Z")

	sources := params["sources"].(map[string]interface{})
	assert.Equal(t, len(sources), 2)
	assert.Assert(t, sources["Gas Supply"] != nil)
	assert.Assert(t, sources["Solar Panel"] != nil)

	storages := params["storages"].(map[string]interface{})
	battery := storages["Battery"].(map[string]interface{})
	assert.Equal(t, battery["capacity"], 100.0)

	busses := params["busses"].(map[string]interface{})
	assert.Equal(t, len(busses), 2)
}

func TestExtractParametersEmptyGroupsPresent(t *testing.T) {
	params := ExtractParameters(example.Minimal())

	// every component group exists even when empty, fixing the file layout
	for _, group := range []string{"busses", "chps", "connectors", "sinks", "sources", "transformers", "storages"} {
		_, ok := params[group].(map[string]interface{})
		assert.Assert(t, ok, "missing group %q", group)
	}
	assert.Equal(t, len(params["chps"].(map[string]interface{})), 0)
}

func TestNormalizeLeaf(t *testing.T) {
	v, err := NormalizeLeaf("k", "text")
	assert.NilError(t, err)
	assert.Equal(t, v, "text")

	v, err = NormalizeLeaf("k", true)
	assert.NilError(t, err)
	assert.Equal(t, v, int64(1))

	v, err = NormalizeLeaf("k", 7)
	assert.NilError(t, err)
	assert.Equal(t, v, int64(7))

	v, err = NormalizeLeaf("k", []byte("raw"))
	assert.NilError(t, err)
	assert.Equal(t, v, "raw")

	v, err = NormalizeLeaf("k", 1.5)
	assert.NilError(t, err)
	assert.Equal(t, v, 1.5)
}

func TestNormalizeLeafUnsupported(t *testing.T) {
	_, err := NormalizeLeaf("busses/Powerline/oops", struct{}{})
	assert.Assert(t, err != nil)

	var unsupported *UnsupportedTypeError
	assert.Assert(t, errors.As(err, &unsupported))
	assert.Equal(t, unsupported.Key, "busses/Powerline/oops")
}
