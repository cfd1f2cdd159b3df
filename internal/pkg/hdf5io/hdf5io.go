// Package hdf5io exports an energy system as a hierarchical HDF5 file
// mirroring the nested attribute maps of ExtractParameters. Nil values are
// dropped; unsupported leaf types are the only fatal serialization error.
package hdf5io

import (
	"fmt"
	"sort"
	"strconv"

	"gonum.org/v1/hdf5"

	"github.com/gridmodel/esmt/internal/pkg/es"
)

// UnsupportedTypeError identifies a leaf value no HDF5 dataset can encode.
type UnsupportedTypeError struct {
	Key   string
	Value interface{}
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("hdf5io: unsupported value %v of type %T at %q", e.Value, e.Value, e.Key)
}

// ExtractParameters flattens the system into the nested parameter hierarchy
// the HDF5 layout mirrors: system identity, time axis, global constraints
// and one group per component type keyed by rendered Uid.
func ExtractParameters(sys *es.System) map[string]interface{} {
	params := map[string]interface{}{
		"uid": map[string]interface{}{
			"name":      sys.UID.Name,
			"latitude":  sys.UID.Latitude,
			"longitude": sys.UID.Longitude,
			"region":    sys.UID.Region,
			"sector":    sys.UID.Sector,
			"carrier":   sys.UID.Carrier,
			"component": sys.UID.Component,
			"node_type": sys.UID.NodeType,
		},
		"timeframe": map[string]interface{}{
			"start":        sys.Timeframe.Start.Format("2006-01-02T15:04:05Z07:00"),
			"periods":      sys.Timeframe.Periods,
			"step_seconds": sys.Timeframe.Step.Seconds(),
		},
	}

	constraints := make(map[string]interface{}, len(sys.GlobalConstraints))
	for k, v := range sys.GlobalConstraints {
		constraints[k] = v
	}
	params["global_constraints"] = constraints

	groups := map[string]map[string]interface{}{
		"busses":       {},
		"chps":         {},
		"connectors":   {},
		"sinks":        {},
		"sources":      {},
		"transformers": {},
		"storages":     {},
	}
	for _, n := range sys.Nodes() {
		groups[groupOf(n.Kind())][n.UID().String()] = n.Attributes()
	}
	for name, group := range groups {
		params[name] = group
	}
	return params
}

func groupOf(kind string) string {
	switch kind {
	case "bus":
		return "busses"
	case "chp":
		return "chps"
	default:
		return kind + "s"
	}
}

// Write persists ExtractParameters(sys) to path.
func Write(path string, sys *es.System) error {
	f, err := hdf5.CreateFile(path, hdf5.F_ACC_TRUNC)
	if err != nil {
		return fmt.Errorf("hdf5io: create %s: %w", path, err)
	}
	defer f.Close()

	return writeMap(&f.CommonFG, "", ExtractParameters(sys))
}

func writeMap(loc *hdf5.CommonFG, prefix string, m map[string]interface{}) error {
	for _, key := range sortedKeys(m) {
		if err := writeEntry(loc, prefix, key, m[key]); err != nil {
			return err
		}
	}
	return nil
}

func writeEntry(loc *hdf5.CommonFG, prefix, key string, value interface{}) error {
	path := prefix + "/" + key
	switch v := value.(type) {
	case nil:
		// Dropped: there is no sensible encoding for an absent value.
		return nil
	case map[string]interface{}:
		g, err := loc.CreateGroup(key)
		if err != nil {
			return fmt.Errorf("hdf5io: create group %q: %w", path, err)
		}
		defer g.Close()
		return writeMap(&g.CommonFG, path, v)
	case []interface{}:
		g, err := loc.CreateGroup(key)
		if err != nil {
			return fmt.Errorf("hdf5io: create group %q: %w", path, err)
		}
		defer g.Close()
		for i, entry := range v {
			if err := writeEntry(&g.CommonFG, path, strconv.Itoa(i), entry); err != nil {
				return err
			}
		}
		return nil
	default:
		leaf, err := NormalizeLeaf(path, value)
		if err != nil {
			return err
		}
		return writeLeaf(loc, path, key, leaf)
	}
}

// NormalizeLeaf coerces a supported leaf value to its canonical encoding:
// string, int64, float64, []float64 or []string. Booleans encode as
// integers. Anything else is an UnsupportedTypeError.
func NormalizeLeaf(key string, value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case bool:
		if v {
			return int64(1), nil
		}
		return int64(0), nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		return v, nil
	case []float64:
		return v, nil
	case []string:
		return v, nil
	default:
		return nil, &UnsupportedTypeError{Key: key, Value: value}
	}
}

func writeLeaf(loc *hdf5.CommonFG, path, key string, leaf interface{}) error {
	var (
		dspace *hdf5.Dataspace
		dtype  *hdf5.Datatype
		err    error
	)

	switch v := leaf.(type) {
	case string:
		dspace, err = hdf5.CreateDataspace(hdf5.S_SCALAR)
		dtype = hdf5.T_GO_STRING
		if err == nil {
			err = createAndWrite(loc, key, dtype, dspace, &v)
		}
	case int64:
		dspace, err = hdf5.CreateDataspace(hdf5.S_SCALAR)
		dtype = hdf5.T_NATIVE_INT64
		if err == nil {
			err = createAndWrite(loc, key, dtype, dspace, &v)
		}
	case float64:
		dspace, err = hdf5.CreateDataspace(hdf5.S_SCALAR)
		dtype = hdf5.T_NATIVE_DOUBLE
		if err == nil {
			err = createAndWrite(loc, key, dtype, dspace, &v)
		}
	case []float64:
		dspace, err = hdf5.CreateSimpleDataspace([]uint{uint(len(v))}, nil)
		dtype = hdf5.T_NATIVE_DOUBLE
		if err == nil {
			err = createAndWrite(loc, key, dtype, dspace, &v)
		}
	case []string:
		dspace, err = hdf5.CreateSimpleDataspace([]uint{uint(len(v))}, nil)
		dtype = hdf5.T_GO_STRING
		if err == nil {
			err = createAndWrite(loc, key, dtype, dspace, &v)
		}
	}
	if err != nil {
		return fmt.Errorf("hdf5io: write %q: %w", path, err)
	}
	if dspace != nil {
		dspace.Close()
	}
	return nil
}

func createAndWrite(loc *hdf5.CommonFG, key string, dtype *hdf5.Datatype, dspace *hdf5.Dataspace, data interface{}) error {
	dset, err := loc.CreateDataset(key, dtype, dspace)
	if err != nil {
		return err
	}
	defer dset.Close()
	return dset.Write(data)
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
