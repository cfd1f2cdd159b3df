package cfgdir

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/gridmodel/esmt/internal/pkg/es"
)

const (
	timeframeFile    = "timeframe.cfg"
	constraintsFile  = "global_constraints.cfg"
	bussesFile       = "busses.cfg"
	chpsFile         = "chps.cfg"
	connectorsFile   = "connectors.cfg"
	sinksFile        = "sinks.cfg"
	sourcesFile      = "sources.cfg"
	storagesFile     = "storages.cfg"
	transformersFile = "transformers.cfg"
)

// Write persists sys into dir, one cfg file per logical group. Empty
// component groups produce no file.
func Write(dir string, sys *es.System) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cfg folder: %w", err)
	}

	timeframe := map[string]TimeframeRec{
		"timeframe": {
			Start:   sys.Timeframe.Start.Format(time.RFC3339),
			Periods: sys.Timeframe.Periods,
			Step:    sys.Timeframe.Step.String(),
		},
	}
	if err := writeFile(dir, timeframeFile, timeframe); err != nil {
		return err
	}

	constraints := map[string]map[string]Bound{
		"global_constraints": boundRecs(sys.GlobalConstraints),
	}
	if err := writeFile(dir, constraintsFile, constraints); err != nil {
		return err
	}

	busses := make(map[string]BusRec, len(sys.Busses))
	for _, b := range sys.Busses {
		busses[b.ID.String()] = BusRec{Uid: uidRec(b.ID), Inputs: b.Inputs, Outputs: b.Outputs}
	}
	if err := writeGroup(dir, bussesFile, busses); err != nil {
		return err
	}

	sources := make(map[string]SourceRec, len(sys.Sources))
	for _, s := range sys.Sources {
		sources[s.ID.String()] = SourceRec{Uid: uidRec(s.ID), Outputs: s.Outputs, FlowParamsRec: flowParamsRec(s.FlowParameters)}
	}
	if err := writeGroup(dir, sourcesFile, sources); err != nil {
		return err
	}

	sinks := make(map[string]SinkRec, len(sys.Sinks))
	for _, s := range sys.Sinks {
		sinks[s.ID.String()] = SinkRec{Uid: uidRec(s.ID), Inputs: s.Inputs, FlowParamsRec: flowParamsRec(s.FlowParameters)}
	}
	if err := writeGroup(dir, sinksFile, sinks); err != nil {
		return err
	}

	transformers := make(map[string]TransformerRec, len(sys.Transformers))
	for _, t := range sys.Transformers {
		transformers[t.ID.String()] = TransformerRec{
			Uid:           uidRec(t.ID),
			Inputs:        t.Inputs,
			Outputs:       t.Outputs,
			Conversions:   conversionRecs(t.Conversions),
			FlowParamsRec: flowParamsRec(t.FlowParameters),
		}
	}
	if err := writeGroup(dir, transformersFile, transformers); err != nil {
		return err
	}

	chps := make(map[string]CHPRec, len(sys.CHPs))
	for _, c := range sys.CHPs {
		chps[c.ID.String()] = CHPRec{
			Uid:                         uidRec(c.ID),
			Inputs:                      c.Inputs,
			Outputs:                     c.Outputs,
			Conversions:                 conversionRecs(c.Conversions),
			ConversionsFullCondensation: conversionRecs(c.ConversionsFullCondensation),
			PowerLossIndex:              c.PowerLossIndex,
			MinCondenserLoad:            c.MinCondenserLoad,
			BackPressure:                c.BackPressure,
			FlowParamsRec:               flowParamsRec(c.FlowParameters),
		}
	}
	if err := writeGroup(dir, chpsFile, chps); err != nil {
		return err
	}

	storages := make(map[string]StorageRec, len(sys.Storages))
	for _, s := range sys.Storages {
		eff := make(map[string]InOutRec, len(s.FlowEfficiencies))
		for k, v := range s.FlowEfficiencies {
			eff[k] = InOutRec{Inflow: Bound(v.Inflow), Outflow: Bound(v.Outflow)}
		}
		storages[s.ID.String()] = StorageRec{
			Uid:        uidRec(s.ID),
			Inputs:     s.Inputs,
			Outputs:    s.Outputs,
			Capacity:   Bound(s.Capacity),
			InitialSOC: Bound(s.InitialSOC),
			FinalSOC:   s.FinalSOC,
			IdleChanges: PosNegRec{
				Positive: Bound(s.IdleChanges.Positive),
				Negative: Bound(s.IdleChanges.Negative),
			},
			FlowEfficiencies:     eff,
			FixedExpansionRatios: s.FixedExpansionRatios,
			FlowParamsRec:        flowParamsRec(s.FlowParameters),
		}
	}
	if err := writeGroup(dir, storagesFile, storages); err != nil {
		return err
	}

	connectors := make(map[string]ConnectorRec, len(sys.Connectors))
	for _, c := range sys.Connectors {
		connectors[c.ID.String()] = ConnectorRec{
			Uid:         uidRec(c.ID),
			Interfaces:  []string{c.Interfaces[0], c.Interfaces[1]},
			Conversions: conversionRecs(c.Conversions),
		}
	}
	return writeGroup(dir, connectorsFile, connectors)
}

func writeGroup[R any](dir, name string, group map[string]R) error {
	if len(group) == 0 {
		return nil
	}
	return writeFile(dir, name, group)
}

func writeFile(dir, name string, v interface{}) error {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return nil
}

// Read assembles a system from a cfg folder written by Write. Missing
// group files yield empty collections; the system uid is taken from the
// folder name.
func Read(dir string) (*es.System, error) {
	timeframe, err := readTimeframe(dir)
	if err != nil {
		return nil, err
	}

	var constraintGroups map[string]map[string]Bound
	if err := readGroup(dir, constraintsFile, &constraintGroups); err != nil {
		return nil, err
	}
	constraints := floatsOf(constraintGroups["global_constraints"])

	var components []es.Component

	var busses map[string]BusRec
	if err := readGroup(dir, bussesFile, &busses); err != nil {
		return nil, err
	}
	for _, key := range sortedKeys(busses) {
		r := busses[key]
		components = append(components, es.Bus{ID: r.Uid.uid(), Inputs: r.Inputs, Outputs: r.Outputs})
	}

	var sources map[string]SourceRec
	if err := readGroup(dir, sourcesFile, &sources); err != nil {
		return nil, err
	}
	for _, key := range sortedKeys(sources) {
		r := sources[key]
		components = append(components, es.Source{ID: r.Uid.uid(), Outputs: r.Outputs, FlowParameters: r.flowParameters()})
	}

	var sinks map[string]SinkRec
	if err := readGroup(dir, sinksFile, &sinks); err != nil {
		return nil, err
	}
	for _, key := range sortedKeys(sinks) {
		r := sinks[key]
		components = append(components, es.Sink{ID: r.Uid.uid(), Inputs: r.Inputs, FlowParameters: r.flowParameters()})
	}

	var transformers map[string]TransformerRec
	if err := readGroup(dir, transformersFile, &transformers); err != nil {
		return nil, err
	}
	for _, key := range sortedKeys(transformers) {
		r := transformers[key]
		components = append(components, es.Transformer{
			ID:             r.Uid.uid(),
			Inputs:         r.Inputs,
			Outputs:        r.Outputs,
			Conversions:    conversionTable(r.Conversions),
			FlowParameters: r.flowParameters(),
		})
	}

	var chps map[string]CHPRec
	if err := readGroup(dir, chpsFile, &chps); err != nil {
		return nil, err
	}
	for _, key := range sortedKeys(chps) {
		r := chps[key]
		components = append(components, es.CHP{
			ID:                          r.Uid.uid(),
			Inputs:                      r.Inputs,
			Outputs:                     r.Outputs,
			Conversions:                 conversionTable(r.Conversions),
			ConversionsFullCondensation: conversionTable(r.ConversionsFullCondensation),
			PowerLossIndex:              r.PowerLossIndex,
			MinCondenserLoad:            r.MinCondenserLoad,
			BackPressure:                r.BackPressure,
			FlowParameters:              r.flowParameters(),
		})
	}

	var storages map[string]StorageRec
	if err := readGroup(dir, storagesFile, &storages); err != nil {
		return nil, err
	}
	for _, key := range sortedKeys(storages) {
		r := storages[key]
		eff := make(map[string]es.InOut, len(r.FlowEfficiencies))
		for k, v := range r.FlowEfficiencies {
			eff[k] = es.InOut{Inflow: float64(v.Inflow), Outflow: float64(v.Outflow)}
		}
		components = append(components, es.Storage{
			ID:         r.Uid.uid(),
			Inputs:     r.Inputs,
			Outputs:    r.Outputs,
			Capacity:   float64(r.Capacity),
			InitialSOC: float64(r.InitialSOC),
			FinalSOC:   r.FinalSOC,
			IdleChanges: es.PositiveNegative{
				Positive: float64(r.IdleChanges.Positive),
				Negative: float64(r.IdleChanges.Negative),
			},
			FlowEfficiencies:     eff,
			FixedExpansionRatios: r.FixedExpansionRatios,
			FlowParameters:       r.flowParameters(),
		})
	}

	var connectors map[string]ConnectorRec
	if err := readGroup(dir, connectorsFile, &connectors); err != nil {
		return nil, err
	}
	for _, key := range sortedKeys(connectors) {
		r := connectors[key]
		var interfaces [2]string
		if len(r.Interfaces) > 0 {
			interfaces[0] = r.Interfaces[0]
		}
		if len(r.Interfaces) > 1 {
			interfaces[1] = r.Interfaces[1]
		}
		components = append(components, es.Connector{
			ID:          r.Uid.uid(),
			Interfaces:  interfaces,
			Conversions: conversionTable(r.Conversions),
		})
	}

	uid := es.Uid{Name: filepath.Base(filepath.Clean(dir))}
	return es.FromComponents(uid, components, timeframe, constraints), nil
}

func readTimeframe(dir string) (es.Timeframe, error) {
	var group map[string]TimeframeRec
	if err := readGroup(dir, timeframeFile, &group); err != nil {
		return es.Timeframe{}, err
	}
	rec, ok := group["timeframe"]
	if !ok {
		return es.Timeframe{}, nil
	}
	start, err := time.Parse(time.RFC3339, rec.Start)
	if err != nil {
		return es.Timeframe{}, fmt.Errorf("parse timeframe start: %w", err)
	}
	step, err := time.ParseDuration(rec.Step)
	if err != nil {
		return es.Timeframe{}, fmt.Errorf("parse timeframe step: %w", err)
	}
	return es.Timeframe{Start: start, Periods: rec.Periods, Step: step}, nil
}

func readGroup(dir, name string, v interface{}) error {
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if _, err := toml.DecodeFile(path, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func sortedKeys[R any](m map[string]R) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
