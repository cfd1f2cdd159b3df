// Package cfgdir persists an energy system as a folder of cfg files, one
// per logical group (timeframe, global constraints, one file per component
// type), each holding one section per component keyed by the rendered Uid.
// The files are TOML; infinite bounds are written as native inf floats, and
// the reader additionally accepts them quoted as the strings "inf"/"-inf".
package cfgdir

import (
	"github.com/spf13/cast"

	"github.com/gridmodel/esmt/internal/pkg/es"
)

// Bound is a float64 that also decodes from the quoted sentinel strings
// "inf" and "-inf".
type Bound float64

// UnmarshalTOML accepts floats, integers and parseable strings.
func (b *Bound) UnmarshalTOML(v interface{}) error {
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return err
	}
	*b = Bound(f)
	return nil
}

// MinMaxRec mirrors es.MinMax.
type MinMaxRec struct {
	Min Bound `toml:"min"`
	Max Bound `toml:"max"`
}

// PosNegRec mirrors es.PositiveNegative.
type PosNegRec struct {
	Positive Bound `toml:"positive"`
	Negative Bound `toml:"negative"`
}

// InOutRec mirrors es.InOut.
type InOutRec struct {
	Inflow  Bound `toml:"inflow"`
	Outflow Bound `toml:"outflow"`
}

// SeriesRec mirrors es.SeriesBounds.
type SeriesRec struct {
	Min []float64 `toml:"min"`
	Max []float64 `toml:"max"`
}

// ConversionRec mirrors one es.Conversion entry; conversions are arrays of
// tables so insertion order survives the round trip.
type ConversionRec struct {
	From   string    `toml:"from"`
	To     string    `toml:"to"`
	Rate   Bound     `toml:"rate"`
	Series []float64 `toml:"series,omitempty"`
}

// UidRec mirrors es.Uid.
type UidRec struct {
	Name      string  `toml:"name"`
	Latitude  float64 `toml:"latitude"`
	Longitude float64 `toml:"longitude"`
	Region    string  `toml:"region"`
	Sector    string  `toml:"sector"`
	Carrier   string  `toml:"carrier"`
	Component string  `toml:"component"`
	NodeType  string  `toml:"node_type"`
}

// FlowParamsRec mirrors es.FlowParameters.
type FlowParamsRec struct {
	FlowRates          map[string]MinMaxRec `toml:"flow_rates,omitempty"`
	FlowCosts          map[string]Bound     `toml:"flow_costs,omitempty"`
	FlowEmissions      map[string]Bound     `toml:"flow_emissions,omitempty"`
	FlowGradients      map[string]PosNegRec `toml:"flow_gradients,omitempty"`
	GradientCosts      map[string]PosNegRec `toml:"gradient_costs,omitempty"`
	AccumulatedAmounts map[string]MinMaxRec `toml:"accumulated_amounts,omitempty"`
	Expandable         map[string]bool      `toml:"expandable,omitempty"`
	ExpansionCosts     map[string]Bound     `toml:"expansion_costs,omitempty"`
	ExpansionLimits    map[string]MinMaxRec `toml:"expansion_limits,omitempty"`
	Timeseries         map[string]SeriesRec `toml:"timeseries,omitempty"`
}

// SourceRec is one sources.cfg section.
type SourceRec struct {
	Uid     UidRec   `toml:"uid"`
	Outputs []string `toml:"outputs"`
	FlowParamsRec
}

// SinkRec is one sinks.cfg section.
type SinkRec struct {
	Uid    UidRec   `toml:"uid"`
	Inputs []string `toml:"inputs"`
	FlowParamsRec
}

// BusRec is one busses.cfg section.
type BusRec struct {
	Uid     UidRec   `toml:"uid"`
	Inputs  []string `toml:"inputs"`
	Outputs []string `toml:"outputs"`
}

// TransformerRec is one transformers.cfg section.
type TransformerRec struct {
	Uid         UidRec          `toml:"uid"`
	Inputs      []string        `toml:"inputs"`
	Outputs     []string        `toml:"outputs"`
	Conversions []ConversionRec `toml:"conversions"`
	FlowParamsRec
}

// CHPRec is one chps.cfg section.
type CHPRec struct {
	Uid                         UidRec          `toml:"uid"`
	Inputs                      []string        `toml:"inputs"`
	Outputs                     []string        `toml:"outputs"`
	Conversions                 []ConversionRec `toml:"conversions"`
	ConversionsFullCondensation []ConversionRec `toml:"conversions_full_condensation,omitempty"`
	PowerLossIndex              []float64       `toml:"power_loss_index,omitempty"`
	MinCondenserLoad            []float64       `toml:"min_condenser_load,omitempty"`
	BackPressure                *bool           `toml:"back_pressure,omitempty"`
	FlowParamsRec
}

// StorageRec is one storages.cfg section.
type StorageRec struct {
	Uid                  UidRec              `toml:"uid"`
	Inputs               []string            `toml:"inputs"`
	Outputs              []string            `toml:"outputs"`
	Capacity             Bound               `toml:"capacity"`
	InitialSOC           Bound               `toml:"initial_soc"`
	FinalSOC             *float64            `toml:"final_soc,omitempty"`
	IdleChanges          PosNegRec           `toml:"idle_changes"`
	FlowEfficiencies     map[string]InOutRec `toml:"flow_efficiencies,omitempty"`
	FixedExpansionRatios map[string]bool     `toml:"fixed_expansion_ratios,omitempty"`
	FlowParamsRec
}

// ConnectorRec is one connectors.cfg section.
type ConnectorRec struct {
	Uid         UidRec          `toml:"uid"`
	Interfaces  []string        `toml:"interfaces"`
	Conversions []ConversionRec `toml:"conversions,omitempty"`
}

// TimeframeRec is the timeframe.cfg section.
type TimeframeRec struct {
	Start   string `toml:"start"`
	Periods int    `toml:"periods"`
	Step    string `toml:"step"`
}

func uidRec(u es.Uid) UidRec {
	return UidRec{
		Name:      u.Name,
		Latitude:  u.Latitude,
		Longitude: u.Longitude,
		Region:    u.Region,
		Sector:    u.Sector,
		Carrier:   u.Carrier,
		Component: u.Component,
		NodeType:  u.NodeType,
	}
}

func (r UidRec) uid() es.Uid {
	return es.Uid{
		Name:      r.Name,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Region:    r.Region,
		Sector:    r.Sector,
		Carrier:   r.Carrier,
		Component: r.Component,
		NodeType:  r.NodeType,
	}
}

func minmaxRecs(m map[string]es.MinMax) map[string]MinMaxRec {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]MinMaxRec, len(m))
	for k, v := range m {
		out[k] = MinMaxRec{Min: Bound(v.Min), Max: Bound(v.Max)}
	}
	return out
}

func minmaxes(m map[string]MinMaxRec) map[string]es.MinMax {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]es.MinMax, len(m))
	for k, v := range m {
		out[k] = es.MinMax{Min: float64(v.Min), Max: float64(v.Max)}
	}
	return out
}

func posnegRecs(m map[string]es.PositiveNegative) map[string]PosNegRec {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]PosNegRec, len(m))
	for k, v := range m {
		out[k] = PosNegRec{Positive: Bound(v.Positive), Negative: Bound(v.Negative)}
	}
	return out
}

func posnegs(m map[string]PosNegRec) map[string]es.PositiveNegative {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]es.PositiveNegative, len(m))
	for k, v := range m {
		out[k] = es.PositiveNegative{Positive: float64(v.Positive), Negative: float64(v.Negative)}
	}
	return out
}

func boundRecs(m map[string]float64) map[string]Bound {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]Bound, len(m))
	for k, v := range m {
		out[k] = Bound(v)
	}
	return out
}

func floatsOf(m map[string]Bound) map[string]float64 {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = float64(v)
	}
	return out
}

func seriesRecs(m map[string]es.SeriesBounds) map[string]SeriesRec {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]SeriesRec, len(m))
	for k, v := range m {
		out[k] = SeriesRec{Min: v.Min, Max: v.Max}
	}
	return out
}

func seriesBounds(m map[string]SeriesRec) map[string]es.SeriesBounds {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]es.SeriesBounds, len(m))
	for k, v := range m {
		out[k] = es.SeriesBounds{Min: v.Min, Max: v.Max}
	}
	return out
}

func conversionRecs(t es.ConversionTable) []ConversionRec {
	if len(t) == 0 {
		return nil
	}
	out := make([]ConversionRec, len(t))
	for i, c := range t {
		out[i] = ConversionRec{From: c.From, To: c.To, Rate: Bound(c.Rate), Series: c.Series}
	}
	return out
}

func conversionTable(recs []ConversionRec) es.ConversionTable {
	if len(recs) == 0 {
		return nil
	}
	out := make(es.ConversionTable, len(recs))
	for i, r := range recs {
		out[i] = es.Conversion{From: r.From, To: r.To, Rate: float64(r.Rate), Series: r.Series}
	}
	return out
}

func flowParamsRec(p es.FlowParameters) FlowParamsRec {
	return FlowParamsRec{
		FlowRates:          minmaxRecs(p.FlowRates),
		FlowCosts:          boundRecs(p.FlowCosts),
		FlowEmissions:      boundRecs(p.FlowEmissions),
		FlowGradients:      posnegRecs(p.FlowGradients),
		GradientCosts:      posnegRecs(p.GradientCosts),
		AccumulatedAmounts: minmaxRecs(p.AccumulatedAmounts),
		Expandable:         p.Expandable,
		ExpansionCosts:     boundRecs(p.ExpansionCosts),
		ExpansionLimits:    minmaxRecs(p.ExpansionLimits),
		Timeseries:         seriesRecs(p.Timeseries),
	}
}

func (r FlowParamsRec) flowParameters() es.FlowParameters {
	return es.FlowParameters{
		FlowRates:          minmaxes(r.FlowRates),
		FlowCosts:          floatsOf(r.FlowCosts),
		FlowEmissions:      floatsOf(r.FlowEmissions),
		FlowGradients:      posnegs(r.FlowGradients),
		GradientCosts:      posnegs(r.GradientCosts),
		AccumulatedAmounts: minmaxes(r.AccumulatedAmounts),
		Expandable:         r.Expandable,
		ExpansionCosts:     floatsOf(r.ExpansionCosts),
		ExpansionLimits:    minmaxes(r.ExpansionLimits),
		Timeseries:         seriesBounds(r.Timeseries),
	}
}
