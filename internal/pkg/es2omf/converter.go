package es2omf

import (
	"gonum.org/v1/gonum/floats"

	"github.com/gridmodel/esmt/internal/pkg/es"
	"github.com/gridmodel/esmt/internal/pkg/omf"
)

func (b *builder) buildConverter(t es.Transformer) *omf.Converter {
	return &omf.Converter{
		Name:              t.ID.Name,
		Inputs:            b.interfaceFlows(t.ID.Name, t.Inputs, t.FlowParameters, b.busFeeding),
		Outputs:           b.interfaceFlows(t.ID.Name, t.Outputs, t.FlowParameters, b.busFedBy),
		ConversionFactors: reduceConversions(b.scalarConversions(t.ID.Name, t.Conversions)),
	}
}

func (b *builder) buildCHP(c es.CHP) *omf.CHP {
	chp := &omf.CHP{
		Converter: omf.Converter{
			Name:              c.ID.Name,
			Inputs:            b.interfaceFlows(c.ID.Name, c.Inputs, c.FlowParameters, b.busFeeding),
			Outputs:           b.interfaceFlows(c.ID.Name, c.Outputs, c.FlowParameters, b.busFedBy),
			ConversionFactors: reduceConversions(b.scalarConversions(c.ID.Name, c.Conversions)),
		},
	}

	extraction := len(c.ConversionsFullCondensation) > 0 || len(c.PowerLossIndex) > 0
	if c.BackPressure != nil && extraction {
		b.warn(c.ID.Name, "back_pressure",
			"back pressure and extraction parameters are mutually exclusive; extraction parameters skipped")
		chp.BackPressure = *c.BackPressure
		return chp
	}

	if c.BackPressure != nil {
		chp.BackPressure = *c.BackPressure
		return chp
	}

	if len(c.ConversionsFullCondensation) > 0 && len(c.PowerLossIndex) == 0 {
		b.warn(c.ID.Name, "conversions_full_condensation",
			"full condensation factors require a power loss index; skipped")
		return chp
	}
	if len(c.ConversionsFullCondensation) > 0 {
		chp.FullCondensationFactors = reduceConversions(
			b.scalarConversions(c.ID.Name, c.ConversionsFullCondensation))
		chp.PowerLossIndex = append([]float64{}, c.PowerLossIndex...)
		chp.MinCondenserLoad = append([]float64{}, c.MinCondenserLoad...)
	}
	return chp
}

type busLookup func(name, iface string) (*omf.Bus, bool)

func (b *builder) interfaceFlows(name string, ifaces []string, p es.FlowParameters, lookup busLookup) map[string]*omf.Flow {
	flows := make(map[string]*omf.Flow, len(ifaces))
	for _, iface := range ifaces {
		bus, ok := lookup(name, iface)
		if !ok {
			b.warn(name, iface, "no bus lists port %q; interface not connected", es.JoinPort(name, iface))
			continue
		}
		flows[bus.Name] = b.buildFlow(name, iface, p)
	}
	return flows
}

// scalarConversions averages any per-timestep efficiency series to a scalar.
// The target only supports constant conversion factors, so the mean is the
// best available approximation; this also impacts allocated emissions.
func (b *builder) scalarConversions(name string, table es.ConversionTable) es.ConversionTable {
	out := make(es.ConversionTable, len(table))
	for i, c := range table {
		if len(c.Series) > 0 {
			c.Rate = floats.Sum(c.Series) / float64(len(c.Series))
			c.Series = nil
			b.warn(name, es.JoinPort(c.From, c.To),
				"time-varying efficiency averaged to %v; this also impacts allocated emissions", c.Rate)
		}
		out[i] = c
	}
	return out
}

// reduceConversions flattens the input->output conversion table into the
// per-interface factor map of the native converter. The first conversion
// naming an interface writes its factor directly; when an interface shows
// up again on the opposite side of a later pairing, the two factors are
// combined by reciprocal sum: 1/(1/a + 1/b). Table order is therefore
// semantically relevant.
func reduceConversions(table es.ConversionTable) map[string]float64 {
	factors := make(map[string]float64, len(table))
	for _, c := range table {
		if _, seen := factors[c.To]; !seen {
			factors[c.To] = c.Rate
			continue
		}
		if prev, seen := factors[c.From]; seen {
			factors[c.From] = 1 / (1/prev + 1/c.Rate)
		} else {
			factors[c.From] = c.Rate
		}
	}
	return factors
}
