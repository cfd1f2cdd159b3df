package es2omf

import (
	"math"

	"github.com/gridmodel/esmt/internal/pkg/es"
	"github.com/gridmodel/esmt/internal/pkg/omf"
)

// buildStorage translates a storage. The target's initial level and loss
// rate are fractions of capacity, so the absolute SOC and idle change are
// divided by the installed capacity; a zero capacity falls back to the
// uninitialized default with a warning instead of dividing by zero.
func (b *builder) buildStorage(s es.Storage) *omf.GenericStorage {
	native := &omf.GenericStorage{
		Name:    s.ID.Name,
		Inputs:  b.interfaceFlows(s.ID.Name, s.Inputs, s.FlowParameters, b.busFeeding),
		Outputs: b.interfaceFlows(s.ID.Name, s.Outputs, s.FlowParameters, b.busFedBy),
	}

	inflow, outflow := chargeInterfaces(s)
	eff := s.Efficiency(inflow)
	native.InflowConversion = eff.Inflow
	native.OutflowConversion = s.Efficiency(outflow).Outflow

	if s.Capacity > 0 {
		native.InitialLevel = s.InitialSOC / s.Capacity
		native.LossRate = s.IdleChanges.Negative / s.Capacity
	} else {
		if s.InitialSOC != 0 {
			b.warn(s.ID.Name, "initial_soc", "capacity is zero; initial level substituted with zero")
		}
		if s.IdleChanges.Negative != 0 {
			b.warn(s.ID.Name, "idle_changes", "capacity is zero; loss rate substituted with zero")
		}
	}

	native.Balanced = s.FinalSOC != nil && *s.FinalSOC == s.InitialSOC

	if s.Expandable[es.CapacityKey] {
		native.Investment = b.buildInvestment(s.ID.Name, es.CapacityKey,
			s.Capacity, s.ExpansionLimit(es.CapacityKey), s.ExpansionCosts[es.CapacityKey])
		native.InvestRelationInputCapacity = b.investRelation(s, inflow)
		native.InvestRelationOutputCapacity = b.investRelation(s, outflow)
	} else {
		capacity := s.Capacity
		native.NominalCapacity = &capacity
	}

	return native
}

// investRelation computes the fixed flow-rate-to-capacity ratio once at
// build time for interfaces marked with a fixed expansion ratio.
func (b *builder) investRelation(s es.Storage, iface string) *float64 {
	if iface == "" || !s.FixedExpansionRatios[iface] {
		return nil
	}
	if s.Capacity == 0 {
		b.warn(s.ID.Name, iface, "capacity is zero; fixed expansion ratio skipped")
		return nil
	}
	max := s.Rate(iface).Max
	if math.IsInf(max, 1) {
		b.warn(s.ID.Name, iface, "flow rate maximum is unbounded; fixed expansion ratio skipped")
		return nil
	}
	ratio := max / s.Capacity
	return &ratio
}

func chargeInterfaces(s es.Storage) (inflow, outflow string) {
	if len(s.Inputs) > 0 {
		inflow = s.Inputs[0]
	}
	if len(s.Outputs) > 0 {
		outflow = s.Outputs[0]
	}
	return inflow, outflow
}
