// Package es2omf translates an abstract energy system into the native omf
// component vocabulary. Degenerate inputs (expansion limits below installed
// capacity, zero storage capacity, time-varying data where the target needs
// a scalar) are never fatal: the offending value is clamped or averaged and
// a diagnostic is recorded and logged.
package es2omf

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/gridmodel/esmt/internal/pkg/es"
	"github.com/gridmodel/esmt/internal/pkg/omf"
)

// Diagnostic names one clamp or approximation applied during translation.
type Diagnostic struct {
	Component string
	Field     string
	Message   string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s.%s: %s", d.Component, d.Field, d.Message)
}

type options struct {
	logger logrus.FieldLogger
}

// Option adjusts the translation.
type Option func(*options)

// WithLogger routes translation warnings to the given logger instead of the
// process wide standard logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) { o.logger = l }
}

// Transform builds the fully parameterized native model for sys. The
// returned diagnostics list every warning emitted along the way; err is
// non-nil only for unencodable structure (duplicate node labels in the
// native container).
func Transform(sys *es.System, opts ...Option) (*omf.EnergySystem, []Diagnostic, error) {
	o := options{logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	b := &builder{
		sys:    sys,
		native: omf.New(sys.Timeframe.Points()),
		log:    o.logger,
		buses:  make(map[string]*omf.Bus, len(sys.Busses)),
	}
	b.native.GlobalConstraints = sys.GlobalConstraints

	if err := b.run(); err != nil {
		return nil, b.diags, err
	}
	return b.native, b.diags, nil
}

type builder struct {
	sys    *es.System
	native *omf.EnergySystem
	log    logrus.FieldLogger
	diags  []Diagnostic
	buses  map[string]*omf.Bus
}

func (b *builder) warn(component, field, format string, args ...interface{}) {
	d := Diagnostic{Component: component, Field: field, Message: fmt.Sprintf(format, args...)}
	b.diags = append(b.diags, d)
	b.log.WithFields(logrus.Fields{"component": component, "field": field}).Warn(d.Message)
}

func (b *builder) run() error {
	// Native busses come first; everything else connects to them.
	for _, bus := range b.sys.Busses {
		native := &omf.Bus{Name: bus.ID.Name}
		if err := b.native.Add(native); err != nil {
			return err
		}
		b.buses[bus.ID.Name] = native
	}
	for _, s := range b.sys.Sources {
		if err := b.native.Add(b.buildSource(s)); err != nil {
			return err
		}
	}
	for _, s := range b.sys.Sinks {
		if err := b.native.Add(b.buildSink(s)); err != nil {
			return err
		}
	}
	for _, t := range b.sys.Transformers {
		if err := b.native.Add(b.buildConverter(t)); err != nil {
			return err
		}
	}
	for _, c := range b.sys.CHPs {
		if err := b.native.Add(b.buildCHP(c)); err != nil {
			return err
		}
	}
	for _, s := range b.sys.Storages {
		if err := b.native.Add(b.buildStorage(s)); err != nil {
			return err
		}
	}
	for _, c := range b.sys.Connectors {
		if err := b.native.Add(b.buildLink(c)); err != nil {
			return err
		}
	}
	return nil
}

// busFeeding returns the native bus whose abstract counterpart lists
// "<name>.<iface>" among its outputs, i.e. the bus the component draws from.
func (b *builder) busFeeding(name, iface string) (*omf.Bus, bool) {
	port := es.JoinPort(name, iface)
	for _, bus := range b.sys.Busses {
		for _, p := range bus.Outputs {
			if p == port {
				return b.buses[bus.ID.Name], true
			}
		}
	}
	return nil, false
}

// busFedBy returns the native bus whose abstract counterpart lists
// "<name>.<iface>" among its inputs, i.e. the bus the component feeds.
func (b *builder) busFedBy(name, iface string) (*omf.Bus, bool) {
	port := es.JoinPort(name, iface)
	for _, bus := range b.sys.Busses {
		for _, p := range bus.Inputs {
			if p == port {
				return b.buses[bus.ID.Name], true
			}
		}
	}
	return nil, false
}

func (b *builder) buildSource(s es.Source) *omf.Source {
	outputs := make(map[string]*omf.Flow, len(s.Outputs))
	for _, iface := range s.Outputs {
		bus, ok := b.busFedBy(s.ID.Name, iface)
		if !ok {
			b.warn(s.ID.Name, iface, "no bus lists port %q; output not connected", es.JoinPort(s.ID.Name, iface))
			continue
		}
		outputs[bus.Name] = b.buildFlow(s.ID.Name, iface, s.FlowParameters)
	}
	return &omf.Source{Name: s.ID.Name, Outputs: outputs}
}

func (b *builder) buildSink(s es.Sink) *omf.Sink {
	inputs := make(map[string]*omf.Flow, len(s.Inputs))
	for _, iface := range s.Inputs {
		bus, ok := b.busFeeding(s.ID.Name, iface)
		if !ok {
			b.warn(s.ID.Name, iface, "no bus lists port %q; input not connected", es.JoinPort(s.ID.Name, iface))
			continue
		}
		inputs[bus.Name] = b.buildFlow(s.ID.Name, iface, s.FlowParameters)
	}
	return &omf.Sink{Name: s.ID.Name, Inputs: inputs}
}

func (b *builder) buildLink(c es.Connector) *omf.Link {
	a, z := c.Interfaces[0], c.Interfaces[1]
	return &omf.Link{
		Name: c.ID.Name,
		Bus1: a,
		Bus2: z,
		Conversions: map[omf.Direction]float64{
			{From: a, To: z}: c.TransferRate(a, z),
			{From: z, To: a}: c.TransferRate(z, a),
		},
	}
}
