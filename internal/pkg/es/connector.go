package es

// Connector couples two busses, optionally with a directional loss factor.
// Unlike bus ports, its interfaces are plain bus names (rendered Uids),
// never "name.interface" port strings: connectors always join at the bus
// level. This is a fixed protocol decision, mirrored in the type by
// Interfaces being a pair of bus names.
type Connector struct {
	ID         Uid
	Interfaces [2]string
	// Conversions holds the transfer efficiency per direction; a missing
	// direction defaults to 1.
	Conversions ConversionTable
}

// UID returns the connector identity.
func (c Connector) UID() Uid { return c.ID }

// Kind returns "connector".
func (c Connector) Kind() string { return "connector" }

// ConnectorInputs returns the bus names flowing into the connector. Both
// coupled busses feed and draw, so inputs and outputs coincide.
func (c Connector) ConnectorInputs() []string {
	return []string{c.Interfaces[0], c.Interfaces[1]}
}

// ConnectorOutputs returns the bus names the connector feeds.
func (c Connector) ConnectorOutputs() []string {
	return []string{c.Interfaces[0], c.Interfaces[1]}
}

// TransferRate returns the conversion factor for the from->to direction,
// defaulting to 1.
func (c Connector) TransferRate(from, to string) float64 {
	if r, ok := c.Conversions.Rate(from, to); ok {
		return r
	}
	return 1
}

// Attributes maps the declared fields for serialization.
func (c Connector) Attributes() map[string]interface{} {
	return map[string]interface{}{
		"uid":         uidAttributes(c.ID),
		"interfaces":  []string{c.Interfaces[0], c.Interfaces[1]},
		"inputs":      c.ConnectorInputs(),
		"outputs":     c.ConnectorOutputs(),
		"conversions": conversionAttributes(c.Conversions),
	}
}

// Duplicate rewrites the connector name and its bus-name interfaces.
func (c Connector) Duplicate(prefix, separator, suffix string) Component {
	out := c
	out.ID.Name = rename(c.ID.Name, prefix, separator, suffix)
	out.Interfaces = [2]string{
		rename(c.Interfaces[0], prefix, separator, suffix),
		rename(c.Interfaces[1], prefix, separator, suffix),
	}
	conversions := make(ConversionTable, len(c.Conversions))
	for i, cv := range c.Conversions {
		cv.From = rename(cv.From, prefix, separator, suffix)
		cv.To = rename(cv.To, prefix, separator, suffix)
		conversions[i] = cv
	}
	out.Conversions = conversions
	return out
}

func (Connector) isComponent() {}
