package es

import "fmt"

// IssueKind classifies a precondition violation found by Validate.
type IssueKind int

const (
	// DuplicateName marks two components sharing one uid name; edge
	// derivation silently merges them.
	DuplicateName IssueKind = iota
	// InvertedBounds marks a MinMax with Min > Max.
	InvertedBounds
	// UnresolvedPort marks a bus port string whose component name or
	// interface matches nothing; the edge is silently omitted.
	UnresolvedPort
)

func (k IssueKind) String() string {
	switch k {
	case DuplicateName:
		return "duplicate name"
	case InvertedBounds:
		return "inverted bounds"
	case UnresolvedPort:
		return "unresolved port"
	}
	return "unknown"
}

// Issue is one precondition violation. The construction and derivation
// paths never check these; callers opt in via Validate.
type Issue struct {
	Kind      IssueKind
	Component string
	Detail    string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.Kind, i.Component, i.Detail)
}

// Validate reports the ambiguities the data model permits by design:
// duplicate uid names, inverted MinMax bounds and unresolvable bus port
// strings. It never mutates and is never called implicitly.
func Validate(sys *System) []Issue {
	var issues []Issue

	seen := make(map[string]bool)
	for _, n := range sys.Nodes() {
		name := n.UID().Name
		if seen[name] {
			issues = append(issues, Issue{Kind: DuplicateName, Component: name, Detail: "uid name appears more than once"})
		}
		seen[name] = true
	}

	for _, n := range sys.Nodes() {
		attrs := n.Attributes()
		for _, field := range []string{"flow_rates", "accumulated_amounts", "expansion_limits"} {
			m, ok := attrs[field].(map[string]interface{})
			if !ok {
				continue
			}
			for iface, v := range m {
				bounds, ok := v.(map[string]interface{})
				if !ok {
					continue
				}
				min, _ := bounds["min"].(float64)
				max, _ := bounds["max"].(float64)
				if min > max {
					issues = append(issues, Issue{
						Kind:      InvertedBounds,
						Component: n.UID().Name,
						Detail:    fmt.Sprintf("%s[%s] has min %v > max %v", field, iface, min, max),
					})
				}
			}
		}
	}

	for _, b := range sys.Busses {
		for _, port := range append(append([]string{}, b.Inputs...), b.Outputs...) {
			name, iface := SplitPort(port)
			n, ok := sys.nodeByName(name)
			if !ok {
				issues = append(issues, Issue{Kind: UnresolvedPort, Component: b.ID.Name, Detail: fmt.Sprintf("port %q names no component", port)})
				continue
			}
			if !declaresInterface(n, iface) {
				issues = append(issues, Issue{Kind: UnresolvedPort, Component: b.ID.Name, Detail: fmt.Sprintf("port %q names no declared interface of %q", port, name)})
			}
		}
	}
	return issues
}

func declaresInterface(c Component, iface string) bool {
	var declared []string
	switch t := c.(type) {
	case Source:
		declared = t.Outputs
	case Sink:
		declared = t.Inputs
	case Transformer:
		declared = append(append([]string{}, t.Inputs...), t.Outputs...)
	case CHP:
		declared = append(append([]string{}, t.Inputs...), t.Outputs...)
	case Storage:
		declared = append(append([]string{}, t.Inputs...), t.Outputs...)
	default:
		return true
	}
	for _, d := range declared {
		if d == iface {
			return true
		}
	}
	return false
}
