package es

import "strings"

// Uid is the structural identity of a component. Only Name carries
// identity; two components are the same node exactly when their rendered
// Uids (the Name) are equal. The remaining fields are descriptive metadata
// for grouping and visualization. Name uniqueness inside one System is not
// enforced here.
type Uid struct {
	Name      string
	Latitude  float64
	Longitude float64
	Region    string
	Sector    string
	Carrier   string
	Component string
	NodeType  string
}

// String renders the Uid as its Name, the concise graph-node label.
func (u Uid) String() string {
	return u.Name
}

// Edge is one directed commodity flow between two rendered Uids.
type Edge struct {
	Source string
	Target string
}

// SplitPort splits a fully qualified port string "<component>.<interface>"
// on the first dot. The second return is empty if no dot is present.
func SplitPort(port string) (component, iface string) {
	i := strings.Index(port, ".")
	if i < 0 {
		return port, ""
	}
	return port[:i], port[i+1:]
}

// JoinPort renders a component/interface pair as a fully qualified port
// string.
func JoinPort(component, iface string) string {
	return component + "." + iface
}

// rename rewrites a component name as prefix+sep+name+sep+suffix, omitting
// the separator next to an empty prefix or suffix.
func rename(name, prefix, separator, suffix string) string {
	out := name
	if prefix != "" {
		out = prefix + separator + out
	}
	if suffix != "" {
		out = out + separator + suffix
	}
	return out
}
