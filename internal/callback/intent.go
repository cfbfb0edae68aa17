package callback

import (
	"maps"
	"sort"
	"strings"
)

// Intent describes what invoking a callback does in the owning process.
type Intent struct {
	Action    string
	Package   string
	Component string
	Data      string
	Extras    map[string]string
}

func (in Intent) empty() bool {
	return strings.TrimSpace(in.Action) == "" && strings.TrimSpace(in.Component) == ""
}

func (in Intent) clone() Intent {
	out := in
	if len(in.Extras) > 0 {
		out.Extras = maps.Clone(in.Extras)
	} else {
		out.Extras = nil
	}
	return out
}

func (in Intent) extraKeys() []string {
	keys := make([]string, 0, len(in.Extras))
	for k := range in.Extras {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (in Intent) Equal(other Intent) bool {
	if in.Action != other.Action ||
		in.Package != other.Package ||
		in.Component != other.Component ||
		in.Data != other.Data ||
		len(in.Extras) != len(other.Extras) {
		return false
	}
	for k, v := range in.Extras {
		if ov, ok := other.Extras[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

func (in Intent) String() string {
	var b strings.Builder
	b.WriteString("Intent {")
	if in.Action != "" {
		b.WriteString(" act=" + in.Action)
	}
	if in.Package != "" {
		b.WriteString(" pkg=" + in.Package)
	}
	if in.Component != "" {
		b.WriteString(" cmp=" + in.Component)
	}
	if in.Data != "" {
		b.WriteString(" dat=" + in.Data)
	}
	if len(in.Extras) > 0 {
		b.WriteString(" (has extras)")
	}
	b.WriteString(" }")
	return b.String()
}
