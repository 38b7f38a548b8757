package layout

import (
	"fmt"
	"sort"
)

// Built-in presets for new entries.
const (
	PresetSingle  = "single"  // one leaf showing the first section
	PresetColumns = "columns" // one column per section
	PresetStack   = "stack"   // one row per section
	PresetSidebar = "sidebar" // fixed-width first section beside the rest
)

var presets = map[string]func(sections int) *Node{
	PresetSingle: func(int) *Node { return Default() },
	PresetColumns: func(sections int) *Node {
		return New("columns").Horizontal().Framed(BorderRounded).With(perSection(sections, BorderPlain)...)
	},
	PresetStack: func(sections int) *Node {
		return New("stack").Framed(BorderRounded).With(perSection(sections, BorderDashed)...)
	},
	PresetSidebar: func(sections int) *Node {
		root := New("sidebar").Horizontal().Framed(BorderRounded)
		root.Children = []*Node{Leaf("side", 0).Sized(Length(28)).Framed(BorderPlain)}
		body := New("body")
		if sections > 1 {
			body = body.With(perSection(sections-1, BorderNone)...)
			for _, c := range body.Children {
				*c.ContentIndex++
			}
		}
		root.Children = append(root.Children, body)
		return root
	},
}

func perSection(n int, border BorderMode) []*Node {
	n = max(n, 1)
	out := make([]*Node, n)
	for i := range out {
		out[i] = Leaf(fmt.Sprintf("section %d", i+1), i).Framed(border)
	}
	return out
}

// PresetNames returns the sorted preset names.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preset builds the named preset for an entry with the given number of
// sections. The empty name selects PresetSingle.
func Preset(name string, sections int) (*Node, error) {
	if name == "" {
		name = PresetSingle
	}
	build, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown layout preset %q (available: %v)", name, PresetNames())
	}
	return build(sections), nil
}
