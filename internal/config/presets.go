package config

import "sort"

func lits(vals ...string) []Literal {
	out := make([]Literal, len(vals))
	for i, v := range vals {
		out[i] = Literal(v)
	}
	return out
}

var Presets = map[string]*Config{
	"atest": {
		Name: "atest", Kind: "int",
		Description: "construction, copy, subscript, append and dereference walkthrough",
		Steps: []Step{
			{Title: "Default Constructor", Op: "new", Array: "iList1", Print: true},
			{Title: "Array from dataType array", Op: "from", Array: "iList2", Values: lits("10", "20", "30", "40", "50"), Count: 5, Print: true},
			{Title: "Array from dataType array (under capacity)", Op: "from", Array: "iList3", Values: lits("10", "20", "30", "40", "50"), Count: 3, Print: true},
			{Title: "Copy Constructor", Op: "copy", Array: "iList4", Source: "iList3", Print: true},
			{Title: "Assignment", Op: "assign", Array: "iList5", Source: "iList3", Print: true},
			{Title: "New float Array", Op: "from", Array: "fList1", Kind: "float", Values: lits("10.1", "20.2", "30.3", "40.4"), Count: 4, Print: true},
			{Title: "Change the last value using the subscript operator", Op: "set", Array: "fList1", Index: 3, Value: "45.5", Print: true},
			{Title: "Change a value beyond existing capacity", Op: "set", Array: "fList1", Index: 5, Value: "65.6", Print: true},
			{Op: "from", Array: "fList2", Kind: "float", Values: lits("10.1", "20.2", "30.3", "40.4"), Count: 3},
			{Title: "Attempt to access a value beyond the capacity", Op: "get", Array: "fList2", Index: 3, Print: true},
			{Title: "Add an item to iList3 with += (under capacity)", Op: "push", Array: "iList3", Value: "35", Print: true},
			{Title: "Add an item to iList3 with += (at capacity)", Op: "push", Array: "iList3", Value: "45", Print: true},
			{Title: "dereference fList1", Header: "12: dereference fList1:", Op: "front", Array: "fList1"},
		},
	},
	"growth": {
		Name: "growth", Kind: "int",
		Description: "append past capacity one slot at a time, then jump with a far subscript",
		Steps: []Step{
			{Title: "Empty", Op: "new", Array: "g", Print: true},
			{Op: "push", Array: "g", Value: "1"},
			{Op: "push", Array: "g", Value: "2"},
			{Op: "push", Array: "g", Value: "3"},
			{Title: "Full", Op: "push", Array: "g", Value: "4", Print: true},
			{Title: "Push at capacity", Op: "push", Array: "g", Value: "5", Print: true},
			{Title: "Push again", Op: "push", Array: "g", Value: "6", Print: true},
			{Title: "Subscript far past capacity", Op: "set", Array: "g", Index: 11, Value: "12", Print: true},
		},
	},
	"copies": {
		Name: "copies", Kind: "int",
		Description: "assignment takes on the source capacity in both directions",
		Steps: []Step{
			{Title: "Large source", Op: "new", Array: "big", Size: 10, Print: true},
			{Op: "push", Array: "big", Value: "1"},
			{Op: "push", Array: "big", Value: "2"},
			{Title: "Small target", Op: "from", Array: "small", Values: lits("7", "8", "9"), Count: 3, Print: true},
			{Title: "Assign large into small", Op: "assign", Array: "small", Source: "big", Print: true},
			{Title: "Fresh small array", Op: "new", Array: "tiny", Print: true},
			{Title: "Assign small into large", Op: "assign", Array: "big", Source: "tiny", Print: true},
			{Title: "Clone keeps shape", Op: "copy", Array: "twin", Source: "small", Print: true},
		},
	},
	"strings": {
		Name: "strings", Kind: "string",
		Description: "string elements and the empty-array diagnostics",
		Steps: []Step{
			{Title: "Empty string array", Op: "new", Array: "words", Print: true},
			{Title: "Dereference empty", Op: "front", Array: "words"},
			{Title: "Read past the end", Op: "get", Array: "words", Index: 0},
			{Op: "push", Array: "words", Value: "alpha"},
			{Op: "push", Array: "words", Value: "beta"},
			{Title: "After two pushes", Op: "print", Array: "words"},
			{Title: "Dereference", Op: "front", Array: "words"},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Steps = append([]Step(nil), p.Steps...)
	cfg.applyDefaults()
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
