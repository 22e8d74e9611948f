package script

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/san-kum/dynarray/internal/config"
	"github.com/san-kum/dynarray/internal/dynarray"
)

const atestTranscript = `1) Default Constructor:
   Capacity: 4,  Elements in Use: 0
   Contents: [  ]

2) Array from dataType array:
   Capacity: 5,  Elements in Use: 5
   Contents: [ 10, 20, 30, 40, 50 ]

3) Array from dataType array (under capacity):
   Capacity: 4,  Elements in Use: 3
   Contents: [ 10, 20, 30 ]

4) Copy Constructor:
   Capacity: 4,  Elements in Use: 3
   Contents: [ 10, 20, 30 ]

5) Assignment:
   Capacity: 4,  Elements in Use: 3
   Contents: [ 10, 20, 30 ]

6) New float Array:
   Capacity: 4,  Elements in Use: 4
   Contents: [ 10.1, 20.2, 30.3, 40.4 ]

7) Change the last value using the subscript operator:
   Capacity: 4,  Elements in Use: 4
   Contents: [ 10.1, 20.2, 30.3, 45.5 ]

8) Change a value beyond existing capacity:
   Capacity: 6,  Elements in Use: 6
   Contents: [ 10.1, 20.2, 30.3, 45.5, 0, 65.6 ]

9) Attempt to access a value beyond the capacity:
0
   Capacity: 4,  Elements in Use: 3
   Contents: [ 10.1, 20.2, 30.3 ]

10) Add an item to iList3 with += (under capacity):
   Capacity: 4,  Elements in Use: 4
   Contents: [ 10, 20, 30, 35 ]

11) Add an item to iList3 with += (at capacity):
   Capacity: 5,  Elements in Use: 5
   Contents: [ 10, 20, 30, 35, 45 ]

12: dereference fList1:
10.1
`

func TestRun_Atest(t *testing.T) {
	var out, diag bytes.Buffer
	r := NewRunner(&out, &diag)

	res, err := r.Run(config.GetPreset("atest"))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if out.String() != atestTranscript {
		t.Errorf("transcript mismatch:\n%s", out.String())
	}
	if diag.String() != dynarray.MsgOutOfRange+"\n" {
		t.Errorf("diagnostics = %q", diag.String())
	}

	if len(res.Snapshots) != 13 {
		t.Fatalf("expected 13 snapshots, got %d", len(res.Snapshots))
	}
	if got := res.Snapshots[9].Output; got != "0" {
		t.Errorf("get output = %q, want 0", got)
	}

	expected := map[string]float64{
		"steps":         13,
		"arrays":        7,
		"reallocations": 2,
		"peak_capacity": 6,
		"diagnostics":   1,
	}
	for name, want := range expected {
		if res.Metrics[name] != want {
			t.Errorf("metric %s = %v, want %v", name, res.Metrics[name], want)
		}
	}
}

func TestRun_GrowthTail(t *testing.T) {
	r := NewRunner(nil, nil)
	if _, err := r.Run(config.GetPreset("growth")); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	slots, ok := r.Slots("g")
	if !ok {
		t.Fatal("array g not found")
	}
	if len(slots) != 12 {
		t.Fatalf("expected 12 slots, got %d", len(slots))
	}
	want := []string{"1", "2", "3", "4", "5", "6", "0", "0", "0", "0", "0", "12"}
	for i := range want {
		if slots[i] != want[i] {
			t.Errorf("slot %d = %s, want %s", i, slots[i], want[i])
		}
	}
}

func TestRun_Copies(t *testing.T) {
	var out bytes.Buffer
	r := NewRunner(&out, nil)
	res, err := r.Run(config.GetPreset("copies"))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	byTitle := make(map[string]Snapshot)
	for _, s := range res.Snapshots {
		byTitle[s.Title] = s
	}

	if s := byTitle["Assign large into small"]; s.Capacity != 10 || s.NumUsed != 2 {
		t.Errorf("grow-assign shape %d/%d, want 10/2", s.Capacity, s.NumUsed)
	}
	if s := byTitle["Assign small into large"]; s.Capacity != 4 || s.NumUsed != 0 {
		t.Errorf("shrink-assign shape %d/%d, want 4/0", s.Capacity, s.NumUsed)
	}
	if s := byTitle["Clone keeps shape"]; s.Capacity != 10 || s.Contents != "[ 1, 2 ]" {
		t.Errorf("clone %d %s", s.Capacity, s.Contents)
	}
}

func TestRun_Strings(t *testing.T) {
	var out, diag bytes.Buffer
	r := NewRunner(&out, &diag)
	if _, err := r.Run(config.GetPreset("strings")); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if diag.String() != "Array is empty\nsubscript out of range\n" {
		t.Errorf("diagnostics = %q", diag.String())
	}
	if !strings.Contains(out.String(), "Contents: [ alpha, beta ]") {
		t.Errorf("missing contents in transcript:\n%s", out.String())
	}
	if !strings.HasSuffix(out.String(), "Dereference:\nalpha\n") {
		t.Errorf("unexpected transcript tail:\n%s", out.String())
	}
}

func TestRun_MetricsPerCall(t *testing.T) {
	var diag bytes.Buffer
	r := NewRunner(nil, &diag)

	first, err := r.Run(config.GetPreset("growth"))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	second, err := r.Run(config.GetPreset("strings"))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if got := first.Metrics["reallocations"]; got != 3 {
		t.Errorf("growth reallocations = %v, want 3", got)
	}
	if got := second.Metrics["reallocations"]; got != 0 {
		t.Errorf("strings reallocations = %v, want 0", got)
	}
	if got := second.Metrics["diagnostics"]; got != 2 {
		t.Errorf("strings diagnostics = %v, want 2", got)
	}
}

func TestRun_ReallocationsIgnoreRebind(t *testing.T) {
	tests := []struct {
		name  string
		steps []config.Step
		want  float64
	}{
		{
			"new over existing name",
			[]config.Step{{Op: "new", Array: "a"}, {Op: "new", Array: "a", Size: 10}},
			0,
		},
		{
			"copy over existing name",
			[]config.Step{{Op: "new", Array: "a"}, {Op: "new", Array: "b", Size: 10}, {Op: "copy", Array: "a", Source: "b"}},
			0,
		},
		{
			"assign resizes in place",
			[]config.Step{{Op: "new", Array: "a"}, {Op: "new", Array: "b", Size: 10}, {Op: "assign", Array: "a", Source: "b"}},
			1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewRunner(nil, nil).Run(&config.Config{Name: tt.name, Steps: tt.steps})
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if got := res.Metrics["reallocations"]; got != tt.want {
				t.Errorf("reallocations = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRun_Header(t *testing.T) {
	var out bytes.Buffer
	r := NewRunner(&out, nil)
	_, err := r.Run(&config.Config{Steps: []config.Step{
		{Title: "Empty", Op: "new", Array: "a"},
		{Title: "Again", Header: "-- again --", Op: "new", Array: "b"},
		{Title: "Last", Op: "new", Array: "c"},
	}})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	want := "1) Empty:\n-- again --\n3) Last:\n"
	if out.String() != want {
		t.Errorf("transcript = %q, want %q", out.String(), want)
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name   string
		steps  []config.Step
		target error
	}{
		{
			"unknown op",
			[]config.Step{{Op: "erase", Array: "a"}},
			ErrUnknownOp,
		},
		{
			"unknown kind",
			[]config.Step{{Op: "new", Array: "a", Kind: "complex"}},
			ErrUnknownKind,
		},
		{
			"unknown array",
			[]config.Step{{Op: "push", Array: "missing", Value: "1"}},
			ErrUnknownArray,
		},
		{
			"negative set",
			[]config.Step{{Op: "new", Array: "a"}, {Op: "set", Array: "a", Index: -1, Value: "1"}},
			dynarray.ErrNegativeIndex,
		},
		{
			"zero count",
			[]config.Step{{Op: "from", Array: "a", Values: []config.Literal{"1"}, Count: 0}},
			dynarray.ErrBadCount,
		},
		{
			"count past values",
			[]config.Step{{Op: "from", Array: "a", Values: []config.Literal{"1"}, Count: 2}},
			dynarray.ErrBadCount,
		},
		{
			"kind mismatch",
			[]config.Step{
				{Op: "new", Array: "a", Kind: "int"},
				{Op: "new", Array: "b", Kind: "string"},
				{Op: "assign", Array: "a", Source: "b"},
			},
			ErrKindMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner(nil, nil)
			_, err := r.Run(&config.Config{Name: tt.name, Steps: tt.steps})
			if !errors.Is(err, tt.target) {
				t.Fatalf("error = %v, want %v", err, tt.target)
			}
			var se *StepError
			if !errors.As(err, &se) || se.Step != len(tt.steps) {
				t.Errorf("expected failure at step %d, got %+v", len(tt.steps), se)
			}
		})
	}
}

func TestRun_BadLiteral(t *testing.T) {
	r := NewRunner(nil, nil)
	_, err := r.Run(&config.Config{Steps: []config.Step{
		{Op: "new", Array: "a", Kind: "int"},
		{Op: "push", Array: "a", Value: "ten"},
	}})
	if err == nil || !strings.Contains(err.Error(), `parse int "ten"`) {
		t.Errorf("unexpected error %v", err)
	}
}

func TestRun_PushUsesArrayKind(t *testing.T) {
	r := NewRunner(nil, nil)
	res, err := r.Run(&config.Config{Steps: []config.Step{
		{Op: "new", Array: "a"},
		{Op: "push", Array: "a", Value: "2.5", Kind: "double"},
	}})
	if err == nil {
		t.Fatalf("expected parse error pushing 2.5 into int array, got %+v", res.Snapshots)
	}
}

func TestKinds(t *testing.T) {
	got := Kinds()
	want := []string{"double", "float", "int", "string"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Kinds() = %v, want %v", got, want)
	}
}
