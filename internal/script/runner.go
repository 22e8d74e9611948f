package script

import (
	"errors"
	"fmt"
	"io"

	"github.com/san-kum/dynarray/internal/config"
)

var (
	ErrUnknownOp    = errors.New("script: unknown op")
	ErrUnknownKind  = errors.New("script: unknown kind")
	ErrUnknownArray = errors.New("script: unknown array")
	ErrKindMismatch = errors.New("script: kind mismatch")
)

// StepError wraps an error with the step that produced it.
type StepError struct {
	Step    int
	Op      string
	Array   string
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s %s): %v", e.Step, e.Op, e.Array, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}

// Snapshot is the state of the step's target array once the step ran.
type Snapshot struct {
	Step     int    `json:"step"`
	Title    string `json:"title,omitempty"`
	Op       string `json:"op"`
	Array    string `json:"array"`
	Kind     string `json:"kind"`
	Capacity int    `json:"capacity"`
	NumUsed  int    `json:"num_used"`
	Contents string `json:"contents"`
	Output   string `json:"output,omitempty"`
}

type Result struct {
	Name      string             `json:"name"`
	Snapshots []Snapshot         `json:"snapshots"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Runner executes scripts, writing the transcript to out and the arrays'
// diagnostic lines to diag.
type Runner struct {
	out    io.Writer
	diag   *lineCounter
	arrays map[string]handle
}

func NewRunner(out, diag io.Writer) *Runner {
	if out == nil {
		out = io.Discard
	}
	if diag == nil {
		diag = io.Discard
	}
	return &Runner{
		out:    out,
		diag:   &lineCounter{w: diag},
		arrays: make(map[string]handle),
	}
}

// Run executes every step of cfg in order and stops at the first error.
// Arrays persist across calls on the same Runner; metrics cover this call
// only.
func (r *Runner) Run(cfg *config.Config) (*Result, error) {
	res := &Result{Name: cfg.Name}
	numbered := 0
	realloc := 0
	diagStart := r.diag.lines

	for i, step := range cfg.Steps {
		if step.Title != "" {
			numbered++
		}
		switch {
		case step.Header != "":
			fmt.Fprintln(r.out, step.Header)
		case step.Title != "":
			fmt.Fprintf(r.out, "%d) %s:\n", numbered, step.Title)
		}

		before := -1
		if h, ok := r.arrays[step.Array]; ok && resizesInPlace(step.Op) {
			before = h.Capacity()
		}

		output, err := r.exec(step, defaultKind(cfg, step))
		if err != nil {
			return res, &StepError{Step: i + 1, Op: step.Op, Array: step.Array, Wrapped: err}
		}

		h := r.arrays[step.Array]
		if before >= 0 && before != h.Capacity() {
			realloc++
		}
		if step.Print || step.Op == "print" {
			r.printArray(h)
		}

		res.Snapshots = append(res.Snapshots, Snapshot{
			Step:     i + 1,
			Title:    step.Title,
			Op:       step.Op,
			Array:    step.Array,
			Kind:     h.Kind(),
			Capacity: h.Capacity(),
			NumUsed:  h.NumUsed(),
			Contents: h.String(),
			Output:   output,
		})
	}

	res.Metrics = summarize(res.Snapshots, len(r.arrays), realloc, r.diag.lines-diagStart)
	return res, nil
}

// resizesInPlace reports whether op can change the capacity of the array it
// targets. new, from and copy rebind the name to a different array instead.
func resizesInPlace(op string) bool {
	switch op {
	case "set", "push", "assign":
		return true
	}
	return false
}

func defaultKind(cfg *config.Config, step config.Step) string {
	switch {
	case step.Kind != "":
		return step.Kind
	case cfg.Kind != "":
		return cfg.Kind
	default:
		return config.DefaultKind
	}
}

func (r *Runner) exec(step config.Step, kind string) (string, error) {
	switch step.Op {
	case "new":
		k, err := lookupKind(kind)
		if err != nil {
			return "", err
		}
		r.bind(step.Array, k.sized(step.Size))

	case "from":
		k, err := lookupKind(kind)
		if err != nil {
			return "", err
		}
		h, err := k.from(step.Literals(), step.Count)
		if err != nil {
			return "", err
		}
		r.bind(step.Array, h)

	case "copy":
		src, err := r.lookup(step.Source)
		if err != nil {
			return "", err
		}
		r.bind(step.Array, src.Clone())

	case "assign":
		src, err := r.lookup(step.Source)
		if err != nil {
			return "", err
		}
		dst, ok := r.arrays[step.Array]
		if !ok {
			k, err := lookupKind(src.Kind())
			if err != nil {
				return "", err
			}
			dst = k.sized(0)
			r.bind(step.Array, dst)
		}
		return "", dst.Assign(src)

	case "set":
		h, err := r.lookup(step.Array)
		if err != nil {
			return "", err
		}
		return "", h.Set(step.Index, string(step.Value))

	case "push":
		h, err := r.lookup(step.Array)
		if err != nil {
			return "", err
		}
		return "", h.Push(string(step.Value))

	case "get":
		h, err := r.lookup(step.Array)
		if err != nil {
			return "", err
		}
		v := h.Get(step.Index)
		fmt.Fprintln(r.out, v)
		return v, nil

	case "front":
		h, err := r.lookup(step.Array)
		if err != nil {
			return "", err
		}
		v := h.Front()
		fmt.Fprintln(r.out, v)
		return v, nil

	case "print":
		_, err := r.lookup(step.Array)
		return "", err

	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOp, step.Op)
	}
	return "", nil
}

func (r *Runner) bind(name string, h handle) {
	h.SetDiagnostics(r.diag)
	r.arrays[name] = h
}

func (r *Runner) lookup(name string) (handle, error) {
	h, ok := r.arrays[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownArray, name)
	}
	return h, nil
}

func (r *Runner) printArray(h handle) {
	fmt.Fprintf(r.out, "   Capacity: %d,  Elements in Use: %d\n", h.Capacity(), h.NumUsed())
	fmt.Fprintf(r.out, "   Contents: %s\n\n", h.String())
}

// Slots returns every slot of the named array rendered as text.
func (r *Runner) Slots(name string) ([]string, bool) {
	h, ok := r.arrays[name]
	if !ok {
		return nil, false
	}
	return h.Slots(), true
}

// Names lists the arrays created so far.
func (r *Runner) Names() []string {
	names := make([]string, 0, len(r.arrays))
	for name := range r.arrays {
		names = append(names, name)
	}
	return names
}

type lineCounter struct {
	w     io.Writer
	lines int
}

func (c *lineCounter) Write(p []byte) (int, error) {
	for _, b := range p {
		if b == '\n' {
			c.lines++
		}
	}
	return c.w.Write(p)
}
