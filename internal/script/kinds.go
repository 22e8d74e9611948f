package script

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/san-kum/dynarray/internal/dynarray"
)

// handle erases the element type of a dynarray.Array so that scripts can
// hold arrays of different kinds side by side.
type handle interface {
	Kind() string
	Capacity() int
	NumUsed() int
	String() string
	Slots() []string
	Set(i int, lit string) error
	Get(i int) string
	Push(lit string) error
	Front() string
	Clone() handle
	Assign(src handle) error
	SetDiagnostics(w io.Writer)
}

type typed[T any] struct {
	kind  string
	arr   *dynarray.Array[T]
	parse func(string) (T, error)
}

func (h *typed[T]) Kind() string { return h.kind }
func (h *typed[T]) Capacity() int { return h.arr.Capacity() }
func (h *typed[T]) NumUsed() int { return h.arr.NumUsed() }
func (h *typed[T]) String() string { return h.arr.String() }

func (h *typed[T]) SetDiagnostics(w io.Writer) { h.arr.SetDiagnostics(w) }

func (h *typed[T]) Slots() []string {
	slots := h.arr.Slots()
	out := make([]string, len(slots))
	for i, v := range slots {
		out[i] = fmt.Sprint(v)
	}
	return out
}

func (h *typed[T]) Set(i int, lit string) error {
	if i < 0 {
		return &dynarray.IndexError{Index: i, NumUsed: h.arr.NumUsed(), Wrapped: dynarray.ErrNegativeIndex}
	}
	v, err := h.parse(lit)
	if err != nil {
		return fmt.Errorf("parse %s %q: %w", h.kind, lit, err)
	}
	h.arr.Set(i, v)
	return nil
}

func (h *typed[T]) Get(i int) string {
	return fmt.Sprint(h.arr.At(i))
}

func (h *typed[T]) Push(lit string) error {
	v, err := h.parse(lit)
	if err != nil {
		return fmt.Errorf("parse %s %q: %w", h.kind, lit, err)
	}
	h.arr.Push(v)
	return nil
}

func (h *typed[T]) Front() string {
	return fmt.Sprint(h.arr.Front())
}

func (h *typed[T]) Clone() handle {
	return &typed[T]{kind: h.kind, arr: h.arr.Clone(), parse: h.parse}
}

func (h *typed[T]) Assign(src handle) error {
	other, ok := src.(*typed[T])
	if !ok || other.kind != h.kind {
		return fmt.Errorf("%w: cannot assign %s array to %s array", ErrKindMismatch, src.Kind(), h.kind)
	}
	h.arr.Assign(other.arr)
	return nil
}

// kindSpec builds handles for one element kind.
type kindSpec struct {
	sized func(size int) handle
	from  func(lits []string, count int) (handle, error)
}

func newKind[T any](name string, parse func(string) (T, error)) kindSpec {
	return kindSpec{
		sized: func(size int) handle {
			return &typed[T]{kind: name, arr: dynarray.NewSized[T](size), parse: parse}
		},
		from: func(lits []string, count int) (handle, error) {
			if count <= 0 || count > len(lits) {
				return nil, fmt.Errorf("%w: %d (source has %d)", dynarray.ErrBadCount, count, len(lits))
			}
			vals := make([]T, count)
			for i := range vals {
				v, err := parse(lits[i])
				if err != nil {
					return nil, fmt.Errorf("parse %s %q: %w", name, lits[i], err)
				}
				vals[i] = v
			}
			return &typed[T]{kind: name, arr: dynarray.FromSlice(vals, count), parse: parse}, nil
		},
	}
}

var kinds = map[string]kindSpec{
	"int": newKind("int", strconv.Atoi),
	"float": newKind("float", func(s string) (float32, error) {
		f, err := strconv.ParseFloat(s, 32)
		return float32(f), err
	}),
	"double": newKind("double", func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	}),
	"string": newKind("string", func(s string) (string, error) {
		return s, nil
	}),
}

func lookupKind(name string) (kindSpec, error) {
	k, ok := kinds[name]
	if !ok {
		return kindSpec{}, fmt.Errorf("%w: %s (available: %v)", ErrUnknownKind, name, Kinds())
	}
	return k, nil
}

// Kinds lists the element kinds a script may declare.
func Kinds() []string {
	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
