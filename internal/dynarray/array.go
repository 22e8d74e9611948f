package dynarray

import (
	"fmt"
	"io"
	"os"
)

// MinCapacity is the smallest capacity any Array is created or assigned with.
const MinCapacity = 4

// Diagnostics receives the diagnostic lines of arrays created after it is set.
var Diagnostics io.Writer = os.Stderr

// Array is a growable sequence of T. The first NumUsed slots hold data; the
// rest of the Capacity slots hold the zero value of T.
//
// The zero Array is not usable; create one with New, NewSized or FromSlice.
type Array[T any] struct {
	slots   []T
	numUsed int
	diag    io.Writer
}

// New returns an empty array with MinCapacity slots.
func New[T any]() *Array[T] {
	return NewSized[T](MinCapacity)
}

// NewSized returns an empty array with max(size, MinCapacity) slots.
func NewSized[T any](size int) *Array[T] {
	return &Array[T]{
		slots: make([]T, max(size, MinCapacity)),
		diag:  Diagnostics,
	}
}

// FromSlice returns an array holding the first count elements of src.
// It panics if count is not positive or is larger than len(src).
func FromSlice[T any](src []T, count int) *Array[T] {
	if count <= 0 || count > len(src) {
		panic(fmt.Errorf("%w: %d (source has %d)", ErrBadCount, count, len(src)))
	}
	a := NewSized[T](count)
	copy(a.slots, src[:count])
	a.numUsed = count
	return a
}

// Clone returns a deep copy of a with the same capacity and used count.
func (a *Array[T]) Clone() *Array[T] {
	c := &Array[T]{
		slots:   make([]T, len(a.slots)),
		numUsed: a.numUsed,
		diag:    a.diag,
	}
	copy(c.slots, a.slots[:a.numUsed])
	return c
}

func (a *Array[T]) Capacity() int { return len(a.slots) }

func (a *Array[T]) NumUsed() int { return a.numUsed }

// SetDiagnostics redirects the diagnostic lines written by At and Front.
// A nil writer discards them.
func (a *Array[T]) SetDiagnostics(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	a.diag = w
}

// Assign copies the contents of src into a and takes on src's capacity.
// Slots past the used prefix are reset to the zero value.
func (a *Array[T]) Assign(src *Array[T]) *Array[T] {
	if a == src {
		return a
	}
	if len(a.slots) != len(src.slots) {
		a.grow(len(src.slots))
	}
	a.numUsed = src.numUsed
	copy(a.slots, src.slots[:src.numUsed])
	clear(a.slots[a.numUsed:])
	return a
}

// Ref returns a pointer to slot i, growing the array to exactly i+1 slots
// when i is past the capacity and extending the used count to cover i.
// The pointer is invalidated by any later growth. Ref panics if i < 0.
func (a *Array[T]) Ref(i int) *T {
	if i < 0 {
		panic(&IndexError{Index: i, NumUsed: a.numUsed, Wrapped: ErrNegativeIndex})
	}
	if i >= len(a.slots) {
		a.grow(i + 1)
	}
	if i >= a.numUsed {
		a.numUsed = i + 1
	}
	return &a.slots[i]
}

// Set stores v at slot i with the growth rules of Ref.
func (a *Array[T]) Set(i int, v T) {
	*a.Ref(i) = v
}

// At returns the element at i. Outside the used prefix it writes a
// diagnostic line and returns the zero value.
func (a *Array[T]) At(i int) T {
	v, _ := a.Lookup(i)
	return v
}

// Lookup is At with the miss reported as an *IndexError wrapping
// ErrOutOfRange. The diagnostic line is still written.
func (a *Array[T]) Lookup(i int) (T, error) {
	if i < 0 || i >= a.numUsed {
		var zero T
		fmt.Fprintln(a.diag, MsgOutOfRange)
		return zero, &IndexError{Index: i, NumUsed: a.numUsed, Wrapped: ErrOutOfRange}
	}
	return a.slots[i], nil
}

// Push appends v, growing by a single slot when the array is full.
func (a *Array[T]) Push(v T) *Array[T] {
	if a.numUsed >= len(a.slots) {
		a.grow(len(a.slots) + 1)
	}
	a.slots[a.numUsed] = v
	a.numUsed++
	return a
}

// Front returns the first element, or writes a diagnostic line and returns
// the zero value when nothing is in use.
func (a *Array[T]) Front() T {
	v, _ := a.FrontValue()
	return v
}

// FrontValue is Front with the empty case reported as ErrEmpty.
func (a *Array[T]) FrontValue() (T, error) {
	if a.numUsed == 0 {
		var zero T
		fmt.Fprintln(a.diag, MsgEmpty)
		return zero, ErrEmpty
	}
	return a.slots[0], nil
}

// Values returns a copy of the used prefix.
func (a *Array[T]) Values() []T {
	out := make([]T, a.numUsed)
	copy(out, a.slots)
	return out
}

// Slots returns a copy of every allocated slot, used or not.
func (a *Array[T]) Slots() []T {
	out := make([]T, len(a.slots))
	copy(out, a.slots)
	return out
}

// grow reallocates to exactly newCap slots. Only the used prefix survives;
// whatever sat between numUsed and the old capacity is dropped.
func (a *Array[T]) grow(newCap int) {
	slots := make([]T, newCap)
	n := copy(slots, a.slots[:a.numUsed])
	if n < a.numUsed {
		a.numUsed = n
	}
	a.slots = slots
}
