// Package dynarray provides a generic resizable array that keeps its
// allocated capacity separate from the number of slots in use.
//
//   - [Array]: the container, created with [New], [NewSized] or [FromSlice]
//   - [Array.Ref] and [Array.Set]: mutable access that grows on demand
//   - [Array.At] and [Array.Lookup]: read-only access that never grows
//   - [Array.Push]: append, growing by exactly one slot when full
//
// # Errors
//
// Contract violations (a negative mutable index, a non-positive source
// count) panic with an error wrapping [ErrNegativeIndex] or [ErrBadCount].
// Read-only misses write a single diagnostic line to the array's
// diagnostics writer and return the zero value of the element type.
//
// # Example
//
//	a := dynarray.FromSlice([]int{10, 20, 30}, 3)
//	a.Push(35).Push(45)
//	fmt.Println(a) // [ 10, 20, 30, 35, 45 ]
//
// # Thread Safety
//
// Arrays are NOT safe for concurrent use.
package dynarray
