package dynarray

import (
	"fmt"
	"io"
	"strings"
)

// String renders the used prefix as "[ a, b, c ]". An empty array renders
// as "[  ]".
func (a *Array[T]) String() string {
	var b strings.Builder
	a.WriteTo(&b)
	return b.String()
}

// WriteTo writes the String form of a to w.
func (a *Array[T]) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	io.WriteString(cw, "[ ")
	for i := 0; i < a.numUsed; i++ {
		if i != 0 {
			io.WriteString(cw, ", ")
		}
		fmt.Fprint(cw, a.slots[i])
	}
	io.WriteString(cw, " ]")
	return cw.n, cw.err
}

// countingWriter stops writing after the first error.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}
