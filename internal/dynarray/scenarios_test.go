package dynarray_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/dynarray/internal/dynarray"
)

var _ = Describe("Array", func() {
	var diag *bytes.Buffer

	BeforeEach(func() {
		diag = &bytes.Buffer{}
	})

	Describe("construction", func() {
		It("defaults to four empty slots", func() {
			a := dynarray.New[int]()
			Expect(a.Capacity()).To(Equal(4))
			Expect(a.NumUsed()).To(BeZero())
			Expect(a.String()).To(Equal("[  ]"))
		})

		DescribeTable("from a source slice",
			func(count, capacity int, display string) {
				a := dynarray.FromSlice([]int{10, 20, 30, 40, 50}, count)
				Expect(a.Capacity()).To(Equal(capacity))
				Expect(a.NumUsed()).To(Equal(count))
				Expect(a.String()).To(Equal(display))
			},
			Entry("exact fit", 5, 5, "[ 10, 20, 30, 40, 50 ]"),
			Entry("under capacity", 3, 4, "[ 10, 20, 30 ]"),
		)

		It("never goes below the capacity floor", func() {
			for size := -2; size < 8; size++ {
				Expect(dynarray.NewSized[int](size).Capacity()).To(BeNumerically(">=", dynarray.MinCapacity))
			}
		})

		It("rejects a non-positive count", func() {
			Expect(func() { dynarray.FromSlice([]int{1}, 0) }).To(PanicWith(MatchError(dynarray.ErrBadCount)))
		})
	})

	Describe("copies", func() {
		It("keeps a clone independent of its source", func() {
			src := dynarray.FromSlice([]int{10, 20, 30}, 3)
			c := src.Clone()
			c.Set(1, 0)
			c.Push(99)
			Expect(src.Values()).To(Equal([]int{10, 20, 30}))
		})

		It("keeps an assigned copy independent of its source", func() {
			src := dynarray.FromSlice([]int{10, 20, 30}, 3)
			dst := dynarray.New[int]().Assign(src)
			dst.Set(0, -1)
			Expect(src.At(0)).To(Equal(10))
			Expect(dst.Slots()).To(Equal([]int{-1, 20, 30, 0}))
		})
	})

	Describe("mutable access", func() {
		It("grows past the capacity to exactly index+1", func() {
			a := dynarray.FromSlice([]float32{10.1, 20.2, 30.3, 40.4}, 4)
			a.Set(3, 45.5)
			a.Set(5, 65.6)
			Expect(a.Capacity()).To(Equal(6))
			Expect(a.NumUsed()).To(Equal(6))
			Expect(a.Slots()[4]).To(BeZero())
			Expect(a.Slots()[5]).To(Equal(float32(65.6)))
			Expect(a.String()).To(Equal("[ 10.1, 20.2, 30.3, 45.5, 0, 65.6 ]"))
		})

		It("panics on a negative index", func() {
			a := dynarray.New[int]()
			Expect(func() { a.Ref(-1) }).To(PanicWith(MatchError(dynarray.ErrNegativeIndex)))
		})
	})

	Describe("read-only access", func() {
		It("reports a subscript past the used prefix", func() {
			a := dynarray.FromSlice([]float32{10.1, 20.2, 30.3}, 3)
			a.SetDiagnostics(diag)
			Expect(a.At(3)).To(BeZero())
			Expect(diag.String()).To(Equal("subscript out of range\n"))
			Expect(a.Capacity()).To(Equal(4))
			Expect(a.NumUsed()).To(Equal(3))
		})
	})

	Describe("push", func() {
		It("grows by exactly one slot at capacity", func() {
			a := dynarray.FromSlice([]int{10, 20, 30}, 3)
			a.Push(35).Push(45)
			Expect(a.Capacity()).To(Equal(5))
			Expect(a.NumUsed()).To(Equal(5))
			Expect(a.At(4)).To(Equal(45))
			Expect(a.String()).To(Equal("[ 10, 20, 30, 35, 45 ]"))
		})
	})

	Describe("front", func() {
		It("returns the first element", func() {
			a := dynarray.FromSlice([]float32{45.5, 1}, 2)
			Expect(a.Front()).To(Equal(float32(45.5)))
		})

		It("reports an empty array", func() {
			a := dynarray.New[int]()
			a.SetDiagnostics(diag)
			Expect(a.Front()).To(BeZero())
			Expect(diag.String()).To(Equal("Array is empty\n"))
		})
	})
})
