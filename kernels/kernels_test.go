package kernels

import (
	"bytes"
	"testing"
)

// fill writes a position-dependent pattern so off-by-one copies and swapped
// halves are guaranteed to surface.
func fill(b []byte, seed byte) {
	for i := range b {
		b[i] = byte(i)*31 + seed
	}
}

// TestAllKernelsAllSizes runs every registered kernel over every length from
// 0 through 129 plus a spread of larger odd sizes, at several misaligned
// offsets, and compares against the straightforward reference.
func TestAllKernelsAllSizes(t *testing.T) {
	sizes := make([]int, 0, 140)
	for n := 0; n <= 129; n++ {
		sizes = append(sizes, n)
	}
	sizes = append(sizes, 255, 257, 1023, 4097, 30001, 65537)

	for _, k := range Registry() {
		k := k
		t.Run(k.Name, func(t *testing.T) {
			for _, n := range sizes {
				for _, off := range []int{0, 1, 3, 7, 8, 15} {
					src := make([]byte, n+off+16)
					dst := make([]byte, n+off+16)
					want := make([]byte, n)
					fill(src, 5)
					copy(want, src[off:off+n])

					if got := k.Fn(dst[off:off+n], src[off:off+n]); got != n {
						t.Fatalf("n=%d off=%d: returned %d", n, off, got)
					}
					if !bytes.Equal(dst[off:off+n], want) {
						t.Fatalf("n=%d off=%d: content mismatch", n, off)
					}
					// Bytes around the destination window must be untouched.
					for i := 0; i < off; i++ {
						if dst[i] != 0 {
							t.Fatalf("n=%d off=%d: wrote before window", n, off)
						}
					}
					for i := off + n; i < len(dst); i++ {
						if dst[i] != 0 {
							t.Fatalf("n=%d off=%d: wrote past window", n, off)
						}
					}
				}
			}
		})
	}
}

// TestKernelShortDestination confirms kernels honor min(len(dst), len(src))
// in both directions.
func TestKernelShortDestination(t *testing.T) {
	src := make([]byte, 100)
	fill(src, 9)
	for _, k := range Registry() {
		dst := make([]byte, 60)
		if got := k.Fn(dst, src); got != 60 {
			t.Errorf("%s: short dst copied %d, want 60", k.Name, got)
		}
		if !bytes.Equal(dst, src[:60]) {
			t.Errorf("%s: short dst content mismatch", k.Name)
		}
		big := make([]byte, 200)
		if got := k.Fn(big, src); got != 100 {
			t.Errorf("%s: short src copied %d, want 100", k.Name, got)
		}
	}
}

// TestRegistryShape pins down the structural guarantees the tuner relies on:
// non-empty, baseline first, unique tags, stable order across calls.
func TestRegistryShape(t *testing.T) {
	ks := Registry()
	if len(ks) == 0 {
		t.Fatal("empty registry")
	}
	if ks[0].Tag != 1 || ks[0].Name != "runtime" {
		t.Fatalf("registry[0] = %s (tag %d), want baseline runtime kernel", ks[0].Name, ks[0].Tag)
	}
	seen := map[uint64]bool{}
	for _, k := range ks {
		if seen[k.Tag] {
			t.Fatalf("duplicate tag %d", k.Tag)
		}
		seen[k.Tag] = true
		if k.Fn == nil {
			t.Fatalf("kernel %s has nil Fn", k.Name)
		}
	}
	again := Registry()
	if len(again) != len(ks) {
		t.Fatal("registry size changed between calls")
	}
	for i := range ks {
		if again[i].Tag != ks[i].Tag {
			t.Fatal("registry order changed between calls")
		}
	}
}

// TestByTag resolves every registered tag and rejects an unknown one.
func TestByTag(t *testing.T) {
	for _, k := range Registry() {
		got, ok := ByTag(k.Tag)
		if !ok || got.Name != k.Name {
			t.Errorf("ByTag(%d) = %q, %v", k.Tag, got.Name, ok)
		}
	}
	if _, ok := ByTag(9999); ok {
		t.Error("ByTag(9999) unexpectedly resolved")
	}
}

// TestKernelZeroAllocation copies through every kernel under the allocation
// counter; the copy path must not touch the heap.
func TestKernelZeroAllocation(t *testing.T) {
	src := make([]byte, 64<<10)
	dst := make([]byte, 64<<10)
	fill(src, 1)
	for _, k := range Registry() {
		k := k
		allocs := testing.AllocsPerRun(10, func() {
			k.Fn(dst, src)
		})
		if allocs != 0 {
			t.Errorf("%s allocated: %f allocs/op", k.Name, allocs)
		}
	}
}
