package internal

import (
	"iter"
	"slices"
)

// IterSeq2Concat concatenates multiple dual-return iterators into a single iterator sequence.
func IterSeq2Concat[T1 any, T2 any](seqs ...iter.Seq2[T1, T2]) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		for _, seq := range seqs {
			for val1, val2 := range seq {
				if !yield(val1, val2) {
					return // Stop if the consumer stops
				}
			}
		}
	}
}

// Permutations returns an iterator over every ordering of values, in
// Heap's order. Each yielded slice is a fresh copy.
func Permutations[T any](values []T) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		if len(values) == 0 {
			return
		}

		work := slices.Clone(values)

		var generate func(k int) bool
		generate = func(k int) bool {
			if k == 1 {
				return yield(slices.Clone(work))
			}

			if !generate(k - 1) {
				return false
			}

			for i := 0; i < k-1; i++ {
				if k%2 == 0 {
					work[i], work[k-1] = work[k-1], work[i]
				} else {
					work[0], work[k-1] = work[k-1], work[0]
				}
				if !generate(k - 1) {
					return false
				}
			}

			return true
		}

		generate(len(work))
	}
}
