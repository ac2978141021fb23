package core

import (
	"github.com/ZanzyTHEbar/errbuilder-go"

	"asset-deps/internal/types"
)

// PartialOrderSort reorders items so that every pair the comparator orders
// ends up in that order, while unordered pairs keep their input order. At
// each step it emits the first remaining item that no other remaining item
// has to precede.
//
// A comparator whose judgments form a cycle leaves no item eligible; the sort
// then fails with CodeFailedPrecondition instead of picking an arbitrary
// order.
func PartialOrderSort[T any](items []T, compare func(a T, b T) (types.Order, error)) ([]T, error) {
	remaining := append([]T(nil), items...)
	out := make([]T, 0, len(items))
	for len(remaining) > 0 {
		picked := -1
		for idx := range remaining {
			blocked, err := isBlocked(idx, remaining, compare)
			if err != nil {
				return nil, err
			}
			if !blocked {
				picked = idx
				break
			}
		}
		if picked < 0 {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("partial order contains a cycle")
		}
		out = append(out, remaining[picked])
		remaining = append(remaining[:picked], remaining[picked+1:]...)
	}
	return out, nil
}

func isBlocked[T any](idx int, remaining []T, compare func(a T, b T) (types.Order, error)) (bool, error) {
	for other := range remaining {
		if other == idx {
			continue
		}
		order, err := compare(remaining[idx], remaining[other])
		if err != nil {
			return false, err
		}
		if order == types.OrderAfter {
			return true, nil
		}
		order, err = compare(remaining[other], remaining[idx])
		if err != nil {
			return false, err
		}
		if order == types.OrderBefore {
			return true, nil
		}
	}
	return false, nil
}
