package scene

import (
	"fmt"
	"slices"

	"github.com/dshills/tessera/internal/engine/item"
)

// ZOp is a stacking-order operation.
type ZOp string

// Stacking operations.
const (
	ZTop      ZOp = "top"
	ZBottom   ZOp = "bottom"
	ZIncrease ZOp = "inc"
	ZDecrease ZOp = "dec"
)

// ParseZOp validates a stacking operation name.
func ParseZOp(s string) (ZOp, error) {
	switch op := ZOp(s); op {
	case ZTop, ZBottom, ZIncrease, ZDecrease:
		return op, nil
	}
	return "", fmt.Errorf("unknown z-index op %q", s)
}

// ChangeZ returns a reordered copy of zlist with ids moved according to
// op. The result is always a permutation of zlist. ids absent from zlist
// are ignored. Inc and dec shift each selected id one step past its
// unselected neighbour; a selected id already at the boundary stays put.
func ChangeZ(zlist []item.ID, ids []item.ID, op ZOp) []item.ID {
	selected := make(map[item.ID]bool, len(ids))
	for _, id := range ids {
		selected[id] = true
	}
	out := slices.Clone(zlist)
	isSel := func(id item.ID) bool { return selected[id] }

	switch op {
	case ZTop:
		rest := slices.DeleteFunc(slices.Clone(zlist), isSel)
		picked := slices.DeleteFunc(slices.Clone(zlist), func(id item.ID) bool { return !selected[id] })
		out = append(rest, picked...)
	case ZBottom:
		rest := slices.DeleteFunc(slices.Clone(zlist), isSel)
		picked := slices.DeleteFunc(slices.Clone(zlist), func(id item.ID) bool { return !selected[id] })
		out = append(picked, rest...)
	case ZIncrease:
		for i := len(out) - 2; i >= 0; i-- {
			if selected[out[i]] && !selected[out[i+1]] {
				out[i], out[i+1] = out[i+1], out[i]
			}
		}
	case ZDecrease:
		for i := 1; i < len(out); i++ {
			if selected[out[i]] && !selected[out[i-1]] {
				out[i], out[i-1] = out[i-1], out[i]
			}
		}
	}
	return out
}
