package object

import (
	"errors"
	"fmt"
)

// DefaultMaxDepth bounds the nesting accepted from decoders.
const DefaultMaxDepth = 512

var ErrTooDeep = errors.New("object nested too deeply")

// Children appends the direct children of o to dst in stored order: the
// variant, then the payload, elements, entries (key before value) and
// present field values.
func Children(dst []*Object, o *Object) []*Object {
	if o.Variant != nil {
		dst = append(dst, o.Variant)
	}
	if o.Value != nil {
		dst = append(dst, o.Value)
	}
	dst = append(dst, o.Elems...)
	for _, e := range o.Entries {
		dst = append(dst, e.Key)
		if e.Value != nil {
			dst = append(dst, e.Value)
		}
	}
	for _, f := range o.Fields {
		if f.Value != nil {
			dst = append(dst, f.Value)
		}
	}
	return dst
}

// Walk calls f for o and its descendants in depth first pre-order, without
// recursion. Walk stops as soon as f returns false.
func Walk(o *Object, f func(*Object) bool) {
	if o == nil {
		return
	}
	stack := []*Object{o}
	var kids []*Object
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !f(n) {
			return
		}
		kids = Children(kids[:0], n)
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
}

// Depth returns the number of levels in o; a leaf has depth 1. It does not
// recurse.
func Depth(o *Object) int {
	if o == nil {
		return 0
	}
	type frame struct {
		n     *Object
		depth int
	}
	res := 0
	stack := []frame{{o, 1}}
	var kids []*Object
	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		res = max(res, fr.depth)
		kids = Children(kids[:0], fr.n)
		for _, k := range kids {
			stack = append(stack, frame{k, fr.depth + 1})
		}
	}
	return res
}

// CheckDepth returns an error wrapping ErrTooDeep if o has more than limit
// levels, or DefaultMaxDepth when limit is not positive. It does not
// recurse, so it is safe on arbitrarily deep trees.
func CheckDepth(o *Object, limit int) error {
	if limit <= 0 {
		limit = DefaultMaxDepth
	}
	if d := Depth(o); d > limit {
		return fmt.Errorf("%w: depth %d exceeds %d", ErrTooDeep, d, limit)
	}
	return nil
}

// Count returns the number of nodes in o.
func Count(o *Object) int {
	n := 0
	Walk(o, func(*Object) bool {
		n++
		return true
	})
	return n
}
