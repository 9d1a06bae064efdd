package codec

import (
	"strconv"
	"strings"
)

// path locates a node for encode errors. Paths are only rendered on
// failure, so each level is a small link to its parent.
type path struct {
	parent *path
	field  string
	index  int
}

func (p *path) Field(name string) *path {
	return &path{parent: p, field: name, index: -1}
}

func (p *path) Index(i int) *path {
	return &path{parent: p, index: i}
}

func (p *path) String() string {
	var parts []string
	for q := p; q != nil; q = q.parent {
		if q.index >= 0 {
			parts = append(parts, "["+strconv.Itoa(q.index)+"]")
			continue
		}
		parts = append(parts, "."+q.field)
	}
	var b strings.Builder
	b.WriteString("$")
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteString(parts[i])
	}
	return b.String()
}
