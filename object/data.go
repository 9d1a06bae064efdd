package object

// Buffer holds decoder input that string and bytes leaves may borrow from.
// A Buffer is released once the tree has been detached; reading a leaf that
// still borrows from a released buffer panics.
type Buffer struct {
	b        []byte
	released bool
}

// NewBuffer wraps b. The caller must not modify b while leaves borrow from
// it.
func NewBuffer(b []byte) *Buffer {
	return &Buffer{b: b}
}

// Bytes returns the buffered input.
func (b *Buffer) Bytes() []byte {
	return b.b
}

func (b *Buffer) Len() int {
	return len(b.b)
}

// Released reports whether Release has been called.
func (b *Buffer) Released() bool {
	return b.released
}

// Release zeroes and drops the underlying input.
func (b *Buffer) Release() {
	clear(b.b)
	b.b = nil
	b.released = true
}

// Data is the storage behind a string or bytes leaf: either a view of the
// range [off, end) of a Buffer, or bytes owned by the leaf itself.
type Data struct {
	buf      *Buffer
	off, end int
	own      []byte
}

// Borrow returns a Data viewing buf[off:end].
func Borrow(buf *Buffer, off, end int) Data {
	if off < 0 || end < off || end > buf.Len() {
		panic("object: borrow out of range")
	}
	return Data{buf: buf, off: off, end: end}
}

// Own returns a Data owning b. The caller hands b over and must not modify
// it afterwards.
func Own(b []byte) Data {
	return Data{own: b}
}

// OwnString returns a Data owning a copy of s.
func OwnString(s string) Data {
	return Data{own: []byte(s)}
}

// Borrowed reports whether d is a view into a Buffer.
func (d Data) Borrowed() bool {
	return d.buf != nil
}

// Bytes returns the contents of d. The result must not be modified.
func (d Data) Bytes() []byte {
	if d.buf == nil {
		return d.own
	}
	if d.buf.released {
		panic("object: read of borrowed data after buffer release")
	}
	return d.buf.b[d.off:d.end]
}

func (d Data) String() string {
	return string(d.Bytes())
}

func (d Data) Len() int {
	if d.buf == nil {
		return len(d.own)
	}
	return d.end - d.off
}

// Detach returns an owned copy of d, independent of any Buffer and of d's
// own storage.
func (d Data) Detach() Data {
	src := d.Bytes()
	dst := make([]byte, len(src))
	copy(dst, src)
	return Data{own: dst}
}
