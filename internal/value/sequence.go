package value

// Sequence factors the behavior shared by list and string values (cons,
// first, rest, size, at, concat) into one helper type, keyed on whether
// the underlying value is a list or a string. Aggregate-wide operations
// that also cover sets (step, map, fold, null, size) stay in the interp
// package, since sets don't fit this element-slice shape.
type Sequence interface {
	Value
	Len() int
	ElemAt(i int) Value
	Slice(lo, hi int) Sequence
	// Cons returns a new sequence with x prepended. It panics if x is not
	// the sequence's element kind; callers must check first.
	Cons(x Value) Sequence
}

// AsSequence reports whether v is list- or string-shaped and returns the
// Sequence view if so.
func AsSequence(v Value) (Sequence, bool) {
	switch sv := v.(type) {
	case ListValue:
		return listSeq{sv}, true
	case String:
		return stringSeq{sv}, true
	}
	return nil, false
}

type listSeq struct{ l ListValue }

func (s listSeq) Kind() Kind        { return List }
func (s listSeq) String() string    { return s.l.String() }
func (s listSeq) Len() int          { return len(s.l.Items) }
func (s listSeq) ElemAt(i int) Value { return s.l.Items[i] }
func (s listSeq) Slice(lo, hi int) Sequence {
	return listSeq{ListValue{Items: append([]Value(nil), s.l.Items[lo:hi]...)}}
}
func (s listSeq) Cons(x Value) Sequence {
	items := make([]Value, 0, len(s.l.Items)+1)
	items = append(items, x)
	items = append(items, s.l.Items...)
	return listSeq{ListValue{Items: items}}
}

// List returns the underlying ListValue.
func (s listSeq) List() ListValue { return s.l }

type stringSeq struct{ s String }

func (s stringSeq) Kind() Kind     { return Str }
func (s stringSeq) String() string { return s.s.String() }
func (s stringSeq) Len() int       { return len(s.s.Val) }
func (s stringSeq) ElemAt(i int) Value {
	return CharValue{Val: s.s.Val[i]}
}
func (s stringSeq) Slice(lo, hi int) Sequence {
	return stringSeq{String{Val: s.s.Val[lo:hi]}}
}
func (s stringSeq) Cons(x Value) Sequence {
	c := x.(CharValue)
	return stringSeq{String{Val: string(c.Val) + s.s.Val}}
}

// Str returns the underlying String.
func (s stringSeq) Str() String { return s.s }

// SeqToValue converts a Sequence view back to its concrete Value.
func SeqToValue(s Sequence) Value {
	switch sv := s.(type) {
	case listSeq:
		return sv.List()
	case stringSeq:
		return sv.Str()
	default:
		panic("value: unknown Sequence implementation")
	}
}

// NewEmptySequence returns an empty sequence of the same kind as like.
func NewEmptySequence(like Sequence) Sequence {
	switch like.(type) {
	case listSeq:
		return listSeq{ListValue{}}
	case stringSeq:
		return stringSeq{String{}}
	default:
		panic("value: unknown Sequence implementation")
	}
}

// AppendElem returns a new sequence of the same kind as s with x appended
// at the end. Used by concat and infra to build up result sequences.
func AppendElem(s Sequence, x Value) Sequence {
	switch sv := s.(type) {
	case listSeq:
		items := append(append([]Value(nil), sv.l.Items...), x)
		return listSeq{ListValue{Items: items}}
	case stringSeq:
		c := x.(CharValue)
		return stringSeq{String{Val: sv.s.Val + string(c.Val)}}
	default:
		panic("value: unknown Sequence implementation")
	}
}
