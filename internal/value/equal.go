package value

// Equal implements Joy's recursive structural equality, used directly by
// the `=`/`!=`/`equal` primitives and by `compare` as a fallback for kinds
// that have no natural ordering.
func Equal(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Boolean:
		return av.Val == b.(Boolean).Val
	case CharValue:
		return av.Val == b.(CharValue).Val
	case Integer:
		return av.Val == b.(Integer).Val
	case FloatValue:
		return av.Val == b.(FloatValue).Val
	case String:
		return av.Val == b.(String).Val
	case Symbol:
		return av.Name == b.(Symbol).Name
	case SetValue:
		return av.Bits == b.(SetValue).Bits
	case ListValue:
		bv := b.(ListValue)
		if len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !Equal(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	case *File:
		return av == b.(*File)
	default:
		return false
	}
}

// Compare implements Joy's three-way `compare`: lexicographic for
// sequences (list/string), numeric/char ordering otherwise, recursive for
// nested aggregates. It returns -1, 0 or 1, and false if a and b are not
// comparable.
func Compare(a, b Value) (int, bool) {
	switch av := a.(type) {
	case Integer:
		switch bv := b.(type) {
		case Integer:
			return sign64(av.Val - bv.Val), true
		case FloatValue:
			return signf(float64(av.Val) - bv.Val), true
		}
	case FloatValue:
		switch bv := b.(type) {
		case Integer:
			return signf(av.Val - float64(bv.Val)), true
		case FloatValue:
			return signf(av.Val - bv.Val), true
		}
	case CharValue:
		if bv, ok := b.(CharValue); ok {
			return sign64(int64(av.Val) - int64(bv.Val)), true
		}
	case String:
		if bv, ok := b.(String); ok {
			switch {
			case av.Val < bv.Val:
				return -1, true
			case av.Val > bv.Val:
				return 1, true
			default:
				return 0, true
			}
		}
	case ListValue:
		if bv, ok := b.(ListValue); ok {
			return compareLists(av.Items, bv.Items)
		}
	}
	if Equal(a, b) {
		return 0, true
	}
	return 0, false
}

// compareLists compares two lists elementwise. An incomparable pair of
// elements (e.g. two SYMBOLs, or a SYMBOL and a SET) makes the whole list
// comparison incomparable rather than silently treating that position as
// equal and scanning past it.
func compareLists(a, b []Value) (int, bool) {
	for i := 0; i < len(a) && i < len(b); i++ {
		c, ok := Compare(a[i], b[i])
		if !ok {
			return 0, false
		}
		if c != 0 {
			return c, true
		}
	}
	switch {
	case len(a) < len(b):
		return -1, true
	case len(a) > len(b):
		return 1, true
	default:
		return 0, true
	}
}

func sign64(d int64) int {
	switch {
	case d < 0:
		return -1
	case d > 0:
		return 1
	default:
		return 0
	}
}

func signf(d float64) int {
	switch {
	case d < 0:
		return -1
	case d > 0:
		return 1
	default:
		return 0
	}
}
