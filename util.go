package flow

import (
	"go/constant"
	"go/token"
)

// ConstantEqual reports whether two constants denote the same value. Unlike
// constant.Compare it does not panic on values of unrelated kinds; those are
// simply unequal.
func ConstantEqual(a, b constant.Value) bool {
	if a == nil || b == nil {
		return false
	}

	ka, kb := a.Kind(), b.Kind()
	switch {
	case ka == constant.Unknown || kb == constant.Unknown:
		return false
	case ka == kb:
	case numeric(ka) && numeric(kb):
	default:
		return false
	}

	return constant.Compare(a, token.EQL, b)
}

func numeric(k constant.Kind) bool {
	switch k {
	case constant.Int, constant.Float, constant.Complex:
		return true
	default:
		return false
	}
}
