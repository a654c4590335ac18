package args

import "fmt"

// Unbounded marks a Signature's MaxArgs as having no upper limit.
const Unbounded = -1

// Signature describes how many positional arguments a command accepts and
// which ParseMode its arguments should be tokenized with.
type Signature struct {
	MinArgs int
	MaxArgs int // Unbounded (-1) means no upper limit
	Mode    ParseMode
}

// WrongArity is returned by EnsureSignature when count does not satisfy
// sig's positional bounds.
type WrongArity struct {
	Name     string
	Min, Max int // Max == Unbounded when there is no upper bound
	Got      int
}

func (e *WrongArity) Error() string {
	plural := func(n int) string {
		if n > 1 {
			return "'s"
		}
		return ""
	}
	switch {
	case e.Min == 0 && e.Max == 0:
		return fmt.Sprintf("`:%s` doesn't take any arguments", e.Name)
	case e.Max != Unbounded && e.Min == e.Max:
		return fmt.Sprintf("`:%s` needs `%d` argument%s, got %d", e.Name, e.Min, plural(e.Min), e.Got)
	case e.Max != Unbounded:
		return fmt.Sprintf("`:%s` needs at least `%d` argument%s and at most `%d`, got `%d`", e.Name, e.Min, plural(e.Min), e.Max, e.Got)
	default:
		return fmt.Sprintf("`:%s` needs at least `%d` argument%s", e.Name, e.Min, plural(e.Min))
	}
}

// EnsureSignature validates count against sig's positional bounds, returning
// a *WrongArity describing the mismatch in a zero-argument, exact-count,
// range, or "at least N" form.
//
// The original this is ported from (helix-core's args.rs) has two identical
// match arms guarded by `min == max`, so its range branch ("needs at least N
// and at most M") was dead code — any signature with min == max matched the
// first arm, and min != max never reached either guarded arm at all,
// falling through to the "at least N" arm instead. This implementation
// fixes that: the range message is reachable whenever min < max.
func EnsureSignature(name string, sig Signature, count int) error {
	switch {
	case sig.MaxArgs == 0 && sig.MinArgs == 0:
		if count != 0 {
			return &WrongArity{Name: name, Min: 0, Max: 0, Got: count}
		}
	case sig.MaxArgs != Unbounded && sig.MinArgs == sig.MaxArgs:
		if count < sig.MinArgs || count > sig.MaxArgs {
			return &WrongArity{Name: name, Min: sig.MinArgs, Max: sig.MaxArgs, Got: count}
		}
	case sig.MaxArgs != Unbounded:
		if count < sig.MinArgs || count > sig.MaxArgs {
			return &WrongArity{Name: name, Min: sig.MinArgs, Max: sig.MaxArgs, Got: count}
		}
	default:
		if count < sig.MinArgs {
			return &WrongArity{Name: name, Min: sig.MinArgs, Max: Unbounded, Got: count}
		}
	}
	return nil
}
