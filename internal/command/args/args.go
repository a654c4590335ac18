package args

// Args is the parsed, validated set of positional arguments passed to a
// command.
type Args struct {
	positionals []string
}

// FromSignature tokenizes input according to sig.Mode and, when validate is
// true, checks the resulting count against sig's arity via EnsureSignature.
func FromSignature(name string, sig Signature, input string, validate bool) (Args, error) {
	positionals := NewParser(input).WithMode(sig.Mode).Collect()
	if validate {
		if err := EnsureSignature(name, sig, len(positionals)); err != nil {
			return Args{}, err
		}
	}
	return Args{positionals: positionals}, nil
}

// FromString tokenizes input in Raw mode with no validation, mirroring the
// bare `Args::from` conversion.
func FromString(input string) Args {
	return Args{positionals: NewParser(input).Collect()}
}

// Empty returns an Args with no positionals.
func Empty() Args {
	return Args{}
}

// Len returns how many positionals were parsed.
func (a Args) Len() int { return len(a.positionals) }

// IsEmpty reports whether there are no positionals.
func (a Args) IsEmpty() bool { return len(a.positionals) == 0 }

// Get returns the positional at index, or "", false if out of range.
func (a Args) Get(index int) (string, bool) {
	if index < 0 || index >= len(a.positionals) {
		return "", false
	}
	return a.positionals[index], true
}

// First returns the first positional, or "", false if there is none.
func (a Args) First() (string, bool) {
	return a.Get(0)
}

// Last returns the final positional, or "", false if there is none.
func (a Args) Last() (string, bool) {
	return a.Get(len(a.positionals) - 1)
}

// All returns a copy of every positional.
func (a Args) All() []string {
	out := make([]string, len(a.positionals))
	copy(out, a.positionals)
	return out
}
