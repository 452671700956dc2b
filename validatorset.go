package schemac

// Rule inspects one instance and returns any violations it finds. Rules are
// stateless and re-entrant: all shared state is read-only after registration
// and results accumulate only in the returned slice.
type Rule func(instance map[string]any) Issues

// ValidatorSet is the ordered collection of property-level and object-level
// rules registered for one model. It is populated once, by the adapter,
// during compilation; afterwards it is safe for concurrent use.
type ValidatorSet struct {
	rules []Rule
}

// Add appends a rule. Registration order is preserved, so violations surface
// in declaration order.
func (s *ValidatorSet) Add(r Rule) {
	if r != nil {
		s.rules = append(s.rules, r)
	}
}

// Len returns the number of registered rules.
func (s *ValidatorSet) Len() int { return len(s.rules) }

// Validate runs every rule against the instance and accumulates all
// violations; it never stops at the first one.
func (s *ValidatorSet) Validate(instance map[string]any) Issues {
	var iss Issues
	for _, r := range s.rules {
		if more := r(instance); len(more) > 0 {
			iss = AppendIssues(iss, more...)
		}
	}
	return iss
}
