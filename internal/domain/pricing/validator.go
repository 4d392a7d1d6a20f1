package pricing

// ValidateBatch runs Validate on every tier of an edited rate set and
// collects all violations rather than stopping at the first, so the caller
// can report every offending category at once. A nil result means the
// batch may be committed.
func ValidateBatch(tiers []RateTier) map[CategoryID]RangeViolation {
	var violations map[CategoryID]RangeViolation
	for _, tier := range tiers {
		if err := tier.Validate(); err != nil {
			if violations == nil {
				violations = make(map[CategoryID]RangeViolation)
			}
			violations[tier.CategoryID] = err.(RangeViolation)
		}
	}
	return violations
}
