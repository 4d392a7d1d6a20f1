package pricing

import "errors"

var ErrUnknownCategory = errors.New("unknown room category")

// Sheet holds one rate mode's tiers during an editing session: the
// last-committed state plus the working copy. Reset is a pure restore of
// the committed tiers, never a merge.
type Sheet struct {
	mode      RateMode
	committed map[CategoryID]RateTier
	working   map[CategoryID]RateTier
	order     []CategoryID
}

func NewSheet(mode RateMode, tiers []RateTier) *Sheet {
	s := &Sheet{
		mode:      mode,
		committed: make(map[CategoryID]RateTier, len(tiers)),
		working:   make(map[CategoryID]RateTier, len(tiers)),
		order:     make([]CategoryID, 0, len(tiers)),
	}
	for _, t := range tiers {
		s.committed[t.CategoryID] = t
		s.working[t.CategoryID] = t
		s.order = append(s.order, t.CategoryID)
	}
	return s
}

func (s *Sheet) Mode() RateMode {
	return s.mode
}

// Edit replaces a category's working tier. Editing never touches the
// committed copy.
func (s *Sheet) Edit(tier RateTier) error {
	if _, ok := s.committed[tier.CategoryID]; !ok {
		return ErrUnknownCategory
	}
	s.working[tier.CategoryID] = tier
	return nil
}

// Tiers returns the working tiers in their original order.
func (s *Sheet) Tiers() []RateTier {
	out := make([]RateTier, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.working[id])
	}
	return out
}

// Dirty lists the categories whose working tier differs from the
// committed one.
func (s *Sheet) Dirty() []CategoryID {
	var dirty []CategoryID
	for _, id := range s.order {
		if !tiersEqual(s.working[id], s.committed[id]) {
			dirty = append(dirty, id)
		}
	}
	return dirty
}

// Reset discards all edits and restores the committed tiers verbatim.
func (s *Sheet) Reset() {
	for id, t := range s.committed {
		s.working[id] = t
	}
}

// MarkCommitted adopts the working tier of the given categories as the new
// committed state, after their remote commits succeeded.
func (s *Sheet) MarkCommitted(ids ...CategoryID) {
	for _, id := range ids {
		if t, ok := s.working[id]; ok {
			s.committed[id] = t
		}
	}
}

func tiersEqual(a, b RateTier) bool {
	return a.CategoryID == b.CategoryID &&
		a.MinPrice.Equal(b.MinPrice) &&
		a.BasePrice.Equal(b.BasePrice) &&
		a.MaxPrice.Equal(b.MaxPrice) &&
		a.AvailableUnits == b.AvailableUnits
}
