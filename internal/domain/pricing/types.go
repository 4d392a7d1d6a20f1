package pricing

// CategoryID identifies a room category (e.g. STANDARD, DELUXE). All rooms
// of one category share a rate tier per rate mode.
type CategoryID string

func (c CategoryID) String() string {
	return string(c)
}

// RateMode selects which of the two independent tier sets an operation
// addresses. A pricing batch save targets exactly one mode.
type RateMode string

const (
	ModeStandard RateMode = "standard"
	ModeWeekend  RateMode = "weekend"
)

func (m RateMode) IsValid() bool {
	return m == ModeStandard || m == ModeWeekend
}

func (m RateMode) String() string {
	return string(m)
}
