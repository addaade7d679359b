package verbosity

// Verbosity controls how many suggestions Lookup returns.
type Verbosity int

const (
	// Top returns the single suggestion with the smallest edit distance
	// and, among those, the highest frequency.
	Top Verbosity = iota
	// Closest returns every suggestion with the smallest edit distance found.
	Closest
	// All returns every suggestion within the maximum edit distance.
	All
)

func (v Verbosity) String() string {
	switch v {
	case Top:
		return "top"
	case Closest:
		return "closest"
	case All:
		return "all"
	}
	return "unknown"
}
