package dedupe

const defaultMaxSize = 100_000

// Option applies a configuration option to the deduper.
type Option func(*seenSet)

// WithMaxSize sets the maximum number of ids to keep in memory.
// If maxSize <= 0 the set is unbounded.
func WithMaxSize(maxSize int) Option {
	return func(s *seenSet) {
		s.maxSize = maxSize
	}
}
