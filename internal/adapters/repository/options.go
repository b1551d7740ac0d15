package repository

// Option applies a configuration option to the CSV loader.
type Option func(*loader)

// WithDelimiter sets the field delimiter (default ',').
func WithDelimiter(r rune) Option {
	return func(l *loader) {
		if r != 0 {
			l.comma = r
		}
	}
}
