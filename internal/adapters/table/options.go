package table

// Option applies a configuration option to the table readers.
type Option func(*settings)

type settings struct {
	separator rune
	quote     rune
	sheet     string
}

func newSettings(opts []Option) settings {
	s := settings{separator: ',', quote: '"'}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithSeparator sets the field delimiter of delimited files.
func WithSeparator(r rune) Option {
	return func(s *settings) {
		if r != 0 {
			s.separator = r
		}
	}
}

// WithQuote sets the quote character of delimited files. Only '"' is
// supported; other values make Load fail with ErrUnsupportedQuote.
func WithQuote(r rune) Option {
	return func(s *settings) {
		if r != 0 {
			s.quote = r
		}
	}
}

// WithSheet selects the worksheet of spreadsheet files. Defaults to the
// first sheet.
func WithSheet(name string) Option {
	return func(s *settings) {
		s.sheet = name
	}
}
