package options

// DefaultOptions matches the reference SymSpell settings the English and
// Vietnamese frequency dictionaries are tuned for.
var DefaultOptions = SymspellOptions{
	MaxDictionaryEditDistance: 2,
	PrefixLength:              7,
	CountThreshold:            1,
	InitialCapacity:           16,
}

type SymspellOptions struct {
	MaxDictionaryEditDistance int
	PrefixLength              int
	CountThreshold            int64 // minimum count for a term to be a valid suggestion
	InitialCapacity           int
}

type Options interface {
	Apply(options *SymspellOptions)
}

type FuncConfig struct {
	ops func(options *SymspellOptions)
}

func (w FuncConfig) Apply(conf *SymspellOptions) {
	w.ops(conf)
}

func NewFuncOption(f func(options *SymspellOptions)) *FuncConfig {
	return &FuncConfig{ops: f}
}

func WithMaxDictionaryEditDistance(maxDictionaryEditDistance int) Options {
	return NewFuncOption(func(options *SymspellOptions) {
		options.MaxDictionaryEditDistance = maxDictionaryEditDistance
	})
}

func WithPrefixLength(prefixLength int) Options {
	return NewFuncOption(func(options *SymspellOptions) {
		options.PrefixLength = prefixLength
	})
}

func WithCountThreshold(countThreshold int64) Options {
	return NewFuncOption(func(options *SymspellOptions) {
		options.CountThreshold = countThreshold
	})
}

// WithInitialCapacity presizes the word table; use the line count of the
// frequency dictionary when it is known.
func WithInitialCapacity(capacity int) Options {
	return NewFuncOption(func(options *SymspellOptions) {
		options.InitialCapacity = capacity
	})
}

// Resolve applies opts on top of DefaultOptions and clamps values the
// index cannot work with.
func Resolve(opts ...Options) SymspellOptions {
	cfg := DefaultOptions
	for _, o := range opts {
		if o != nil {
			o.Apply(&cfg)
		}
	}
	if cfg.MaxDictionaryEditDistance < 0 {
		cfg.MaxDictionaryEditDistance = 0
	}
	if cfg.PrefixLength < 1 {
		cfg.PrefixLength = 1
	}
	if cfg.PrefixLength <= cfg.MaxDictionaryEditDistance {
		cfg.PrefixLength = cfg.MaxDictionaryEditDistance + 1
	}
	if cfg.CountThreshold < 0 {
		cfg.CountThreshold = 0
	}
	if cfg.InitialCapacity < 0 {
		cfg.InitialCapacity = 0
	}
	return cfg
}
