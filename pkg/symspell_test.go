package symspell

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textnorm/pkg/options"
	"textnorm/pkg/verbosity"
)

func newTestIndex(t *testing.T, entries map[string]int64, opts ...options.Options) *SymSpell {
	t.Helper()
	s := NewSymSpell(opts...)
	for term, count := range entries {
		s.CreateDictionaryEntry(term, count)
	}
	return s
}

func TestLookup(t *testing.T) {
	t.Parallel()

	s := newTestIndex(t, map[string]int64{"hello": 1000, "help": 500, "world": 800})

	tests := []struct {
		name  string
		input string
		v     verbosity.Verbosity
		want  []SuggestItem
	}{
		{
			name:  "exact match short-circuits",
			input: "hello",
			v:     verbosity.Top,
			want:  []SuggestItem{{Term: "hello", Distance: 0, Count: 1000}},
		},
		{
			name:  "top keeps the most frequent",
			input: "helo",
			v:     verbosity.Top,
			want:  []SuggestItem{{Term: "hello", Distance: 1, Count: 1000}},
		},
		{
			name:  "closest keeps every term at the smallest distance",
			input: "helo",
			v:     verbosity.Closest,
			want: []SuggestItem{
				{Term: "hello", Distance: 1, Count: 1000},
				{Term: "help", Distance: 1, Count: 500},
			},
		},
		{
			name:  "no suggestion",
			input: "xyzzyq",
			v:     verbosity.Top,
			want:  nil,
		},
		{
			name:  "empty input",
			input: "",
			v:     verbosity.All,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := s.Lookup(tt.input, tt.v, 2)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookupAllIncludesExactMatch(t *testing.T) {
	t.Parallel()

	s := newTestIndex(t, map[string]int64{"hello": 1000, "hell": 50})

	got, err := s.Lookup("hell", verbosity.All, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "hell", got[0].Term)
	assert.Equal(t, 0, got[0].Distance)
	assert.Equal(t, "hello", got[1].Term)
	assert.Equal(t, 1, got[1].Distance)
}

func TestLookupEditDistanceTooLarge(t *testing.T) {
	t.Parallel()

	s := newTestIndex(t, map[string]int64{"hello": 1})
	_, err := s.Lookup("hello", verbosity.Top, 3)
	assert.ErrorIs(t, err, ErrEditDistanceTooLarge)
}

func TestCreateDictionaryEntry(t *testing.T) {
	t.Parallel()

	t.Run("accumulates counts", func(t *testing.T) {
		t.Parallel()
		s := NewSymSpell()
		assert.True(t, s.CreateDictionaryEntry("hello", 10))
		assert.False(t, s.CreateDictionaryEntry("hello", 5))
		count, ok := s.Count("hello")
		require.True(t, ok)
		assert.Equal(t, int64(15), count)
		assert.Equal(t, 5, s.MaxLength())
	})

	t.Run("holds back terms below threshold", func(t *testing.T) {
		t.Parallel()
		s := NewSymSpell(options.WithCountThreshold(10))
		assert.False(t, s.CreateDictionaryEntry("rare", 5))
		_, ok := s.Count("rare")
		assert.False(t, ok)

		assert.True(t, s.CreateDictionaryEntry("rare", 5))
		count, ok := s.Count("rare")
		require.True(t, ok)
		assert.Equal(t, int64(10), count)
	})

	t.Run("ignores empty terms", func(t *testing.T) {
		t.Parallel()
		s := NewSymSpell()
		assert.False(t, s.CreateDictionaryEntry("", 10))
		assert.Equal(t, 0, s.WordCount())
	})
}

func TestLoadDictionary(t *testing.T) {
	t.Parallel()

	t.Run("columns and blank lines", func(t *testing.T) {
		t.Parallel()
		s := NewSymSpell()
		err := s.LoadDictionary(strings.NewReader("hello 10\n\nworld 5\nbig 1.5e3\n"), 0, 1)
		require.NoError(t, err)
		assert.Equal(t, 3, s.WordCount())
		count, _ := s.Count("big")
		assert.Equal(t, int64(1500), count)
	})

	t.Run("missing count column", func(t *testing.T) {
		t.Parallel()
		s := NewSymSpell()
		err := s.LoadDictionary(strings.NewReader("hello 10\nworld\n"), 0, 1)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedLine)
		assert.Contains(t, err.Error(), "line 2")
	})

	t.Run("non-numeric count", func(t *testing.T) {
		t.Parallel()
		s := NewSymSpell()
		err := s.LoadDictionary(strings.NewReader("hello ten\n"), 0, 1)
		assert.ErrorIs(t, err, ErrMalformedLine)
	})
}

func TestLoadBigramDictionary(t *testing.T) {
	t.Parallel()

	s := NewSymSpell()
	err := s.LoadBigramDictionary(strings.NewReader("hello world 7\nhow are 3\n"), 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, s.BigramCount())
	assert.Equal(t, int64(7), s.bigrams["hello world"])
	assert.Equal(t, int64(3), s.bigramCountMin)

	err = s.LoadBigramDictionary(strings.NewReader("hello 7\n"), 0, 2)
	assert.ErrorIs(t, err, ErrMalformedLine)
}
