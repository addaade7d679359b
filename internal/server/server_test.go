package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textnorm/internal/config"
	"textnorm/internal/customdict"
	"textnorm/internal/lexicon"
	"textnorm/internal/service"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Lexicon = lexicon.Files{
		Frequency:  "../lexicon/testdata/en_frequency.txt",
		Bigram:     "../lexicon/testdata/en_bigram.txt",
		Words:      "../lexicon/testdata/en_words.txt",
		SwearWords: "../lexicon/testdata/en_swear.txt",
		FirstNames: "../lexicon/testdata/en_names.txt",
	}
	return cfg
}

func newTestServer(t *testing.T, words WordStore) *Server {
	t.Helper()

	var src lexicon.WordSource
	if words != nil {
		src = words
	}
	b, err := service.NewBuilder(testConfig(), src, nil)
	require.NoError(t, err)

	s, err := New(context.Background(), b.Build, words, nil)
	require.NoError(t, err)
	return s
}

func newRedisStore(t *testing.T) (*customdict.CustomDict, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return customdict.New(client, lexicon.English.String()), mr
}

func do(t *testing.T, s *Server, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)

	rec, body := do(t, s, http.MethodPost, "/api/v1/normalize", `{"text":"Hello, WORLD!! 42"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "hello world 42", body["normalized"])
	assert.Equal(t, "Hello, WORLD!! 42", body["original"])

	rec, body = do(t, s, http.MethodPost, "/api/v1/normalize", `{"text":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid request", body["error"])

	rec, _ = do(t, s, http.MethodPost, "/api/v1/normalize", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, s, http.MethodGet, "/api/v1/normalize", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCorrect(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)

	rec, body := do(t, s, http.MethodPost, "/api/v1/correct", `{"word":"Hello.How.Are.You"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello how are you", body["corrected"])
	assert.Equal(t, "split", body["stage"])
	assert.Equal(t, "hello.how.are.you", body["original"])

	rec, _ = do(t, s, http.MethodPost, "/api/v1/correct", `{"word":"two words"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompound(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)

	rec, body := do(t, s, http.MethodPost, "/api/v1/compound", `{"text":"helo wrld"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello world", body["corrected"])
	assert.EqualValues(t, 2, body["distance"])
}

func TestCustomWordsDisabled(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)

	rec, _ := do(t, s, http.MethodPost, "/api/v1/custom-word", `{"word":"grok"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec, _ = do(t, s, http.MethodDelete, "/api/v1/custom-word/grok", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	_, body := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, "healthy", body["status"])
	assert.NotContains(t, body, "custom_words")
}

func TestCustomWordsAndReload(t *testing.T) {
	t.Parallel()

	store, mr := newRedisStore(t)
	s := newTestServer(t, store)
	before := s.Normalizer()
	assert.False(t, before.Lexicon.IsKnown("grok"))

	rec, body := do(t, s, http.MethodPost, "/api/v1/custom-word", `{"word":"Grok"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "ok", body["status"])
	ok, err := mr.SIsMember("custom_dict:en", "grok")
	require.NoError(t, err)
	assert.True(t, ok)

	rec, _ = do(t, s, http.MethodPost, "/api/v1/custom-word", `{"word":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = do(t, s, http.MethodPost, "/api/v1/reload", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 6, body["words"])
	assert.Equal(t, "en", body["language"])

	after := s.Normalizer()
	assert.NotSame(t, before, after)
	assert.True(t, after.Lexicon.IsKnown("grok"))
	assert.False(t, before.Lexicon.IsKnown("grok"), "reload must not touch the old lexicon")

	_, body = do(t, s, http.MethodPost, "/api/v1/normalize", `{"text":"GROK you"}`)
	assert.Equal(t, "grok you", body["normalized"])

	rec, _ = do(t, s, http.MethodDelete, "/api/v1/custom-word/GROK", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	ok, err = mr.SIsMember("custom_dict:en", "grok")
	require.NoError(t, err)
	assert.False(t, ok)

	_, body = do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, "ok", body["custom_words"])
}

func TestHealthWithStoreDown(t *testing.T) {
	t.Parallel()

	store, mr := newRedisStore(t)
	s := newTestServer(t, store)
	mr.Close()

	rec, body := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "unavailable", body["custom_words"])

	// A reload without the store still succeeds, without custom words.
	rec, _ = do(t, s, http.MethodPost, "/api/v1/reload", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReloadFailureKeepsCurrent(t *testing.T) {
	t.Parallel()

	b, err := service.NewBuilder(testConfig(), nil, nil)
	require.NoError(t, err)

	var (
		mu   sync.Mutex
		fail bool
	)
	build := func(ctx context.Context) (*service.Normalizer, error) {
		mu.Lock()
		defer mu.Unlock()
		if fail {
			return nil, errors.New("disk gone")
		}
		return b.Build(ctx)
	}
	s, err := New(context.Background(), build, nil, nil)
	require.NoError(t, err)
	current := s.Normalizer()

	mu.Lock()
	fail = true
	mu.Unlock()

	rec, body := do(t, s, http.MethodPost, "/api/v1/reload", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, body["error"], "disk gone")
	assert.Same(t, current, s.Normalizer())
}

func TestNewFailsWhenBuildFails(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), func(context.Context) (*service.Normalizer, error) {
		return nil, errors.New("no lexicon")
	}, nil, nil)
	assert.EqualError(t, err, "no lexicon")
}

func TestConcurrentRequestsDuringReload(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			rec, body := do(t, s, http.MethodPost, "/api/v1/normalize", `{"text":"hello world"}`)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "hello world", body["normalized"])
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Reload(context.Background()))
		}()
	}
	wg.Wait()
}
