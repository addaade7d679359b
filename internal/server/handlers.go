package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
	"unicode"
)

// pingTimeout bounds the word store check of /health.
const pingTimeout = 2 * time.Second

type textRequest struct {
	Text string `json:"text"`
}

type wordRequest struct {
	Word string `json:"word"`
}

func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	n := s.current.Load()
	writeJSON(w, http.StatusOK, map[string]string{
		"original":   req.Text,
		"normalized": n.Cleaner.Clean(req.Text),
	})
}

func (s *Server) handleCorrect(w http.ResponseWriter, r *http.Request) {
	var req wordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	word := strings.ToLower(strings.TrimSpace(req.Word))
	if word == "" || strings.ContainsFunc(word, unicode.IsSpace) {
		writeError(w, http.StatusBadRequest, "word must be a single token")
		return
	}
	writeJSON(w, http.StatusOK, s.current.Load().Engine.Correct(word))
}

func (s *Server) handleCompound(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	n := s.current.Load()
	res := n.Lexicon.Compound(strings.ToLower(req.Text), n.Engine.Config().SuggestMaxEditDistance)
	writeJSON(w, http.StatusOK, map[string]any{
		"original":  req.Text,
		"corrected": res.Term,
		"distance":  res.Distance,
	})
}

func (s *Server) handleAddWord(w http.ResponseWriter, r *http.Request) {
	if s.words == nil {
		writeError(w, http.StatusServiceUnavailable, "custom dictionary is disabled")
		return
	}
	var req wordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Word) == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := s.words.Add(r.Context(), req.Word); err != nil {
		s.logger.Error("add custom word", "word", req.Word, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

func (s *Server) handleRemoveWord(w http.ResponseWriter, r *http.Request) {
	if s.words == nil {
		writeError(w, http.StatusServiceUnavailable, "custom dictionary is disabled")
		return
	}
	word := r.PathValue("word")
	if strings.TrimSpace(word) == "" {
		writeError(w, http.StatusBadRequest, "word is required")
		return
	}
	if err := s.words.Remove(r.Context(), word); err != nil {
		s.logger.Error("remove custom word", "word", word, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.Reload(r.Context()); err != nil {
		s.logger.Error("reload failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	lex := s.current.Load().Lexicon
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"language": lex.Language.String(),
		"words":    lex.Words.Cardinality(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{
		"status":   "healthy",
		"language": s.current.Load().Lexicon.Language.String(),
	}
	if s.words != nil {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()
		if err := s.words.Ping(ctx); err != nil {
			resp["custom_words"] = "unavailable"
		} else {
			resp["custom_words"] = "ok"
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
