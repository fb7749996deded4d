package main

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/wikiwho/authgraph"
	"github.com/wikiwho/authgraph/dump"
	"github.com/wikiwho/authgraph/persist"
	"github.com/wikiwho/authgraph/validate"
)

type handler struct {
	cfg   authgraph.Config
	store *persist.Store
}

func newHandler(cfg authgraph.Config, store *persist.Store) *handler {
	return &handler{cfg: cfg, store: store}
}

type analyseResponse struct {
	Title            string               `json:"title"`
	SpamIDs          []authgraph.RevisionID `json:"spam_ids"`
	OrderedRevisions []authgraph.RevisionID `json:"ordered_revisions"`
	WordCount        int                  `json:"word_count"`
	Issues           []validate.Issue     `json:"issues,omitempty"`
}

// handleAnalyse accepts a MediaWiki XML dump body, runs it through the
// authorship engine, persists the result, and returns a summary.
func (h *handler) handleAnalyse(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	body := io.LimitReader(r.Body, 256<<20)
	title, revisions, err := dump.ReadPage(body, slog.Default())
	if err != nil {
		if errors.Is(err, dump.ErrEmptyDump) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "empty dump"})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	pa, err := authgraph.AnalysePage(revisions, h.cfg)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}

	issues := validate.Check(pa)
	for _, issue := range issues {
		slog.Warn("post-analysis invariant violation", "property", issue.Property, "message", issue.Message)
	}

	if h.store != nil {
		if err := h.store.ExportPage(r.Context(), title, pa); err != nil {
			slog.Error("persisting analysis", "error", err, "title", title)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "persisting analysis failed"})
			return
		}
	}

	writeJSON(w, http.StatusOK, analyseResponse{
		Title:            title,
		SpamIDs:          pa.SpamIDs,
		OrderedRevisions: pa.OrderedRevisions,
		WordCount:        pa.Store.NumWords(),
		Issues:           issues,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("writing json response", "error", err)
	}
}
