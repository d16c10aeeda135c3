package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"

	"hisab/internal/core"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	teams, err := s.svc.RefreshTeams(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Initial team fetch failed", "error", err)
		teams = s.svc.Snapshot()
	}

	data := struct {
		Overview   core.Overview
		View       core.ViewState
		Sort       string
		SortValues []string
	}{
		Overview:   core.BuildOverview(teams, core.ViewState{Sort: s.sortPolicy}, s.shareRules),
		View:       core.ViewState{Sort: s.sortPolicy},
		Sort:       string(s.sortPolicy),
		SortValues: []string{string(core.SortEntryFeeDesc), string(core.SortOriginal)},
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "index.html")
		_, _ = w.Write([]byte(`<div class="error">Error rendering page</div>`))
	}
}

// handleOverview renders the overview partial for the current view state.
// Rendered fragments are cached per search/sort combination until the next
// mutation or the cache TTL, whichever comes first.
func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	search := strings.TrimSpace(r.URL.Query().Get("search"))
	sortPolicy := s.sortPolicy
	if v := core.SortPolicy(r.URL.Query().Get("sort")); v.IsValid() {
		sortPolicy = v
	}
	vs := core.ViewState{
		Search:      search,
		Sort:        sortPolicy,
		EditingTeam: sanitizeInput(r.URL.Query().Get("editTeam")),
		EditingID:   sanitizeInput(r.URL.Query().Get("editId")),
	}

	// Renders with an open edit row are transient and never cached.
	cacheKey := "overview:" + search + "|" + string(sortPolicy)
	if vs.EditingID == "" {
		if html, ok := s.overviewCache.Get(cacheKey); ok {
			_, _ = w.Write([]byte(html))
			return
		}
	}

	teams, err := s.svc.RefreshTeams(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Team fetch failed", "error", err, "search", search)
		_, _ = w.Write([]byte(`<section id="overview" class="overview"><div class="placeholder">Error loading bookings</div></section>`))
		return
	}

	data := struct {
		Overview core.Overview
		View     core.ViewState
		Sort     string
	}{
		Overview: core.BuildOverview(teams, vs, s.shareRules),
		View:     vs,
		Sort:     string(sortPolicy),
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "overview.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "overview.html", "search", search)
		_, _ = w.Write([]byte(`<section id="overview" class="overview"><div class="placeholder">Error rendering overview</div></section>`))
		return
	}

	if vs.EditingID == "" {
		s.overviewCache.Set(cacheKey, buf.String())
	}
	_, _ = w.Write(buf.Bytes())
}
