package web

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/gnis-match/internal/engine"
	"github.com/gnis-match/internal/gazetteer"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"records": s.summary.TotalRecords,
		"entries": len(s.engine.Index().Entries),
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.summary)
}

// handleResults lists run results, optionally filtered by disposition
// (?disposition=unmatched|single|multiple) and paginated with
// ?limit= and ?offset=.
func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	filtered := s.results

	if disposition := r.URL.Query().Get("disposition"); disposition != "" {
		switch engine.Disposition(disposition) {
		case engine.Unmatched, engine.SingleMatch, engine.MultipleMatch:
		default:
			writeError(w, http.StatusBadRequest, "unknown disposition: "+disposition)
			return
		}
		filtered = nil
		for i := range s.results {
			if string(s.results[i].Disposition) == disposition {
				filtered = append(filtered, s.results[i])
			}
		}
	}

	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit: "+v)
			return
		}
		limit = n
	}
	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid offset: "+v)
			return
		}
		offset = n
	}

	total := len(filtered)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total":   total,
		"offset":  offset,
		"results": filtered[offset:end],
	})
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid record id")
		return
	}

	for i := range s.results {
		if s.results[i].Record.ID == id {
			writeJSON(w, http.StatusOK, s.results[i])
			return
		}
	}
	writeError(w, http.StatusNotFound, "no result for record "+strconv.Itoa(id))
}

type matchRequest struct {
	Name   string `json:"name"`
	County string `json:"county"`
}

// handleMatch runs the engine against an ad-hoc name without touching
// the stored run.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	result := s.engine.MatchRecord(gazetteer.PlaceRecord{ID: -1, Name: req.Name, County: req.County})
	writeJSON(w, http.StatusOK, result)
}

type searchHit struct {
	Entry gazetteer.Entry `json:"entry"`
	Rank  int             `json:"rank"`
}

// handleGazetteerSearch does substring-style fuzzy lookup over catalog
// names, for interactive exploration rather than record matching.
func (s *Server) handleGazetteerSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}

	limit := 25
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit: "+v)
			return
		}
		limit = n
	}

	idx := s.engine.Index()
	ranks := fuzzy.RankFindNormalizedFold(query, idx.Names)
	sort.Sort(ranks)

	hits := make([]searchHit, 0, limit)
	for i, rank := range ranks {
		if i >= limit {
			break
		}
		hits = append(hits, searchHit{
			Entry: idx.Entries[rank.OriginalIndex],
			Rank:  rank.Distance,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"query": query,
		"total": len(ranks),
		"hits":  hits,
	})
}
