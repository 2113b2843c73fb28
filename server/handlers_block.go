package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/stevehazel/DUO/core"
)

// handleGetBlock returns a single block by hash.
func (s *Server) handleGetBlock(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	chain, err := s.Registry.Resolve(vars["uuid"])
	if err != nil {
		writeError(w, err)
		return
	}

	block := chain.GetBlockByHash(vars["hash"])
	if block == nil {
		writeError(w, core.ErrNotFound)
		return
	}

	raw, err := block.MarshalJSON()
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(raw)
}

// handleBlockQuery filters a chain's blocks by type, attribute,
// timestamp window, and multiplicity, mirroring chain.py's block_query.
// Query params: type (comma-separated BlockType ints, required),
// attr_key/attr_value (optional equality filter), window_far/window_near
// (unix seconds, optional), multiple (bool, default false unless more
// than one type is given).
func (s *Server) handleBlockQuery(w http.ResponseWriter, r *http.Request) {
	chain, err := s.Registry.Resolve(mux.Vars(r)["uuid"])
	if err != nil {
		writeError(w, err)
		return
	}

	q := r.URL.Query()

	var types []core.BlockType
	for _, raw := range strings.Split(q.Get("type"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid type: " + raw})
			return
		}
		types = append(types, core.BlockType(n))
	}
	if len(types) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "type is required"})
		return
	}

	var attrQuery *core.AttrQuery
	if key := q.Get("attr_key"); key != "" {
		attrQuery = &core.AttrQuery{Key: key, Value: q.Get("attr_value")}
	}

	windowFar, _ := strconv.ParseInt(q.Get("window_far"), 10, 64)
	windowNear, _ := strconv.ParseInt(q.Get("window_near"), 10, 64)
	multiple := q.Get("multiple") == "true"

	blocks := chain.BlockQuery(types, attrQuery, windowFar, windowNear, multiple)

	raws := make([]json.RawMessage, 0, len(blocks))
	for _, b := range blocks {
		raw, err := b.MarshalJSON()
		if err != nil {
			writeError(w, err)
			return
		}
		raws = append(raws, raw)
	}
	writeJSON(w, http.StatusOK, raws)
}
