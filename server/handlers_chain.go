package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/google/uuid"

	"github.com/stevehazel/DUO/core"
)

type initChainRequest struct {
	UUID string `json:"uuid"`
}

type chainView struct {
	UUID    string `json:"uuid"`
	Seed    string `json:"seed"`
	Height  int    `json:"height"`
	Balance string `json:"balance"`
}

func viewOf(chain *core.Chain) chainView {
	head := chain.HeadBlock()
	return chainView{
		UUID:    chain.UUID,
		Seed:    chain.Seed,
		Height:  head.Header().Height,
		Balance: head.Header().Balance.String(),
	}
}

// handleInitChain creates a new chain, optionally at a caller-supplied
// uuid, and registers it for cross-chain delivery.
func (s *Server) handleInitChain(w http.ResponseWriter, r *http.Request) {
	var req initChainRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if req.UUID == "" {
		req.UUID = uuid.NewString()
	}

	chain, err := s.Cache.Init(req.UUID)
	if err != nil {
		writeError(w, err)
		return
	}
	s.Registry.Core().AddChain(chain)

	writeJSON(w, http.StatusCreated, viewOf(chain))
}

// handleGetChain returns a chain's summary view.
func (s *Server) handleGetChain(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["uuid"]
	chain, err := s.Registry.Resolve(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(chain))
}

// handleStats returns a chain's balance/block-count summary.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["uuid"]
	chain, err := s.Registry.Resolve(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chain.Stats())
}

// handleCredibility reports a chain's debit/credit/verification totals,
// optionally scoped to a single peer via ?peer=.
func (s *Server) handleCredibility(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["uuid"]
	chain, err := s.Registry.Resolve(id)
	if err != nil {
		writeError(w, err)
		return
	}

	peer := r.URL.Query().Get("peer")
	minimal := r.URL.Query().Get("minimal") == "true"

	writeJSON(w, http.StatusOK, chain.GetCredibility(peer, minimal))
}
