package server

import (
	"encoding/json"
	"net/http"
)

type verifyPairRequest struct {
	ChainID string `json:"chain_id"`
	PeerID  string `json:"peer_id"`
}

func (s *Server) resolvePair(w http.ResponseWriter, r *http.Request) (chainID, peerID string, ok bool) {
	var req verifyPairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body: " + err.Error()})
		return "", "", false
	}
	if req.ChainID == "" || req.PeerID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "chain_id and peer_id are required"})
		return "", "", false
	}
	return req.ChainID, req.PeerID, true
}

// handleCrossVerify runs the read-only pairwise signal-linkage check
// between two registered chains.
func (s *Server) handleCrossVerify(w http.ResponseWriter, r *http.Request) {
	chainID, peerID, ok := s.resolvePair(w, r)
	if !ok {
		return
	}

	chain, err := s.Registry.Resolve(chainID)
	if err != nil {
		writeError(w, err)
		return
	}
	peer, err := s.Registry.Resolve(peerID)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := chain.CrossVerify(peer); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"verified": true})
}

// handleHardVerify runs a durable, two-sided attestation pass and
// persists both chains afterward.
func (s *Server) handleHardVerify(w http.ResponseWriter, r *http.Request) {
	chainID, peerID, ok := s.resolvePair(w, r)
	if !ok {
		return
	}

	chain, err := s.Registry.Resolve(chainID)
	if err != nil {
		writeError(w, err)
		return
	}
	peer, err := s.Registry.Resolve(peerID)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := chain.HardVerify(peer)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := chain.Save(""); err != nil {
		writeError(w, err)
		return
	}
	if err := peer.Save(""); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleConfirmVerify spot-checks that the most recent hard-verify
// sub-chain recorded about a peer still matches the chain's own history.
func (s *Server) handleConfirmVerify(w http.ResponseWriter, r *http.Request) {
	chainID, peerID, ok := s.resolvePair(w, r)
	if !ok {
		return
	}

	chain, err := s.Registry.Resolve(chainID)
	if err != nil {
		writeError(w, err)
		return
	}
	peer, err := s.Registry.Resolve(peerID)
	if err != nil {
		writeError(w, err)
		return
	}

	confirmed, err := chain.ConfirmVerify(peer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"confirmed": confirmed})
}
