package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/stevehazel/DUO/core"
)

type sendSignalRequest struct {
	DestChainID string                 `json:"dest_chain_id"`
	SignalData  map[string]interface{} `json:"signal_data"`
	Amount      string                 `json:"amount"`
}

// handleSendSignal appends a SignalSent on the path chain, then drives
// the cross-chain settlement against the registered destination, per
// the five-block send/receive/reward protocol.
func (s *Server) handleSendSignal(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["uuid"]
	chain, err := s.Registry.Resolve(id)
	if err != nil {
		writeError(w, err)
		return
	}

	var req sendSignalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body: " + err.Error()})
		return
	}

	var amount *core.Amount
	if req.Amount != "" {
		d, err := decimal.NewFromString(req.Amount)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid amount: " + err.Error()})
			return
		}
		amount = &d
	}

	block, err := chain.SendSignal(req.DestChainID, req.SignalData, amount)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.Registry.Core().SendCrossChainSignal(chain, req.DestChainID, block.Hdr.Hash, req.SignalData, amount); err != nil {
		writeError(w, err)
		return
	}

	raw, err := block.MarshalJSON()
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	w.Write(raw)
}

type deliverSignalRequest struct {
	SrcChainID             string `json:"src_chain_id"`
	ReceiveSignalBlockHash string `json:"receive_signal_block_hash"`
	ActivityID             string `json:"activity_id"`
	Cost                   int    `json:"cost"`
	Amount                 string `json:"amount"`
}

// handleDeliverSignal records that a previously received signal was
// acted on locally, appending the SignalDelivered block.
func (s *Server) handleDeliverSignal(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["uuid"]
	chain, err := s.Registry.Resolve(id)
	if err != nil {
		writeError(w, err)
		return
	}

	var req deliverSignalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid body: " + err.Error()})
		return
	}

	var amount *core.Amount
	if req.Amount != "" {
		d, err := decimal.NewFromString(req.Amount)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid amount: " + err.Error()})
			return
		}
		amount = &d
	}

	block, err := chain.DeliverSignal(req.SrcChainID, req.ReceiveSignalBlockHash, req.ActivityID, req.Cost, amount)
	if err != nil {
		writeError(w, err)
		return
	}

	raw, err := block.MarshalJSON()
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	w.Write(raw)
}
