// Package server exposes the chain store over HTTP, grounded on the
// walletserver's controller/routes split (gorilla/mux router, a thin
// controller per resource, services left to the core package directly
// since this domain has no separate persistence-vs-business split the
// way wallet key management does).
package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stevehazel/DUO/internal/config"
)

// Server wires a chain cache and cross-chain registry into a set of
// HTTP handlers.
type Server struct {
	Cache    *ChainStore
	Registry *RegistryHandle
	Config   config.Config
}

// New constructs a Server over the given chain directory.
func New(cfg config.Config, store *ChainStore, registry *RegistryHandle) *Server {
	return &Server{Cache: store, Registry: registry, Config: cfg}
}

// Router builds the full route table. Grounded on the walletserver's
// routes.Register.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(Logger)

	r.HandleFunc("/chains", s.handleInitChain).Methods(http.MethodPost)
	r.HandleFunc("/chains/{uuid}", s.handleGetChain).Methods(http.MethodGet)
	r.HandleFunc("/chains/{uuid}/stats", s.handleStats).Methods(http.MethodGet)
	r.HandleFunc("/chains/{uuid}/blocks", s.handleBlockQuery).Methods(http.MethodGet)
	r.HandleFunc("/chains/{uuid}/blocks/{hash}", s.handleGetBlock).Methods(http.MethodGet)

	r.HandleFunc("/chains/{uuid}/signals", s.handleSendSignal).Methods(http.MethodPost)
	r.HandleFunc("/chains/{uuid}/signals/deliver", s.handleDeliverSignal).Methods(http.MethodPost)

	r.HandleFunc("/chains/{uuid}/credibility", s.handleCredibility).Methods(http.MethodGet)

	r.HandleFunc("/verify/cross", s.handleCrossVerify).Methods(http.MethodPost)
	r.HandleFunc("/verify/hard", s.handleHardVerify).Methods(http.MethodPost)
	r.HandleFunc("/verify/confirm", s.handleConfirmVerify).Methods(http.MethodPost)

	return r
}
