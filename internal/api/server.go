package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lassiter/cryptolang/internal/driver"
	"github.com/lassiter/cryptolang/internal/persist"
)

// Server is the read-only monitoring HTTP server: one chi.Mux exposing a
// live driver.Driver's current state and, when a run log is attached,
// history queries over it. Grounded on server/api/api.go's API type, which
// likewise bundles a router-facing handler set around a backend service.
type Server struct {
	Auth   Authenticator
	Drv    *driver.Driver
	Log    *persist.RunLog // nil disables /agents/{id}/history
	router chi.Router
}

// New builds a Server and its route table. Routes are: POST /login
// (public, exchanges the admin password for a bearer token), and
// GET /status, GET /agents, GET /agents/{id}/history (all behind
// Auth.Middleware), per SPEC_FULL.md's domain-stack description.
func New(auth Authenticator, drv *driver.Driver, log *persist.RunLog) *Server {
	s := &Server{Auth: auth, Drv: drv, Log: log}

	r := chi.NewRouter()
	r.Post("/login", s.handleLogin)
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware)
		r.Get("/status", s.handleStatus)
		r.Get("/agents", s.handleAgents)
		r.Get("/agents/{id}/history", s.handleAgentHistory)
	})
	s.router = r

	return s
}

// Handler returns the server's http.Handler, ready to pass to
// http.ListenAndServe or httptest.NewServer.
func (s *Server) Handler() http.Handler {
	return s.router
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (s *Server) handleLogin(w http.ResponseWriter, req *http.Request) {
	var body loginRequest
	if err := parseJSON(req, &body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tok, err := s.Auth.IssueToken(body.Password)
	if err != nil {
		http.Error(w, "incorrect admin password", http.StatusUnauthorized)
		return
	}

	renderJSON(w, http.StatusOK, loginResponse{Token: tok})
}

type statusResponse struct {
	Time        float64 `json:"time"`
	EndTime     float64 `json:"end_time"`
	Verbose     bool    `json:"verbose"`
	CoinCount   int     `json:"coin_count"`
	TraderCount int     `json:"trader_count"`
	LeavedCount int     `json:"leaved_count"`
}

func (s *Server) handleStatus(w http.ResponseWriter, req *http.Request) {
	mkt := s.Drv.Market
	renderJSON(w, http.StatusOK, statusResponse{
		Time:        mkt.Time,
		EndTime:     mkt.EndTime,
		Verbose:     mkt.Verbose,
		CoinCount:   len(s.Drv.Coins),
		TraderCount: len(s.Drv.Traders),
		LeavedCount: len(mkt.Leaved),
	})
}

type agentSummary struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Kind string  `json:"kind"`
	// Value holds a coin's current price or a trader's current cash
	// balance, whichever this agent is.
	Value  float64 `json:"value"`
	Leaved bool    `json:"leaved,omitempty"`
}

func (s *Server) handleAgents(w http.ResponseWriter, req *http.Request) {
	agents := make([]agentSummary, 0, len(s.Drv.Coins)+len(s.Drv.Traders))
	for _, c := range s.Drv.Coins {
		agents = append(agents, agentSummary{ID: c.ID.String(), Name: c.Name, Kind: "coin", Value: c.Value})
	}
	for _, t := range s.Drv.Traders {
		agents = append(agents, agentSummary{
			ID: t.ID.String(), Name: t.Name, Kind: "trader",
			Value: t.Money, Leaved: s.Drv.Market.Leaved[t],
		})
	}
	renderJSON(w, http.StatusOK, agents)
}

func (s *Server) handleAgentHistory(w http.ResponseWriter, req *http.Request) {
	if s.Log == nil {
		http.Error(w, "run log is not enabled for this run", http.StatusNotFound)
		return
	}

	id, err := uuid.Parse(chi.URLParam(req, "id"))
	if err != nil {
		http.Error(w, "id must be a UUID", http.StatusBadRequest)
		return
	}

	if coinHist, err := s.Log.CoinHistoryByID(req.Context(), id); err == nil {
		renderJSON(w, http.StatusOK, coinHist)
		return
	} else if !errors.Is(err, persist.ErrNotFound) {
		http.Error(w, "an internal error occurred", http.StatusInternalServerError)
		return
	}

	if traderHist, err := s.Log.TraderHistoryByID(req.Context(), id); err == nil {
		renderJSON(w, http.StatusOK, traderHist)
		return
	} else if !errors.Is(err, persist.ErrNotFound) {
		http.Error(w, "an internal error occurred", http.StatusInternalServerError)
		return
	}

	http.Error(w, "no history found for that agent id", http.StatusNotFound)
}

// renderJSON mirrors server.go's renderJSON: marshal v and write it with
// the given status code.
func renderJSON(w http.ResponseWriter, status int, v interface{}) {
	js, err := json.Marshal(v)
	if err != nil {
		log.Printf("api: marshaling response: %v", err)
		http.Error(w, "an internal error occurred", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)
}

// parseJSON mirrors server.go's parseJSON: decode req's body into v, which
// must be a pointer.
func parseJSON(req *http.Request, v interface{}) error {
	defer req.Body.Close()
	data, err := io.ReadAll(req.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
