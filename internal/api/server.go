package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"finsim/internal/config"
	"finsim/internal/game"
	"finsim/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// session is one player's exclusive game. Every operation read-then-
// writes the whole aggregate, so access is serialized per session.
type session struct {
	mu         sync.Mutex
	playerName string
	eng        *game.Engine
}

type Server struct {
	cfg   config.APIConfig
	log   *slog.Logger
	store store.Store

	mu       sync.Mutex
	sessions map[string]*session

	mux *chi.Mux
}

func New(cfg config.APIConfig, logger *slog.Logger, st store.Store) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:      cfg,
		log:      logger,
		store:    st,
		sessions: make(map[string]*session),
		mux:      chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/games", s.handleCreateGame)
		r.Route("/games/{id}", func(r chi.Router) {
			r.Get("/state", s.handleState)
			r.Get("/assets", s.handleAssets)
			r.Get("/history", s.handleHistory)
			r.Get("/log", s.handleLog)
			r.Get("/events", s.handleEvents)
			r.Get("/career", s.handleCareerLadder)

			r.Post("/advance", s.handleAdvance)
			r.Post("/orders", s.handleOrder)
			r.Post("/career/upgrade", s.handleCareerUpgrade)
			r.Post("/events/{event_id}/resolve", s.handleResolveEvent)
			r.Post("/wallet", s.handleWallet)
			r.Post("/reset", s.handleReset)
		})
	})
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var in struct {
		PlayerName string `json:"player_name"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	name := strings.TrimSpace(in.PlayerName)
	if name == "" {
		writeError(w, http.StatusBadRequest, "player_name is required")
		return
	}

	rng := newRNG(s.cfg.Seed)
	var eng *game.Engine
	snap, err := s.store.Load(r.Context(), name)
	switch {
	case err == nil:
		eng = game.NewEngineFromSnapshot(snap, s.log, rng)
	case errors.Is(err, store.ErrNotFound):
		eng = game.NewEngine(s.log, rng)
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	eng.SetEventChance(s.cfg.EventChance)

	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &session{playerName: name, eng: eng}
	s.mu.Unlock()

	s.log.Info("game session opened", "game_id", id, "player", name)
	writeJSON(w, http.StatusCreated, map[string]any{
		"game_id": id,
		"state":   eng.StateView(),
	})
}

func (s *Server) session(r *http.Request) (*session, bool) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// withSession runs op while holding the session lock, then persists the
// snapshot. The engine mutation already happened by the time a save
// failure can occur; that failure is reported but not rolled back.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, op func(sess *session) error) {
	sess, ok := s.session(r)
	if !ok {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := op(sess); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.Save(r.Context(), sess.playerName, sess.eng.Snapshot()); err != nil {
		s.log.Error("snapshot save failed", "player", sess.playerName, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to persist game")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"state": sess.eng.StateView()})
}

func (s *Server) readSession(w http.ResponseWriter, r *http.Request, render func(sess *session) any) {
	sess, ok := s.session(r)
	if !ok {
		writeError(w, http.StatusNotFound, "game not found")
		return
	}
	sess.mu.Lock()
	payload := render(sess)
	sess.mu.Unlock()
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.readSession(w, r, func(sess *session) any {
		return map[string]any{"state": sess.eng.StateView()}
	})
}

func (s *Server) handleAssets(w http.ResponseWriter, r *http.Request) {
	s.readSession(w, r, func(sess *session) any {
		return map[string]any{"assets": sess.eng.AssetViews()}
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	s.readSession(w, r, func(sess *session) any {
		return map[string]any{"history": sess.eng.History()}
	})
}

func (s *Server) handleLog(w http.ResponseWriter, r *http.Request) {
	s.readSession(w, r, func(sess *session) any {
		return map[string]any{"log": sess.eng.Log()}
	})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	s.readSession(w, r, func(sess *session) any {
		return map[string]any{"events": sess.eng.PendingEvents()}
	})
}

func (s *Server) handleCareerLadder(w http.ResponseWriter, r *http.Request) {
	s.readSession(w, r, func(sess *session) any {
		return map[string]any{
			"ladder":  game.CareerLadderConfigs(),
			"current": sess.eng.Player().Career,
		}
	})
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *session) error {
		sess.eng.AdvanceYear()
		return nil
	})
}

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	var in struct {
		AssetID  string  `json:"asset_id"`
		Side     string  `json:"side"`
		Quantity float64 `json:"quantity"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	side := strings.ToLower(strings.TrimSpace(in.Side))
	if side != "buy" && side != "sell" {
		writeError(w, http.StatusBadRequest, "side must be buy or sell")
		return
	}
	s.withSession(w, r, func(sess *session) error {
		if side == "buy" {
			return sess.eng.BuyAsset(in.AssetID, in.Quantity)
		}
		return sess.eng.SellAsset(in.AssetID, in.Quantity)
	})
}

func (s *Server) handleCareerUpgrade(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *session) error {
		sess.eng.UpgradeCareer()
		return nil
	})
}

func (s *Server) handleResolveEvent(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Choice *int `json:"choice"`
	}
	// Resolving without a choice may come with an empty body.
	if err := decodeJSON(r, &in); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	choice := -1
	if in.Choice != nil {
		choice = *in.Choice
	}
	eventID := chi.URLParam(r, "event_id")
	s.withSession(w, r, func(sess *session) error {
		sess.eng.ResolveEvent(eventID, choice)
		return nil
	})
}

func (s *Server) handleWallet(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Op     string  `json:"op"`
		Amount float64 `json:"amount"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	op := strings.ToLower(strings.TrimSpace(in.Op))
	s.withSession(w, r, func(sess *session) error {
		switch op {
		case "deposit":
			return sess.eng.AddMoney(in.Amount)
		case "spend":
			return sess.eng.SpendMoney(in.Amount)
		default:
			return game.ErrUnknownOp
		}
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *session) error {
		sess.eng.ResetGame()
		return nil
	})
}

func newRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
