// Package server exposes games over a JSON HTTP API. Every request loads the
// game from the store, applies the change and saves it back, so the process
// keeps no game state of its own.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/appengine-ltd/money-smartz/internal/game"
	"github.com/appengine-ltd/money-smartz/internal/parser"
	"github.com/appengine-ltd/money-smartz/internal/storage"
)

const (
	requestTimeout   = 10 * time.Second
	maxAdvanceMonths = 600
)

type Server struct {
	store   storage.Store
	opts    []game.Option
	locks   *gameLocks
	parser  *parser.Parser
	metrics fasthttp.RequestHandler
}

// New builds a server over store. metrics serves GET /metrics and may be nil.
// opts are applied to every game the server creates or loads.
func New(store storage.Store, metrics fasthttp.RequestHandler, opts ...game.Option) *Server {
	return &Server{
		store:   store,
		opts:    opts,
		locks:   newGameLocks(),
		parser:  parser.New(),
		metrics: metrics,
	}
}

// Handler returns the routed, logged request handler.
func (s *Server) Handler() fasthttp.RequestHandler {
	return withLogging(s.route)
}

func (s *Server) route(ctx *fasthttp.RequestCtx) {
	method := string(ctx.Method())
	parts := strings.Split(strings.Trim(string(ctx.Path()), "/"), "/")

	switch {
	case len(parts) == 1 && parts[0] == "healthz":
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
	case len(parts) == 1 && parts[0] == "metrics" && s.metrics != nil:
		s.metrics(ctx)
	case len(parts) == 1 && parts[0] == "games":
		switch method {
		case fasthttp.MethodPost:
			s.handleCreate(ctx)
		case fasthttp.MethodGet:
			s.handleList(ctx)
		default:
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		}
	case len(parts) == 2 && parts[0] == "games":
		switch method {
		case fasthttp.MethodGet:
			s.handleGet(ctx, parts[1])
		case fasthttp.MethodDelete:
			s.handleDelete(ctx, parts[1])
		default:
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		}
	case len(parts) == 3 && parts[0] == "games" && method == fasthttp.MethodPost:
		switch parts[2] {
		case "advance":
			s.handleAdvance(ctx, parts[1])
		case "commands":
			s.handleCommand(ctx, parts[1])
		default:
			writeError(ctx, fasthttp.StatusNotFound, "Not found")
		}
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func (s *Server) handleCreate(ctx *fasthttp.RequestCtx) {
	var req CreateGameRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	config := game.Config{PlayerName: req.PlayerName, Seed: req.Seed}
	if req.Rules != nil {
		config.Rules = *req.Rules
	}
	g, err := game.NewGame(config, s.opts...)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	rctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	id, err := s.save(rctx, "", g)
	if err != nil {
		writeStoreError(ctx, err)
		return
	}
	slog.Info("game created", "game_id", id, "player", g.Player.Name, "seed", g.Config.Seed)
	writeJSON(ctx, fasthttp.StatusCreated, newGameView(id, g))
}

func (s *Server) handleList(ctx *fasthttp.RequestCtx) {
	rctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	saves, err := s.store.ListGames(rctx)
	if err != nil {
		writeStoreError(ctx, err)
		return
	}
	items := make([]GameListItem, 0, len(saves))
	for _, sv := range saves {
		items = append(items, newGameListItem(sv))
	}
	writeJSON(ctx, fasthttp.StatusOK, items)
}

func (s *Server) handleGet(ctx *fasthttp.RequestCtx, id string) {
	rctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	g, err := s.load(rctx, id)
	if err != nil {
		writeStoreError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, newGameView(id, g))
}

func (s *Server) handleDelete(ctx *fasthttp.RequestCtx, id string) {
	unlock := s.locks.lock(id)
	defer unlock()

	rctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	if err := s.store.DeleteGame(rctx, id); err != nil {
		writeStoreError(ctx, err)
		return
	}
	slog.Info("game deleted", "game_id", id)
	ctx.SetStatusCode(fasthttp.StatusNoContent)
}

func (s *Server) handleAdvance(ctx *fasthttp.RequestCtx, id string) {
	req := AdvanceRequest{Months: 1}
	if body := ctx.PostBody(); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
	}
	if req.Months < 1 || req.Months > maxAdvanceMonths {
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Sprintf("months must be between 1 and %d", maxAdvanceMonths))
		return
	}

	unlock := s.locks.lock(id)
	defer unlock()

	rctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	g, err := s.load(rctx, id)
	if err != nil {
		writeStoreError(ctx, err)
		return
	}
	reports, err := g.AdvanceMonths(req.Months)
	if errors.Is(err, game.ErrGameOver) && len(reports) == 0 {
		writeError(ctx, fasthttp.StatusConflict, "The game is over.")
		return
	}
	if _, err := s.save(rctx, id, g); err != nil {
		writeStoreError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, AdvanceResponse{Game: newGameView(id, g), Reports: reports})
}

func (s *Server) handleCommand(ctx *fasthttp.RequestCtx, id string) {
	var req CommandRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	unlock := s.locks.lock(id)
	defer unlock()

	rctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	g, err := s.load(rctx, id)
	if err != nil {
		writeStoreError(ctx, err)
		return
	}

	pctx := parser.ParseContext{}
	for _, a := range g.Player.Assets {
		pctx.Assets = append(pctx.Assets, a.Name)
	}
	intent := s.parser.Parse(pctx, req.Command)
	if intent.Clarify != nil {
		resp := CommandResponse{Message: intent.Clarify.Prompt, Game: newGameView(id, g)}
		for _, opt := range intent.Clarify.Options {
			resp.Clarify = append(resp.Clarify, parser.IntentToCommandString(opt))
		}
		writeJSON(ctx, fasthttp.StatusOK, resp)
		return
	}
	switch s.parser.HandlerKey(intent.Verb) {
	case "save", "load":
		writeError(ctx, fasthttp.StatusBadRequest, "Games are saved after every request; use the /games endpoints to load one.")
		return
	}

	res := g.ExecuteCommand(parser.IntentToCommandString(intent))
	if _, err := s.save(rctx, id, g); err != nil {
		writeStoreError(ctx, err)
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, CommandResponse{
		Handled: res.Handled,
		Message: res.Message,
		Reports: res.Reports,
		Game:    newGameView(id, g),
	})
}

func (s *Server) load(ctx context.Context, id string) (*game.Game, error) {
	save, err := s.store.LoadGame(ctx, id)
	if err != nil {
		return nil, err
	}
	return save.Game(s.opts...)
}

func (s *Server) save(ctx context.Context, id string, g *game.Game) (string, error) {
	save, err := storage.NewSave(id, g)
	if err != nil {
		return "", err
	}
	if err := s.store.SaveGame(ctx, save); err != nil {
		return "", err
	}
	return save.ID, nil
}

func writeStoreError(ctx *fasthttp.RequestCtx, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		writeError(ctx, fasthttp.StatusNotFound, "Game not found")
		return
	}
	slog.Error("store failure", "path", string(ctx.Path()), "error", err)
	writeError(ctx, fasthttp.StatusInternalServerError, "Internal error")
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, ErrorResponse{Status: status, Message: message})
}

// withLogging logs every request with its status and duration.
func withLogging(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		next(ctx)
		status := ctx.Response.StatusCode()
		attrs := []any{
			"method", string(ctx.Method()),
			"path", string(ctx.Path()),
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		switch {
		case status >= 500:
			slog.Error("HTTP error", attrs...)
		case status >= 400:
			slog.Warn("HTTP error", attrs...)
		default:
			slog.Info("HTTP ok", attrs...)
		}
	}
}
