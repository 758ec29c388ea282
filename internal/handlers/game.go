package handlers

import (
	"errors"
	"hash/maphash"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sweepcore/sweepd/internal/board"
	"github.com/sweepcore/sweepd/internal/config"
	"github.com/sweepcore/sweepd/internal/middleware"
	"github.com/sweepcore/sweepd/internal/session"
)

type GameHandler struct {
	log    *logrus.Logger
	store  *session.Store
	tokens *config.Tokens
	ws     *config.WebSocket
}

func NewGameHandler(
	log *logrus.Logger,
	store *session.Store,
	tokens *config.Tokens,
	ws *config.WebSocket,
) *GameHandler {
	return &GameHandler{
		log:    log,
		store:  store,
		tokens: tokens,
		ws:     ws,
	}
}

// each game gets its own rand so concurrent sessions never share one
func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (h GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := decodeNewGame(r.URL.Query())
	if err != nil {
		badRequest(w, h.log, err)
		return
	}

	game, err := board.NewGame(dto.Width, dto.Height, dto.MineCount, createRand())
	if err != nil {
		var ice board.InvalidConfigError
		if errors.As(err, &ice) {
			badRequest(w, h.log, err)
		} else {
			internalError(w, h.log, "unable to create a new game", err)
		}
		return
	}

	s := h.store.Create(game)

	token, err := h.tokens.Sign(s.ID)
	if err != nil {
		internalError(w, h.log, "unable to sign session token", err)
		return
	}

	h.log.WithFields(logrus.Fields{
		"sessionId": s.ID,
		"width":     dto.Width,
		"height":    dto.Height,
		"mineCount": dto.MineCount,
	}).Info("created game session")

	var view SessionDTO
	s.Do(func(g *board.Game) {
		view = newSessionDTO(s, g)
	})
	view.Token = token
	sendJSONOrLog(w, h.log, view)
}

func (h GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, ok := h.findSession(w, r)
	if !ok {
		return
	}

	var view SessionDTO
	s.Do(func(g *board.Game) {
		view = newSessionDTO(s, g)
	})
	sendJSONOrLog(w, h.log, view)
}

func (h GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	move, err := decodeGameMove(query.Get("move"))
	if err != nil {
		badRequest(w, h.log, err)
		return
	}

	pos, err := decodePosition(query)
	if err != nil {
		badRequest(w, h.log, err)
		return
	}

	s, ok := h.findAuthorizedSession(w, r)
	if !ok {
		return
	}

	var (
		update   board.Update
		inBounds bool
	)
	s.Do(func(g *board.Game) {
		inBounds = 0 <= pos.X && pos.X < g.Width() && 0 <= pos.Y && pos.Y < g.Height()
		if !inBounds {
			return
		}
		switch move {
		case Open:
			update = g.Reveal(pos.X, pos.Y)
		case Flag:
			update = g.ToggleFlag(pos.X, pos.Y)
		case Chord:
			update = g.Chord(pos.X, pos.Y)
		}
	})
	if !inBounds {
		badRequest(w, h.log, errors.New("invalid cell position"))
		return
	}
	if update.State != board.Playing {
		s.MarkEnded(time.Now().UTC())
	}

	sendJSONOrLog(w, h.log, newMoveResultDTO(s, update))
}

func (h GameHandler) Restart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.findAuthorizedSession(w, r)
	if !ok {
		return
	}

	s.ClearEnded()
	var view SessionDTO
	s.Do(func(g *board.Game) {
		g.Restart()
		view = newSessionDTO(s, g)
	})

	h.log.WithField("sessionId", s.ID).Info("restarted game session")
	sendJSONOrLog(w, h.log, view)
}

func (h GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	s, ok := h.findAuthorizedSession(w, r)
	if !ok {
		return
	}

	var update board.Update
	s.Do(func(g *board.Game) {
		update = g.Forfeit()
	})
	s.MarkEnded(time.Now().UTC())

	sendJSONOrLog(w, h.log, newMoveResultDTO(s, update))
}

func (h GameHandler) findSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		notFound(w)
		return nil, false
	}
	s, err := h.store.Get(id)
	if errors.Is(err, session.ErrNotFound) {
		notFound(w)
		return nil, false
	}
	if err != nil {
		internalError(w, h.log, "unable to fetch session", err)
		return nil, false
	}
	return s, true
}

// findAuthorizedSession is findSession plus proof of ownership: the
// request must carry the token issued when the session was created.
func (h GameHandler) findAuthorizedSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, ok := h.findSession(w, r)
	if !ok {
		return nil, false
	}
	claims, ok := middleware.SessionClaims(r)
	if !ok || claims.SessionID != s.ID {
		unauthorized(w)
		return nil, false
	}
	return s, true
}
