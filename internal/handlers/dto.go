package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/schema"

	"github.com/sweepcore/sweepd/internal/board"
	"github.com/sweepcore/sweepd/internal/session"
)

type NewGameDTO struct {
	Width     int `schema:"width,required"`
	Height    int `schema:"height,required"`
	MineCount int `schema:"mine_count,required"`
}

func decodeNewGame(src map[string][]string) (NewGameDTO, error) {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	var dto NewGameDTO
	err := dec.Decode(&dto, src)
	return dto, err
}

type Position struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

func decodePosition(src map[string][]string) (Position, error) {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	var pos Position
	err := dec.Decode(&pos, src)
	return pos, err
}

type GameMove uint8

const (
	Open GameMove = iota + 1
	Flag
	Chord
)

func (m GameMove) String() string {
	switch m {
	case Open:
		return "open"
	case Flag:
		return "flag"
	case Chord:
		return "chord"
	default:
		return fmt.Sprintf("GameMove(%d)", uint8(m))
	}
}

var ErrBadMove = fmt.Errorf("move must be one of 'open', 'flag', 'chord'")

func decodeGameMove(s string) (move GameMove, err error) {
	switch strings.ToLower(s) {
	case "open":
		move = Open
	case "flag":
		move = Flag
	case "chord":
		move = Chord
	default:
		err = ErrBadMove
	}
	return
}

type CellDTO struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	State string `json:"state"`
	// Adjacent and Mine are only meaningful for revealed cells
	Adjacent int  `json:"adjacent"`
	Mine     bool `json:"mine"`
}

func newCellDTO(u board.CellUpdate) CellDTO {
	return CellDTO{
		X:        u.X,
		Y:        u.Y,
		State:    u.Visibility.String(),
		Adjacent: u.Adjacent,
		Mine:     u.Mine,
	}
}

func newCellDTOs(updates []board.CellUpdate) []CellDTO {
	cells := make([]CellDTO, len(updates))
	for i, u := range updates {
		cells[i] = newCellDTO(u)
	}
	return cells
}

// SessionDTO is the full session view: parameters, state and every
// cell as the player currently knows it. Token is only set on the
// response that creates the session.
type SessionDTO struct {
	SessionID      int64      `json:"session_id"`
	StartedAt      time.Time  `json:"started_at"`
	EndedAt        *time.Time `json:"ended_at,omitempty"`
	Width          int        `json:"width"`
	Height         int        `json:"height"`
	MineCount      int        `json:"mine_count"`
	State          string     `json:"state"`
	FlagsRemaining int        `json:"flags_remaining"`
	Cells          []CellDTO  `json:"cells"`
	Token          string     `json:"token,omitempty"`
}

func newSessionDTO(s *session.Session, g *board.Game) SessionDTO {
	return SessionDTO{
		SessionID:      s.ID,
		StartedAt:      s.StartedAt,
		EndedAt:        s.EndedAt,
		Width:          g.Width(),
		Height:         g.Height(),
		MineCount:      g.MineCount(),
		State:          g.State().String(),
		FlagsRemaining: g.FlagsRemaining(),
		Cells:          newCellDTOs(g.View()),
	}
}

// MoveResultDTO carries only the delta a move produced.
type MoveResultDTO struct {
	SessionID      int64      `json:"session_id"`
	State          string     `json:"state"`
	FlagsRemaining int        `json:"flags_remaining"`
	Cells          []CellDTO  `json:"cells"`
	EndedAt        *time.Time `json:"ended_at,omitempty"`
}

func newMoveResultDTO(s *session.Session, u board.Update) MoveResultDTO {
	return MoveResultDTO{
		SessionID:      s.ID,
		State:          u.State.String(),
		FlagsRemaining: u.FlagsRemaining,
		Cells:          newCellDTOs(u.Cells),
		EndedAt:        s.EndedAt,
	}
}
