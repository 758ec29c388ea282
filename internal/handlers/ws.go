package handlers

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
	"time"

	"net/http"

	"github.com/gorilla/websocket"

	"github.com/sweepcore/sweepd/internal/board"
	"github.com/sweepcore/sweepd/internal/session"
)

func iterBySep(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

func parseXY(twoStrings []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = fmt.Errorf("first argument must be an int")
		return
	}
	if y, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = fmt.Errorf("second argument must be an int")
		return
	}
	return
}

var commandNargs = map[string]int{
	"o": 2, // open
	"f": 2, // flag
	"c": 2, // chord
	"r": 0, // restart
	"q": 0, // forfeit
}

func applyCommand(s *session.Session, c string) error {
	parts := strings.Split(strings.TrimSpace(c), " ")

	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return fmt.Errorf("unknown command %q", parts[0])
	}
	if nargs != len(parts)-1 {
		return fmt.Errorf("command %q wants %d arguments", parts[0], nargs)
	}

	var x, y int
	if nargs == 2 {
		var err error
		if x, y, err = parseXY(parts[1:]); err != nil {
			return err
		}
	}

	var update board.Update
	s.Do(func(g *board.Game) {
		switch parts[0] {
		case "o":
			update = g.Reveal(x, y)
		case "f":
			update = g.ToggleFlag(x, y)
		case "c":
			update = g.Chord(x, y)
		case "r":
			update = g.Restart()
		case "q":
			update = g.Forfeit()
		}
	})
	if parts[0] == "r" {
		s.ClearEnded()
	} else if update.State != board.Playing {
		s.MarkEnded(time.Now().UTC())
	}
	return nil
}

// ConnectWS upgrades the connection and plays the session over a
// newline-separated command stream ("o x y", "f x y", "c x y", "r",
// "q"), answering every message with the full session view.
func (h GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s, ok := h.findAuthorizedSession(w, r)
	if !ok {
		return
	}

	c, err := h.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Error("unable to upgrade")
		return
	}
	defer c.Close()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				h.log.WithError(err).Warn("abnormal ws break")
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}

		text := strings.TrimSpace(string(message))
		h.log.Debugf("\t> %s", text)
		for _, line := range iterBySep(text, "\n") {
			if err := applyCommand(s, line); err != nil {
				h.log.WithError(err).Error("unable to process command")
				if werr := c.WriteJSON(map[string]string{"error": err.Error()}); werr != nil {
					h.log.WithError(werr).Error("unable to write json")
				}
				return
			}
		}

		var view SessionDTO
		s.Do(func(g *board.Game) {
			view = newSessionDTO(s, g)
		})
		if err := c.WriteJSON(view); err != nil {
			h.log.WithError(err).Error("unable to write json")
			break
		}
		h.log.Debug("\t< <session view>")
	}
}
