package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minesweeper-agent/internal/player"
)

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"state": 0,
	"step":  0,
	"auto":  0,
	"flag":  2,
}

// parseCommand splits one watch-socket line into a command name and its
// arguments, checking the argument count against commandNargs.
func parseCommand(line string) (name string, args []string, err error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return "", nil, errors.New("empty command")
	}
	name, args = parts[0], parts[1:]
	nargs, ok := commandNargs[name]
	if !ok {
		return "", nil, fmt.Errorf("unknown command %q", name)
	}
	if len(args) != nargs {
		return "", nil, fmt.Errorf("%s takes %d argument(s), got %d", name, nargs, len(args))
	}
	return name, args, nil
}

func parseXY(twoStrings []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("first argument must be an int")
		return
	}
	if y, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("second argument must be an int")
		return
	}
	return
}

// executeCommand runs one text command from a watch socket and writes its
// response frames. "auto" streams every move as it is played.
func executeCommand(
	c *websocket.Conn, session *GameSession, p *player.Player, line string,
) error {
	name, args, err := parseCommand(line)
	if err != nil {
		return err
	}
	switch name {
	case "state":
		return c.WriteJSON(sessionJSON(session, p))
	case "step":
		move, _ := p.Step()
		return c.WriteJSON(StepJSON{Move: move, Session: sessionJSON(session, p)})
	case "auto":
		for {
			move, ok := p.Step()
			if !ok {
				break
			}
			if err := c.WriteJSON(StepJSON{
				Move: move, Session: sessionJSON(session, p),
			}); err != nil {
				return err
			}
		}
		return nil
	case "flag":
		x, y, err := parseXY(args)
		if err != nil {
			return err
		}
		if !p.State().Board.PointInBounds(x, y) {
			return errors.New("invalid square coordinates")
		}
		p.State().FlagCell(x, y)
		return c.WriteJSON(sessionJSON(session, p))
	}
	return errors.New("invalid command")
}
