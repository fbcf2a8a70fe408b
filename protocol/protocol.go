// Package protocol implements a line-oriented text command protocol for
// driving a Connect Four session interactively, in the style of the Go
// Text Protocol: an optional leading integer id, a command name, and
// whitespace-separated arguments, answered with a "= ..." success line or
// a "? ..." error line.
package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/gorgonia/connectfour/board"
	"github.com/gorgonia/connectfour/mcts"
	"github.com/gorgonia/connectfour/session"
)

// Command is one dispatchable protocol verb.
type Command interface {
	Do(args []string, e *Engine) (string, error)
}

type stdlib func(e *Engine) string
type stdlib2 func(e *Engine, args []string) (string, error)

func (f stdlib) Do(args []string, e *Engine) (string, error)  { return f(e), nil }
func (f stdlib2) Do(args []string, e *Engine) (string, error) { return f(e, args) }

// Engine dispatches commands against a single game session, growing search
// trees on demand via its mcts.Engine.
type Engine struct {
	sess   *session.Session
	search *mcts.Engine
	known  map[string]Command

	name, version string
	quit          bool
}

// Quit reports whether a "quit" command has been dispatched.
func (e *Engine) Quit() bool { return e.quit }

// New builds an Engine bound to a fresh session. known may be nil, in
// which case StandardLib() is used.
func New(name, version string, search *mcts.Engine, known map[string]Command) *Engine {
	if known == nil {
		known = StandardLib()
	}
	return &Engine{
		sess:    session.New(),
		search:  search,
		known:   known,
		name:    name,
		version: version,
	}
}

// Session exposes the underlying session for callers such as a renderer
// that need read access to the board.
func (e *Engine) Session() *session.Session { return e.sess }

// Do parses and executes one command line, returning the formatted
// response ("= ..." or "? ...", GTP-style).
func (e *Engine) Do(line string) string {
	id, cmd, args, err := e.parse(line)
	if err != nil {
		return handleErr(id, err)
	}
	if cmd == nil {
		return ""
	}
	result, err := cmd.Do(args, e)
	return handleResult(id, result, err)
}

func (e *Engine) parse(line string) (id int, cmd Command, args []string, err error) {
	line = strings.ToLower(strings.TrimSpace(line))
	tokens := strings.Fields(line)
	id = -1
	if len(tokens) == 0 {
		return id, nil, nil, nil
	}
	if n, convErr := strconv.Atoi(tokens[0]); convErr == nil {
		id = n
		tokens = tokens[1:]
	}
	if len(tokens) == 0 {
		return id, nil, nil, nil
	}

	var ok bool
	if cmd, ok = e.known[tokens[0]]; !ok {
		return id, nil, nil, errors.Errorf("unknown command %q", tokens[0])
	}
	if len(tokens) > 1 {
		args = tokens[1:]
	}
	return id, cmd, args, nil
}

func handleErr(id int, err error) string {
	if id != -1 {
		return fmt.Sprintf("? %d %v\n\n", id, err)
	}
	return fmt.Sprintf("? %v\n\n", err)
}

func handleResult(id int, result string, err error) string {
	if err != nil {
		return handleErr(id, err)
	}
	if id != -1 {
		return fmt.Sprintf("= %d %v\n\n", id, result)
	}
	return fmt.Sprintf("= %v\n\n", result)
}

func protocolVersion(e *Engine) string { return "1" }
func name(e *Engine) string            { return e.name }
func version(e *Engine) string         { return e.version }

func listCommands(e *Engine) string {
	var buf strings.Builder
	for c := range e.known {
		fmt.Fprintf(&buf, "%v\n", c)
	}
	return buf.String()
}

func reset(e *Engine) string {
	e.sess.Reset()
	return ""
}

func quit(e *Engine) string {
	e.quit = true
	return "quit"
}

func undo(e *Engine) string {
	history := e.sess.Look().History
	if len(history) == 0 {
		return ""
	}
	fresh, err := session.NewWithHistory(history[:len(history)-1])
	if err != nil {
		// history minus its last move was itself a valid prefix a moment
		// ago; this can only fail if session's own invariants are broken.
		panic(errors.Wrap(err, "undo: replaying a previously-valid prefix failed"))
	}
	e.sess = fresh
	return ""
}

func showboard(e *Engine) string {
	return fmt.Sprintf("\n%v", e.sess.Board())
}

func legalMoves(e *Engine) string {
	moves := e.sess.LegalMoves()
	strs := make([]string, len(moves))
	for i, m := range moves {
		strs[i] = strconv.Itoa(m)
	}
	return strings.Join(strs, " ")
}

func knownCommand(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("not enough arguments for \"known_command\"")
	}
	if _, ok := e.known[args[0]]; ok {
		return "true", nil
	}
	return "false", nil
}

func play(e *Engine, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("not enough arguments for \"play\"")
	}
	c, err := strconv.Atoi(args[0])
	if err != nil {
		return "", errors.Wrap(err, "play: column must be an integer")
	}
	snap, err := e.sess.Move(c)
	if err != nil {
		return "", err
	}
	if snap.Result != board.InProgress {
		return snap.Result.String(), nil
	}
	return "", nil
}

func genmove(e *Engine, args []string) (string, error) {
	budget := mcts.Iterations(1000)
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return "", errors.Wrap(err, "genmove: iteration count must be an integer")
		}
		budget = mcts.Iterations(n)
	}
	col, err := e.search.Search(e.sess.Look().History, budget)
	if err != nil {
		return "", errors.Wrap(err, "genmove")
	}
	if _, err := e.sess.Move(col); err != nil {
		return "", errors.Wrap(err, "genmove: chosen move was rejected")
	}
	return strconv.Itoa(col), nil
}

// StandardLib returns the default command set: protocol metadata, session
// mutation (play, reset), inspection (showboard, legal_moves), and search
// (genmove).
func StandardLib() map[string]Command {
	return map[string]Command{
		"protocol_version": stdlib(protocolVersion),
		"name":             stdlib(name),
		"version":          stdlib(version),
		"list_commands":    stdlib(listCommands),
		"reset":            stdlib(reset),
		"showboard":        stdlib(showboard),
		"legal_moves":      stdlib(legalMoves),
		"undo":             stdlib(undo),
		"quit":             stdlib(quit),

		"known_command": stdlib2(knownCommand),
		"play":          stdlib2(play),
		"genmove":       stdlib2(genmove),
	}
}
