// Command connectfour plays an interactive game of Connect Four against
// the MCTS engine on the terminal.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gorgonia/connectfour/board"
	"github.com/gorgonia/connectfour/mcts"
	"github.com/gorgonia/connectfour/render"
	"github.com/gorgonia/connectfour/session"
)

func main() {
	human := flag.String("human", "yellow", "which colour the human plays: yellow, red, or none")
	iterations := flag.Int("iterations", 20000, "MCTS iterations per AI move")
	seed := flag.Int64("seed", 0, "random seed for the AI (0 for time-based)")
	gifPath := flag.String("gif", "", "write an animated GIF replay to this path when the game ends")
	flag.Parse()

	humanColour := board.None
	switch strings.ToLower(*human) {
	case "yellow":
		humanColour = board.Yellow
	case "red":
		humanColour = board.Red
	case "none":
		humanColour = board.None
	default:
		fmt.Fprintf(os.Stderr, "unrecognized -human value %q\n", *human)
		os.Exit(1)
	}

	engine := mcts.New(mcts.Config{Seed: *seed})
	sess := session.New()
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("Connect Four. Columns are numbered 0-6, left to right.")

	for {
		snap := sess.Look()
		fmt.Println()
		fmt.Print(sess.Board())

		if snap.Result != board.InProgress {
			announce(snap.Result)
			break
		}

		mover := sess.Board().ToMove()
		var col int
		if mover == humanColour {
			var err error
			col, err = promptMove(reader, sess)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
		} else {
			fmt.Printf("%s is thinking...\n", mover)
			start := time.Now()
			var err error
			col, err = engine.Search(snap.History, mcts.Iterations(*iterations))
			if err != nil {
				fmt.Fprintf(os.Stderr, "search failed: %v\n", err)
				break
			}
			fmt.Printf("%s plays column %d (%v)\n", mover, col, time.Since(start).Round(time.Millisecond))
		}

		if _, err := sess.Move(col); err != nil {
			if mover == humanColour {
				fmt.Fprintf(os.Stderr, "column %d cannot be played: %v\n", col, err)
				continue
			}
			fmt.Fprintf(os.Stderr, "internal error applying move %d: %v\n", col, err)
			break
		}
	}

	if *gifPath != "" {
		if err := writeReplay(*gifPath, sess); err != nil {
			fmt.Fprintf(os.Stderr, "could not write replay: %v\n", err)
		} else {
			fmt.Printf("wrote replay to %s\n", *gifPath)
		}
	}
}

func announce(result board.Result) {
	switch result {
	case board.YellowWins:
		fmt.Println("Yellow wins!")
	case board.RedWins:
		fmt.Println("Red wins!")
	case board.Draw:
		fmt.Println("It's a draw.")
	}
}

func promptMove(reader *bufio.Reader, sess *session.Session) (int, error) {
	fmt.Printf("legal moves: %v\nyour move: ", sess.LegalMoves())
	line, err := reader.ReadString('\n')
	if err != nil {
		return 0, fmt.Errorf("reading input: %w", err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("%q is not a column number", strings.TrimSpace(line))
	}
	return col, nil
}

func writeReplay(path string, sess *session.Session) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return render.WriteGIF(f, sess.Look().History)
}
