package efg

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Extension is the file extension of the written format.
const Extension = ".efg"

// ErrSerialization wraps every failure to persist a game.
var ErrSerialization = errors.New("serialization failed")

// Write encodes the game in .efg format: a header with the title and
// player names, a comment line, then one line per node in depth-first
// pre-order.
func (g *Game) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)

	names := make([]string, len(g.players))
	for i, p := range g.players {
		names[i] = quote(p.Label)
	}
	fmt.Fprintf(bw, "EFG 2 R %s { %s }\n", quote(g.Title), strings.Join(names, " "))
	fmt.Fprintf(bw, "%s\n\n", quote(g.Comment))

	var werr error
	g.walk(g.root, func(n *Node) {
		if werr == nil {
			werr = g.writeNode(bw, n)
		}
	})
	if werr != nil {
		return werr
	}
	return bw.Flush()
}

func (g *Game) writeNode(w *bufio.Writer, n *Node) error {
	if n.IsTerminal() {
		fmt.Fprintf(w, "t %s ", quote(n.Label))
	} else {
		s := n.infoset
		actions := make([]string, len(s.actions))
		for i, a := range s.actions {
			actions[i] = quote(a.Label)
		}
		fmt.Fprintf(w, "p %s %d %d %s { %s } ",
			quote(n.Label), s.player.number, s.Number(), quote(s.Label), strings.Join(actions, " "))
	}

	if n.outcome == nil {
		_, err := w.WriteString("0\n")
		return err
	}
	payoffs := make([]string, len(g.players))
	for i, p := range g.players {
		payoffs[i] = FormatPayoff(n.outcome.Payoff(p))
	}
	_, err := fmt.Fprintf(w, "%d %s { %s }\n", n.outcome.number, quote(n.outcome.Label), strings.Join(payoffs, ", "))
	return err
}

// Save writes the game to path, creating the parent directory.
// Any failure is reported as ErrSerialization.
func (g *Game) Save(path string) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: create dir: %v", ErrSerialization, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: close %s: %v", ErrSerialization, path, cerr)
		}
	}()
	if err := g.Write(f); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrSerialization, path, err)
	}
	return nil
}

// FormatPayoff renders a payoff as the shortest decimal that reads back to
// the same float64, without exponent.
func FormatPayoff(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
