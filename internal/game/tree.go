package game

import (
	"fmt"

	"mediator/internal/bargain"
	"mediator/internal/efg"
)

// addMoves gives node a move of party i with its three labelled actions.
func addMoves(node *efg.Node, player *efg.Player, i int) error {
	labels := ActionLabels(i)
	s, err := node.AppendMove(player, len(labels))
	if err != nil {
		return fmt.Errorf("append move P%d: %w", i, err)
	}
	s.Label = fmt.Sprintf("P%dmove", i)
	for k, a := range s.Actions() {
		a.Label = labels[k]
	}
	return nil
}

// buildTree lays out one decision layer per party, in party order. Each
// node starts in its own information set.
func buildTree(g *efg.Game, players []*efg.Player) error {
	return expand(g.Root(), players, 0)
}

func expand(node *efg.Node, players []*efg.Player, depth int) error {
	if depth == len(players) {
		return nil
	}
	if err := addMoves(node, players[depth], depth); err != nil {
		return err
	}
	for _, child := range node.Children() {
		if err := expand(child, players, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// setupInfosets merges every decision node of a layer into the information
// set of the layer's first node, so no party observes an earlier choice.
func setupInfosets(g *efg.Game) error {
	layer := g.Root().Children()
	for depth := 1; depth < bargain.NumParties; depth++ {
		if len(layer) == 0 {
			return fmt.Errorf("%w: layer %d is empty", efg.ErrStructure, depth)
		}
		common := layer[0].Infoset()
		var next []*efg.Node
		for _, n := range layer {
			if err := n.SetInfoset(common); err != nil {
				return fmt.Errorf("merge layer %d: %w", depth, err)
			}
			next = append(next, n.Children()...)
		}
		layer = next
	}
	return nil
}
