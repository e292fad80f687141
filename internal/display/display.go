// Package display provides human-readable names for machine codes.
//
// Rule: code is for machines, words are for humans.
// Use these functions in CLI output and tool responses. Keep raw labels
// ("0,1", "war(0, 2)") for the .efg file, map keys and equality checks.
package display

import (
	"strconv"
	"strings"

	"mediator/internal/bargain"
)

// --- Parties ---

// Party returns "P0"-style names.
func Party(i int) string { return "P" + strconv.Itoa(i) }

// --- Coalitions ---

// Coalition names a resolved coalition.
// () -> "Peace", (0, 1, 2) -> "General war", (0, 2) -> "Dyadic war P0–P2".
func Coalition(c bargain.Coalition) string {
	switch c.Size() {
	case 0:
		return "Peace"
	case bargain.NumParties:
		return "General war"
	}
	members := c.Members()
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = Party(m)
	}
	return "Dyadic war " + strings.Join(names, "–")
}

// CoalitionWithCode returns "Dyadic war P0–P2 (0, 2)" for dual-audience output.
func CoalitionWithCode(c bargain.Coalition) string {
	if c.Empty() {
		return Coalition(c)
	}
	return Coalition(c) + " " + c.String()
}

// Outside names the parties left out of a dyadic war, or "-" when none.
func Outside(c bargain.Coalition) string {
	if c.Empty() || c.Size() == bargain.NumParties {
		return "-"
	}
	out := c.Outside()
	names := make([]string, len(out))
	for i, m := range out {
		names[i] = Party(m)
	}
	return strings.Join(names, ", ")
}

// --- Actions ---

// Action turns an action label into words.
// "accept" -> "accepts", "0,2" -> "attacks P2". Unknown labels are returned as-is.
func Action(label string) string {
	if label == "accept" {
		return "accepts"
	}
	_, target, ok := strings.Cut(label, ",")
	if !ok {
		return label
	}
	n, err := strconv.Atoi(strings.TrimSpace(target))
	if err != nil {
		return label
	}
	return "attacks " + Party(n)
}

// Profile joins one action per party: "P0 accepts, P1 attacks P0, P2 accepts".
func Profile(labels []string) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = Party(i) + " " + Action(l)
	}
	return strings.Join(parts, ", ")
}
