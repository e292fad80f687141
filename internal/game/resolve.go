package game

import (
	"fmt"
	"strconv"
	"strings"

	"mediator/internal/bargain"
)

// AcceptLabel is the label of the "accept mediation" action.
const AcceptLabel = "accept"

// AttackLabel encodes "actor attacks target" as "actor,target".
func AttackLabel(actor, target int) string {
	return strconv.Itoa(actor) + "," + strconv.Itoa(target)
}

// ActionLabels returns the three actions of party i in tree order: accept,
// then one attack per other party in increasing target index.
func ActionLabels(i int) []string {
	labels := []string{AcceptLabel}
	for j := 0; j < bargain.NumParties; j++ {
		if j != i {
			labels = append(labels, AttackLabel(i, j))
		}
	}
	return labels
}

// parseAction returns the coalition contributed by one action label.
func parseAction(label string) (bargain.Coalition, error) {
	if label == AcceptLabel {
		return 0, nil
	}
	a, b, ok := strings.Cut(label, ",")
	if !ok {
		return 0, fmt.Errorf("%w: action label %q", bargain.ErrMalformedCoalition, label)
	}
	actor, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return 0, fmt.Errorf("%w: action label %q: %v", bargain.ErrMalformedCoalition, label, err)
	}
	target, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return 0, fmt.Errorf("%w: action label %q: %v", bargain.ErrMalformedCoalition, label, err)
	}
	if actor == target {
		return 0, fmt.Errorf("%w: party %d attacks itself", bargain.ErrMalformedCoalition, actor)
	}
	return bargain.NewCoalition(actor, target)
}

// ResolveFighters returns the union of the parties named by every attack
// among labels. A single declaration pulls both actor and target into the
// conflict, whatever the target chose.
func ResolveFighters(labels ...string) (bargain.Coalition, error) {
	var fighters bargain.Coalition
	for _, l := range labels {
		c, err := parseAction(l)
		if err != nil {
			return 0, err
		}
		fighters = fighters.Union(c)
	}
	if err := fighters.Check(); err != nil {
		return 0, err
	}
	return fighters, nil
}
