package main

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"mediator/internal/bargain"
	"mediator/internal/display"
	"mediator/internal/format"
	"mediator/internal/game"
	"mediator/internal/store"
	"mediator/internal/sweep"
)

func partyHeaders(lead ...string) []string {
	cols := append([]string(nil), lead...)
	for _, p := range bargain.Parties() {
		cols = append(cols, p.Label())
	}
	return cols
}

func payoffCells(lead []any, payoffs [bargain.NumParties]float64) []any {
	for _, v := range payoffs {
		lead = append(lead, format.FmtPayoff(v))
	}
	return lead
}

func rightAlignParties(tb format.TableBuilder, first int) {
	cfgs := make([]format.ColumnConfig, bargain.NumParties)
	for i := range cfgs {
		cfgs[i] = format.ColumnConfig{Number: first + i, Align: format.AlignRight}
	}
	tb.Columns(cfgs...)
}

// renderOutcomes prints the outcome table: label, coalition and payoffs.
func renderOutcomes(t *bargain.Table, mode format.Mode) string {
	tb := format.NewTable(mode)
	tb.Header(partyHeaders("Outcome", "Coalition", "Outside")...)
	for _, o := range t.Outcomes() {
		tb.Row(payoffCells([]any{o.Label, display.Coalition(o.Coalition), display.Outside(o.Coalition)}, o.Payoffs)...)
	}
	rightAlignParties(tb, 4)
	return tb.String()
}

// renderStoredOutcomes is renderOutcomes for a recorded run.
func renderStoredOutcomes(outs []store.Outcome, mode format.Mode) string {
	tb := format.NewTable(mode)
	tb.Header(partyHeaders("Outcome", "Coalition")...)
	for _, o := range outs {
		tb.Row(payoffCells([]any{o.Label, display.Coalition(o.Coalition)}, o.Payoffs)...)
	}
	rightAlignParties(tb, 3)
	return tb.String()
}

// renderLeaves prints one row per terminal in tree order.
func renderLeaves(m *game.Model, mode format.Mode, words bool) string {
	tb := format.NewTable(mode)
	if words {
		tb.Header("#", "Profile", "Fighters", "Outcome")
	} else {
		tb.Header(append(partyHeaders("#"), "Fighters", "Outcome")...)
	}
	counts := map[int]int{}
	for i, l := range m.Leaves() {
		counts[l.Fighters.Size()]++
		if words {
			tb.Row(i+1, display.Profile(l.Profile[:]), display.Coalition(l.Fighters), l.Outcome.Label)
			continue
		}
		row := []any{i + 1}
		for _, a := range l.Profile {
			row = append(row, a)
		}
		tb.Row(append(row, display.CoalitionWithCode(l.Fighters), l.Outcome.Label)...)
	}
	if mode != format.CSV {
		summary := "peace " + strconv.Itoa(counts[0]) +
			", dyadic " + strconv.Itoa(counts[2]) +
			", general " + strconv.Itoa(counts[bargain.NumParties])
		if words {
			tb.Footer("", "", "", summary)
		} else {
			tb.Footer("", "", "", "", "", summary)
		}
	}
	return tb.String()
}

// renderSweep prints one row per scenario.
func renderSweep(results []sweep.Result, mode format.Mode) string {
	tb := format.NewTable(mode)
	tb.Header("Scenario", "OK", "File", "Time")
	for _, r := range results {
		file := r.Path
		if r.Err != nil {
			file = format.Truncate(r.Err.Error(), 72)
		}
		tb.Row(r.Scenario.Name, format.BoolMark(r.Err == nil), file, format.FmtDuration(r.Elapsed))
	}
	return tb.String()
}

// renderRuns prints the run history, newest first.
func renderRuns(runs []*store.Run, mode format.Mode) string {
	tb := format.NewTable(mode)
	tb.Header("ID", "Scenario", "m", "c", "x", "Mediator", "Recorded")
	for _, r := range runs {
		tb.Row(
			shortID(r.ID),
			r.Scenario,
			format.FmtVector(r.Params.M),
			format.FmtVector(r.Params.C),
			format.FmtVector(r.Params.X),
			strconv.FormatFloat(r.Params.Mediator, 'g', -1, 64),
			humanize.Time(r.CreatedAt),
		)
	}
	tb.Columns(format.ColumnConfig{Number: 2, MaxWidth: 24})
	return tb.String()
}

func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
