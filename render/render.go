// Package render formats the diagnosability pipeline's internal
// structures for terminal display: the plant's transition table, the
// observer's macro-state table, per-cycle refinement reports, and the
// final verdict banner.
//
// Modelled on the pack's format.TableBuilder adapter
// (dpopsuev-asterisk/internal/format) wrapping go-pretty/v6/table, and
// its tui styling idiom (moolen-spectre/internal/agent/tui/styles.go)
// for the lipgloss-styled verdict line.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/rfielding/diagctl/automaton"
	"github.com/rfielding/diagctl/cycles"
	"github.com/rfielding/diagctl/diagnosis"
	"github.com/rfielding/diagctl/observer"
	"github.com/rfielding/diagctl/recognizer"
)

// Transitions renders the plant's transition relation as a
// State1/Event/State2 table, per spec.md §6's display contract.
func Transitions(plant *automaton.Automaton) string {
	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	w.Style().Format.Header = text.FormatDefault
	w.AppendHeader(table.Row{"State1", "Event", "State2"})

	for q := automaton.StateID(1); int(q) <= plant.NumStates(); q++ {
		for _, t := range plant.Transitions(q) {
			sym, _ := plant.Alphabet().Symbol(t.Event)
			w.AppendRow(table.Row{int(t.From), sym, int(t.To)})
		}
	}
	return w.Render()
}

// ObserverTable renders every macro-state of obs: its id, its member
// compound states, and its N/F/U label.
func ObserverTable(obs *observer.Observer) string {
	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	w.Style().Format.Header = text.FormatDefault
	w.AppendHeader(table.Row{"Macro-state", "Members", "Label"})

	rec := obs.Recognizer()
	for _, ms := range obs.States() {
		label := obs.Label(ms.ID)
		row := table.Row{ms.ID, renderMembers(rec, ms.Members), styleLabel(label)}
		w.AppendRow(row)
	}
	return w.Render()
}

// CycleReport renders one cycle's refinement trace: the entry set,
// then each α/β step, ending in the determinate/indeterminate
// verdict, per spec.md §4.6's "Output" contract.
func CycleReport(plant *automaton.Automaton, rec *recognizer.Recognizer, r cycles.Report) string {
	var b strings.Builder

	eventWord := make([]string, len(r.Cycle.Events))
	for i, e := range r.Cycle.Events {
		sym, _ := plant.Alphabet().Symbol(e)
		eventWord[i] = sym
	}
	fmt.Fprintf(&b, "cycle %v on word %s\n", r.Cycle.MacroStates, strings.Join(eventWord, "."))

	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	w.AppendHeader(table.Row{"Step", "Alpha", "Beta"})
	w.AppendRow(table.Row{"entry", "", fmt.Sprintf("%s [%s]", renderMembers(rec, r.Entry.Members), r.Entry.Label)})
	for i, st := range r.Steps {
		w.AppendRow(table.Row{
			i + 1,
			fmt.Sprintf("%s [%s]", renderMembers(rec, st.Alpha.Members), st.Alpha.Label),
			fmt.Sprintf("%s [%s]", renderMembers(rec, st.Beta.Members), st.Beta.Label),
		})
	}
	b.WriteString(w.Render())
	b.WriteByte('\n')

	if r.Indeterminate {
		b.WriteString(renderStyled(notDiagnosableStyle, "indeterminate cycle"))
	} else {
		b.WriteString(renderStyled(captionStyle, "determinate cycle"))
	}
	return b.String()
}

// VerdictBanner renders the final DIAGNOSABLE / NOT DIAGNOSABLE line,
// plus the witness explanation when present, matching spec.md §6's
// exact verdict wording.
func VerdictBanner(report *diagnosis.Report) string {
	var b strings.Builder
	if report.Diagnosable {
		if len(report.Cycles) == 0 {
			b.WriteString(renderStyled(diagnosableStyle, "No uncertain cycle found, G is DIAGNOSABLE"))
		} else {
			b.WriteString(renderStyled(diagnosableStyle, "The system G is DIAGNOSABLE."))
		}
		return b.String()
	}

	b.WriteString(renderStyled(notDiagnosableStyle, "The system G is NOT DIAGNOSABLE."))
	if report.Witness != nil {
		b.WriteByte('\n')
		b.WriteString(renderStyled(captionStyle, fmt.Sprintf(
			"witness: macro-states %v on word %s — %s",
			report.Witness.MacroStates,
			strings.Join(report.Witness.Events, "."),
			report.Witness.Explanation,
		)))
	}
	return b.String()
}

func renderMembers(rec *recognizer.Recognizer, members []int) string {
	parts := make([]string, 0, len(members))
	for _, id := range members {
		cs, ok := rec.StateAt(id)
		if !ok {
			parts = append(parts, strconv.Itoa(id))
			continue
		}
		parts = append(parts, fmt.Sprintf("(%d,%s)", cs.Plant, cs.Status))
	}
	return strings.Join(parts, ",")
}

func styleLabel(l observer.Label) string {
	if l == observer.LabelU {
		return renderStyled(labelUStyle, l.String())
	}
	return l.String()
}
