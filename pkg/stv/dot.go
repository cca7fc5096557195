package stv

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/goccy/go-graphviz"
)

// ToDOT returns a Graphviz DOT representation of the elimination rounds.
//
// Each round becomes a box listing the remaining candidates' tallies with
// the eliminated candidate highlighted; rounds are chained top to bottom
// and end in the winner node.
//
// The labels parameter maps candidate ids to display names: labels[c-1]
// names candidate c. Missing entries fall back to the numeric id. Pass nil
// for numeric labels.
func (r *Result) ToDOT(labels []string) string {
	var buf bytes.Buffer
	buf.WriteString("digraph STV {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=14, shape=box, style=\"filled,rounded\", fillcolor=white];\n\n")

	for i, rd := range r.Rounds {
		fmt.Fprintf(&buf, "  r%d [label=%q];\n", i, roundLabel(i, rd, labels))
	}
	fmt.Fprintf(&buf, "  winner [label=%q, fillcolor=\"#d8f0d8\"];\n\n", "winner: "+label(int(r.Winner), labels))

	for i := range r.Rounds {
		next := "winner"
		if i+1 < len(r.Rounds) {
			next = fmt.Sprintf("r%d", i+1)
		}
		fmt.Fprintf(&buf, "  r%d -> %s [label=%q];\n", i, next, "-"+label(int(r.Rounds[i].Eliminated), labels))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func roundLabel(i int, rd Round, labels []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "round %d\n", i+1)
	for idx, v := range rd.Tally {
		if math.IsInf(v, 1) {
			continue
		}
		marker := " "
		if idx+1 == int(rd.Eliminated) {
			marker = "x"
		}
		fmt.Fprintf(&b, "%s %s: %g\n", marker, label(idx+1, labels), v)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func label(c int, labels []string) string {
	if c-1 >= 0 && c-1 < len(labels) && labels[c-1] != "" {
		return labels[c-1]
	}
	return fmt.Sprintf("%d", c)
}

// RenderSVG renders the elimination rounds as an SVG image.
//
// RenderSVG generates a DOT representation via ToDOT, then uses Graphviz to
// render it. The labels parameter is passed to ToDOT unchanged.
func (r *Result) RenderSVG(ctx context.Context, labels []string) ([]byte, error) {
	dot := r.ToDOT(labels)

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
