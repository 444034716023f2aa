package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/stepviz/pkg/errors"
	"github.com/matzehuels/stepviz/pkg/scene"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Pinned fixes every node at its scene position and renders with neato,
	// so the diagram matches the raster frames. When false, Graphviz lays
	// the graph out itself with dot.
	Pinned bool
}

// ToDOT converts the node-link part of a scene to Graphviz DOT. Node and
// edge colors follow the element states. Scenes without nodes (arrays and
// grids) are rejected.
func ToDOT(s *scene.Scene, d scene.Decorations, opts Options) (string, error) {
	nodes := s.IDs(scene.KindNode)
	if len(nodes) == 0 {
		return "", errors.New(errors.ErrCodeUnsupported, "dot output needs a graph or tree scene")
	}
	th := s.Theme()

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	if opts.Pinned {
		buf.WriteString("  layout=neato;\n")
		buf.WriteString("  notranslate=true;\n")
	} else {
		buf.WriteString("  rankdir=TB;\n")
	}
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", scene.Hex(th.Background))
	if d.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n  fontsize=18;\n", d.Title)
	}
	buf.WriteString("  node [shape=circle, style=filled, fontsize=14, fixedsize=true];\n")
	buf.WriteString("\n")

	for _, id := range nodes {
		e, _ := s.Get(id)
		if !e.Visible {
			continue
		}
		attrs := []string{
			fmt.Sprintf("label=%q", e.Label),
			fmt.Sprintf("fillcolor=%q", scene.Hex(th.Color(scene.KindNode, e.State))),
			fmt.Sprintf("color=%q", scene.Hex(th.Outline)),
			fmt.Sprintf("width=%s", inches(2*e.R)),
		}
		if opts.Pinned {
			// Graphviz points grow upward.
			attrs = append(attrs, fmt.Sprintf("pos=\"%s,%s!\"", points(e.X), points(-e.Y)))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, id := range s.IDs(scene.KindEdge) {
		e, _ := s.Get(id)
		if !e.Visible {
			continue
		}
		attrs := []string{fmt.Sprintf("color=%q", scene.Hex(th.Color(scene.KindEdge, e.State)))}
		if !e.Directed {
			attrs = append(attrs, "dir=none")
		}
		if e.State == scene.StatePath {
			attrs = append(attrs, "penwidth=3")
		}
		if e.Label != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

// inches converts scene pixels to Graphviz inches at 72 DPI.
func inches(px float64) string { return strconv.FormatFloat(px/72, 'f', 3, 64) }

func points(px float64) string { return strconv.FormatFloat(px, 'f', 1, 64) }

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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

	if strings.Contains(dot, "layout=neato") {
		gv.SetLayout(graphviz.NEATO)
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
