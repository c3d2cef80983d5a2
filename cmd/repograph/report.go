package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"repograph/internal/extract"
	"repograph/internal/filetree"
	"repograph/internal/graph"
	t "repograph/internal/types"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("81"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	boxStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("63"))
)

// renderReport lays out an analysis result for the terminal. maxEdges <= 0
// lists every edge.
func renderReport(repoURL string, res *t.GraphResult, maxEdges int) string {
	var sections []string
	sections = append(sections, titleStyle.Render("repograph "+repoURL))

	if o := res.OwnerInfo; o != nil {
		var sb strings.Builder
		name := o.Name
		if name == "" {
			name = o.HTMLURL
		}
		sb.WriteString(headingStyle.Render(name))
		if o.Bio != "" {
			sb.WriteString("\n" + o.Bio)
		}
		for _, p := range o.PinnedItems {
			sb.WriteString(fmt.Sprintf("\n  ★ %-5d %s", p.StargazerCount, p.Name))
		}
		sections = append(sections, boxStyle.Render(sb.String()))
	}

	if len(res.Languages) > 0 {
		parts := make([]string, 0, len(res.Languages))
		for _, l := range res.Languages {
			parts = append(parts, fmt.Sprintf("%s %.2f%%", l.Name, l.Percentage))
		}
		sections = append(sections, headingStyle.Render("Languages")+"\n"+strings.Join(parts, dimStyle.Render(" · ")))
	}

	stats := filetree.Count(res.Tree)
	sections = append(sections, headingStyle.Render("Graph")+"\n"+
		fmt.Sprintf("%d nodes, %d edges, %d of %d files analysed, %d folders",
			len(res.Nodes), len(res.Links), stats.ActiveFiles, stats.Files, stats.Folders)+
		syntaxLine(res.Nodes))

	if len(res.Links) > 0 {
		var sb strings.Builder
		sb.WriteString(headingStyle.Render("Edges"))
		shown := res.Links
		if maxEdges > 0 && len(shown) > maxEdges {
			shown = shown[:maxEdges]
		}
		for _, l := range shown {
			sb.WriteString("\n" + l.Source + dimStyle.Render(" → ") + l.Target)
		}
		if rest := len(res.Links) - len(shown); rest > 0 {
			sb.WriteString("\n" + dimStyle.Render(fmt.Sprintf("… %d more", rest)))
		}
		sections = append(sections, sb.String())
	}

	sections = append(sections, headingStyle.Render("Files")+"\n"+filetree.Render(res.Tree))
	return strings.Join(sections, "\n\n")
}

// syntaxLine counts nodes per extracted syntax family; files without an
// extractor count as "other".
func syntaxLine(nodes []t.GraphNode) string {
	if len(nodes) == 0 {
		return ""
	}
	counts := map[string]int{}
	for _, n := range nodes {
		lang := extract.Language(n.ID)
		if lang == "" {
			lang = "other"
		}
		counts[lang]++
	}
	var parts []string
	for _, lang := range []string{"module", "markup", "stylesheet", "other"} {
		if c := counts[lang]; c > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", lang, c))
		}
	}
	return "\n" + dimStyle.Render(strings.Join(parts, " · "))
}

func progressLine(e graph.Event) string {
	switch {
	case e.Total > 0 && e.Done > 0:
		return fmt.Sprintf("%-9s %d/%d", e.Stage, e.Done, e.Total)
	case e.Total > 0:
		return fmt.Sprintf("%-9s %d", e.Stage, e.Total)
	case e.Message != "":
		return fmt.Sprintf("%-9s %s", e.Stage, e.Message)
	default:
		return string(e.Stage)
	}
}
