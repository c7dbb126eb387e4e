package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/muesli/reflow/truncate"

	"navtrail/internal/logging/events"
	"navtrail/internal/render"
)

const footerText = "tab switch  n new  c clear  R rename  / filter  r refresh  0-9 jump  q quit"

// View implements tea.Model. Rendering is read-only with respect to the
// engine: it never triggers a change-detection pass.
func (m *Model) View() string {
	cfg := m.opts.Render
	cached := m.formatter.Cached(m.manager.Version(), cfg)
	res := m.formatter.Render(m.manager.Stacks(), m.manager.ActiveID(), m.manager.Version(), cfg)
	events.Panel.Render(len(res.Lines), cached)

	lines := m.styledLines(res)
	if !m.manager.HasHistory() {
		lines = append(lines, "", dim("(no navigation history yet)"))
	}

	lines = m.applyViewport(lines)
	lines = applyWidth(lines, m.width)

	bottom := m.bottomBar()
	bottom = applyWidth(bottom, m.width)

	return strings.Join(append(lines, bottom...), "\n")
}

// styledLines resolves highlight groups to theme styles. With an active
// filter query, matching lines keep their styling while the rest are
// dimmed; the match count feeds the filter prompt.
func (m *Model) styledLines(res render.Result) []string {
	byLine := make(map[int][]render.Highlight, len(res.Lines))
	for _, h := range res.Highlights {
		byLine[h.Line] = append(byLine[h.Line], h)
	}

	matched := m.filterMatchSet(res.Lines)

	out := make([]string, len(res.Lines))
	for i, text := range res.Lines {
		if matched != nil {
			if _, ok := matched[i]; !ok {
				out[i] = dim(text)
				continue
			}
		}
		out[i] = styleLine(text, byLine[i])
	}
	return out
}

// filterMatchSet returns the set of line indices matching the filter query,
// or nil when no filter is active.
func (m *Model) filterMatchSet(lines []string) map[int]struct{} {
	query := strings.TrimSpace(m.filterInput.Value())
	if query == "" {
		m.filterMatches = -1
		return nil
	}
	ranks := fuzzy.RankFindNormalizedFold(query, lines)
	matched := make(map[int]struct{}, len(ranks))
	for _, rank := range ranks {
		matched[rank.OriginalIndex] = struct{}{}
	}
	m.filterMatches = len(matched)
	return matched
}

// styleLine renders one line by slicing it along its highlight spans.
// Spans are rune offsets and never overlap.
func styleLine(text string, spans []render.Highlight) string {
	if len(spans) == 0 {
		return text
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].ColStart < spans[j].ColStart })
	runes := []rune(text)
	var b strings.Builder
	col := 0
	for _, span := range spans {
		start, end := span.ColStart, span.ColEnd
		if start > len(runes) {
			start = len(runes)
		}
		if end > len(runes) {
			end = len(runes)
		}
		if start > col {
			b.WriteString(string(runes[col:start]))
		}
		piece := string(runes[start:end])
		if style := styles.ForGroup(span.Group); style != nil {
			piece = style.Render(piece)
		}
		b.WriteString(piece)
		col = end
	}
	if col < len(runes) {
		b.WriteString(string(runes[col:]))
	}
	return b.String()
}

func (m *Model) applyViewport(lines []string) []string {
	max := m.panelHeight()
	if max <= 0 || len(lines) <= max {
		m.viewportOffset = 0
		return lines
	}
	maxOffset := len(lines) - max
	if m.viewportOffset > maxOffset {
		m.viewportOffset = maxOffset
	}
	return lines[m.viewportOffset : m.viewportOffset+max]
}

// panelHeight is the row budget for panel content above the bottom bar.
func (m *Model) panelHeight() int {
	if m.height <= 0 {
		return -1
	}
	used := 2 // bottom bar: error/status + prompt
	if m.opts.ShowFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) bottomBar() []string {
	var lines []string
	if m.opts.ShowFooter {
		lines = append(lines, "", styles.Footer.Render(footerText))
	}
	status := ""
	if m.errMsg != "" {
		status = styles.Error.Render(fmt.Sprintf("Error: %s", m.errMsg))
	}
	lines = append(lines, status, m.promptLine())
	return lines
}

func (m *Model) promptLine() string {
	switch m.mode {
	case ModeRename:
		return m.renameInput.View()
	case ModeFilter:
		return m.filterPromptView()
	default:
		if strings.TrimSpace(m.filterInput.Value()) != "" {
			return m.filterPromptView()
		}
		return ""
	}
}

func (m *Model) filterPromptView() string {
	view := m.filterInput.View()
	if m.filterMatches >= 0 {
		view += styles.Filter.Render(fmt.Sprintf("  (%d matches)", m.filterMatches))
	}
	return view
}

func dim(text string) string {
	if text == "" {
		return text
	}
	return styles.Stack.Render(text)
}

// applyWidth truncates every styled row to the given visible width using
// ANSI-aware measurement, so styling never breaks the layout.
func applyWidth(lines []string, width int) []string {
	if width <= 0 {
		return lines
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if lipgloss.Width(line) > width {
			out[i] = truncate.StringWithTail(line, uint(width-1), "…")
			continue
		}
		out[i] = line
	}
	return out
}
