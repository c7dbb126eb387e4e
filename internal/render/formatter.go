// Package render turns the stack collection into display lines plus
// highlight spans for the panel. It knows nothing about the terminal; the UI
// maps highlight groups onto styles.
package render

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"navtrail/internal/engine"
	"navtrail/internal/symbol"
)

// PathMode selects how file paths are annotated on root lines.
type PathMode string

const (
	PathModeRelative PathMode = "relative"
	PathModeAbsolute PathMode = "absolute"
	PathModeFilename PathMode = "filename"
)

// Group names a highlight class; the UI resolves groups to styles.
type Group string

const (
	GroupHeader     Group = "header"
	GroupStack      Group = "stack"
	GroupActive     Group = "active"
	GroupRoot       Group = "root"
	GroupSymbol     Group = "symbol"
	GroupCurrent    Group = "current"
	GroupConnector  Group = "connector"
	GroupTruncation Group = "truncation"
	GroupPath       Group = "path"
)

// Highlight marks a span of one output line. Columns are rune offsets,
// ColEnd exclusive.
type Highlight struct {
	Group    Group
	Line     int
	ColStart int
	ColEnd   int
}

// Config controls rendering. All fields are comparable so a Config can act
// as part of the memo key.
type Config struct {
	MaxDepth       int
	PathMode       PathMode
	ShowArity      bool
	ShowModulePath bool
	WorkDir        string
}

// Result is one rendered frame.
type Result struct {
	Lines      []string
	Highlights []Highlight
}

const (
	headerText       = "Navigation History"
	activeMarker     = "●"
	inactiveMarker   = "○"
	currentMarker    = "▶ "
	blankMarker      = "  "
	connectorMarker  = "└ "
	truncationMarker = "…"
)

// Formatter renders the stack collection and memoizes the result until the
// engine version or the config moves.
type Formatter struct {
	memo        Result
	memoVersion uint64
	memoCfg     Config
	primed      bool
}

// Cached reports whether the next Render with the given inputs would be
// served from the memo.
func (f *Formatter) Cached(version uint64, cfg Config) bool {
	return f.primed && version == f.memoVersion && cfg == f.memoCfg
}

// Render produces the panel lines and highlight spans for the given stacks.
// Calling it twice without an engine mutation in between returns the
// identical memoized result; rendering never mutates engine state.
func (f *Formatter) Render(stacks []*engine.Stack, activeID int, version uint64, cfg Config) Result {
	if f.Cached(version, cfg) {
		return f.memo
	}

	var b builder
	b.push(segment{headerText, GroupHeader})

	for si, s := range stacks {
		f.renderStack(&b, s, s.ID == activeID, cfg)
		if len(stacks) > 1 && si < len(stacks)-1 {
			b.push()
		}
	}

	f.memo = b.result()
	f.memoVersion = version
	f.memoCfg = cfg
	f.primed = true
	return f.memo
}

func (f *Formatter) renderStack(b *builder, s *engine.Stack, active bool, cfg Config) {
	marker, titleGroup := inactiveMarker, GroupStack
	if active {
		marker, titleGroup = activeMarker, GroupActive
	}
	b.push(segment{marker + " ", titleGroup}, segment{s.Name, titleGroup})

	rootGroup := GroupRoot
	rootMark := blankMarker
	if active && s.CurrentIndex == 0 {
		rootGroup = GroupCurrent
		rootMark = currentMarker
	}
	rootSegs := []segment{{rootMark, rootGroup}, {s.Name, rootGroup}}
	if path := displayPath(s.Root.File, cfg.PathMode, cfg.WorkDir); path != "" {
		rootSegs = append(rootSegs, segment{"  " + path, GroupPath})
	}
	b.push(rootSegs...)

	limit := len(s.Display)
	if cfg.MaxDepth > 0 && limit > cfg.MaxDepth {
		limit = cfg.MaxDepth
	}
	for i := 1; i <= limit; i++ {
		ev := s.Display[i-1]
		name := ev.Tag
		if cfg.ShowModulePath {
			name = symbol.Qualify(ev.Tag, ev.Origin.File)
		}
		if !cfg.ShowArity {
			name = symbol.StripArity(name)
		}
		group := GroupSymbol
		mark := blankMarker
		if active && i == s.CurrentIndex {
			group = GroupCurrent
			mark = currentMarker
		}
		indent := strings.Repeat("  ", i)
		b.push(
			segment{mark, group},
			segment{indent, ""},
			segment{connectorMarker, GroupConnector},
			segment{name, group},
		)
	}
	if limit < len(s.Display) {
		indent := strings.Repeat("  ", limit+1)
		b.push(segment{blankMarker + indent, ""}, segment{truncationMarker, GroupTruncation})
	}
}

// displayPath formats a root file path per the configured mode. An empty
// path yields an empty annotation.
func displayPath(path string, mode PathMode, workDir string) string {
	if path == "" {
		return ""
	}
	switch mode {
	case PathModeAbsolute:
		return path
	case PathModeFilename:
		return filepath.Base(path)
	default:
		if workDir != "" {
			if rel, err := filepath.Rel(workDir, path); err == nil && !strings.HasPrefix(rel, "..") {
				return rel
			}
		}
		return path
	}
}

type segment struct {
	text  string
	group Group
}

type builder struct {
	lines      []string
	highlights []Highlight
}

// push appends one line assembled from segments, recording a highlight span
// for every segment carrying a group. With no segments it appends a blank
// separator line.
func (b *builder) push(segs ...segment) {
	var sb strings.Builder
	line := len(b.lines)
	col := 0
	for _, seg := range segs {
		n := utf8.RuneCountInString(seg.text)
		if seg.group != "" && n > 0 {
			b.highlights = append(b.highlights, Highlight{Group: seg.group, Line: line, ColStart: col, ColEnd: col + n})
		}
		sb.WriteString(seg.text)
		col += n
	}
	b.lines = append(b.lines, sb.String())
}

func (b *builder) result() Result {
	return Result{Lines: b.lines, Highlights: b.highlights}
}
