// Package symbol infers display names for navigation targets from tag tokens
// and file paths. The inference is purely pattern based; no source code is
// parsed.
package symbol

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

var (
	qualifiedRe  = regexp.MustCompile(`^[A-Z][A-Za-z0-9_]*(\.[A-Z][A-Za-z0-9_]*)*\.[a-z_][A-Za-z0-9_?!]*(/\d+)?$`)
	modulePathRe = regexp.MustCompile(`^[A-Z][A-Za-z0-9_]*(\.[A-Z][A-Za-z0-9_]*)*$`)
)

// ModuleName derives a module-style name from a file path: the basename with
// its extension stripped, converted from snake_case to PascalCase.
// "lib/user_controller.ex" becomes "UserController".
func ModuleName(path string) string {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" {
		return ""
	}
	parts := strings.Split(base, "_")
	var b strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		b.WriteRune(unicode.ToUpper(runes[0]))
		b.WriteString(string(runes[1:]))
	}
	return b.String()
}

// Qualify resolves a raw tag token into a display name, qualifying bare
// names with the module inferred from the origin file:
//
//	Server.handle_call/3  -> unchanged (already qualified)
//	handle_call/3         -> Server.handle_call/3
//	init                  -> Server.init
//	MyApp.Worker          -> unchanged (module path)
//
// An empty origin leaves the token unqualified.
func Qualify(tag, origin string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return tag
	}
	if qualifiedRe.MatchString(tag) || modulePathRe.MatchString(tag) {
		return tag
	}
	module := ModuleName(origin)
	if module == "" {
		return tag
	}
	return module + "." + tag
}

// StripArity removes a trailing /N arity suffix, if present.
func StripArity(name string) string {
	idx := strings.LastIndex(name, "/")
	if idx < 0 {
		return name
	}
	suffix := name[idx+1:]
	if suffix == "" {
		return name
	}
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return name
		}
	}
	return name[:idx]
}
