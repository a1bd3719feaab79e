package dot

import (
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/buildviz/internal/core/domain"
)

// CommonRoot returns the longest directory prefix shared by every project's base
// directory, compared segment by segment. It returns "" for a build without projects.
func CommonRoot(projects []*domain.Project) string {
	if len(projects) == 0 {
		return ""
	}

	sep := string(filepath.Separator)
	dirs := make([][]string, len(projects))
	shortest := 0
	for i, p := range projects {
		dirs[i] = strings.Split(filepath.Clean(p.BaseDirectory), sep)
		if len(dirs[i]) < len(dirs[shortest]) {
			shortest = i
		}
	}

	var common []string
	for i, seg := range dirs[shortest] {
		for _, d := range dirs {
			if d[i] != seg {
				return strings.Join(common, sep)
			}
		}
		common = append(common, seg)
	}
	return strings.Join(common, sep)
}

// replacement maps one ancestor of the common root to its relative form.
type replacement struct {
	prefix string
	rel    string
}

// Relativizer rewrites absolute paths under a common root into relative ones.
// The root itself becomes "." and each ancestor level above it one ".." segment.
type Relativizer struct {
	replacements []replacement
}

// NewRelativizer builds a Relativizer for root. An empty root, or the filesystem
// root, yields a Relativizer that leaves text untouched.
func NewRelativizer(root string) *Relativizer {
	r := &Relativizer{}
	sep := string(filepath.Separator)
	if root == "" || root == sep {
		return r
	}

	segs := strings.Split(root, sep)
	for i := range len(segs) - 1 {
		prefix := strings.Join(segs[:len(segs)-i], sep)
		rel := "."
		if i > 0 {
			rel = strings.Join(slices.Repeat([]string{".."}, i), sep)
		}
		r.replacements = append(r.replacements, replacement{prefix: prefix, rel: rel})
	}
	return r
}

// Apply rewrites every occurrence of the root or one of its ancestors in text.
// Candidates are tried longest first and a match must end on a path boundary,
// so "/a/bc" is not rewritten for root "/a/b". Rewritten output is never rescanned.
func (r *Relativizer) Apply(text string) string {
	if len(r.replacements) == 0 {
		return text
	}

	var sb strings.Builder
	for i := 0; i < len(text); {
		matched := false
		for _, rep := range r.replacements {
			if strings.HasPrefix(text[i:], rep.prefix) && atBoundary(text, i+len(rep.prefix)) {
				sb.WriteString(rep.rel)
				i += len(rep.prefix)
				matched = true
				break
			}
		}
		if !matched {
			sb.WriteByte(text[i])
			i++
		}
	}
	return sb.String()
}

// atBoundary reports whether a path ending at end is not part of a longer
// name. A period ends the path unless a name character follows it.
func atBoundary(text string, end int) bool {
	if end >= len(text) {
		return true
	}
	if text[end] == '.' {
		return end+1 >= len(text) || !isNameByte(text[end+1])
	}
	return !isNameByte(text[end])
}

func isNameByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '-'
}
