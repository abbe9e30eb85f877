package ignore

import (
	"errors"
	"strings"

	"github.com/gobwas/glob"
)

// maxClassRunes bounds how far a negated class with several ranges is
// expanded into a rune list.
const maxClassRunes = 4096

var errClassTooWide = errors.New("negated character class too wide")

// never is the glob for a pattern holding an empty character class
type never struct{}

func (never) Match(string) bool { return false }

// compileFnmatch compiles a shell pattern with fnmatch semantics: `*`
// and `?` match any character including `/`, `[...]` is a character
// class (`!` negates, `a-z` ranges, a leading `]` is literal) and an
// unterminated `[` is literal. Everything else, `{`, `}` and `\`
// included, matches itself.
func compileFnmatch(pattern string) (glob.Glob, error) {
	p := []rune(pattern)
	var b strings.Builder

	for i := 0; i < len(p); i++ {
		switch c := p[i]; c {
		case '*', '?':
			b.WriteRune(c)
		case '[':
			end := classEnd(p, i)
			if end < 0 {
				writeLiteral(&b, c)
				continue
			}
			expr, empty, err := translateClass(p[i+1 : end])
			if err != nil {
				return nil, err
			}
			if empty {
				return never{}, nil
			}
			b.WriteString(expr)
			i = end
		default:
			writeLiteral(&b, c)
		}
	}

	return glob.Compile(b.String())
}

// classEnd returns the index of the `]` closing the class opened at
// p[open], or -1 when the class is unterminated.
func classEnd(p []rune, open int) int {
	j := open + 1
	if j < len(p) && p[j] == '!' {
		j++
	}
	if j < len(p) && p[j] == ']' {
		j++
	}
	for j < len(p) && p[j] != ']' {
		j++
	}
	if j >= len(p) {
		return -1
	}
	return j
}

type runeRange struct{ lo, hi rune }

// translateClass turns the body of an fnmatch class into gobwas syntax.
// empty reports a positive class that can match nothing.
func translateClass(body []rune) (expr string, empty bool, err error) {
	negate := len(body) > 0 && body[0] == '!'
	if negate {
		body = body[1:]
	}

	// Reversed ranges match nothing and are dropped.
	var ranges []runeRange
	for k := 0; k < len(body); {
		if k+2 < len(body) && body[k+1] == '-' {
			if body[k] <= body[k+2] {
				ranges = append(ranges, runeRange{body[k], body[k+2]})
			}
			k += 3
			continue
		}
		ranges = append(ranges, runeRange{body[k], body[k]})
		k++
	}

	if negate {
		expr, err := negatedClass(ranges)
		return expr, false, err
	}
	if len(ranges) == 0 {
		return "", true, nil
	}
	return positiveClass(ranges), false, nil
}

// positiveClass writes the class as an alternation of single characters
// and `[lo-hi]` ranges.
func positiveClass(ranges []runeRange) string {
	items := make([]string, 0, len(ranges))
	for _, r := range ranges {
		switch {
		case r.lo == r.hi:
			items = append(items, `\`+string(r.lo))
		case r.lo == '!':
			// `[!` would read as negation.
			items = append(items, `\!`, "["+string(r.lo+1)+"-"+string(r.hi)+"]")
		default:
			items = append(items, "["+string(r.lo)+"-"+string(r.hi)+"]")
		}
	}
	if len(items) == 1 {
		return items[0]
	}
	return "{" + strings.Join(items, ",") + "}"
}

// negatedClass writes `[!...]`: a single range as is, otherwise the
// expanded rune list.
func negatedClass(ranges []runeRange) (string, error) {
	switch len(ranges) {
	case 0:
		return "?", nil
	case 1:
		return "[!" + string(ranges[0].lo) + "-" + string(ranges[0].hi) + "]", nil
	}

	var set []rune
	seen := make(map[rune]bool)
	for _, r := range ranges {
		if int(r.hi-r.lo)+len(set) >= maxClassRunes {
			return "", errClassTooWide
		}
		for c := r.lo; c <= r.hi; c++ {
			if !seen[c] {
				seen[c] = true
				set = append(set, c)
			}
		}
	}
	if len(set) == 1 {
		return "[!" + string(set[0]) + "-" + string(set[0]) + "]", nil
	}

	// A list starting with `-` (escaped or not) parses as a range.
	if set[0] == '-' {
		set[0], set[1] = set[1], set[0]
	}
	var b strings.Builder
	b.WriteString("[!")
	for _, c := range set {
		if c == '-' || c == ']' || c == '\\' {
			b.WriteRune('\\')
		}
		b.WriteRune(c)
	}
	b.WriteString("]")
	return b.String(), nil
}

// writeLiteral escapes c so gobwas matches it verbatim
func writeLiteral(b *strings.Builder, c rune) {
	switch c {
	case '{', '}', '\\', '[', ']', '*', '?', ',':
		b.WriteRune('\\')
	}
	b.WriteRune(c)
}
