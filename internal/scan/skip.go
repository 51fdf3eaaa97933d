package scan

// Lexical skippers. Each takes the rune slice and the offset of the opening
// delimiter and returns the offset of the first rune after the construct, or
// len(src) when the construct is unterminated.

// skipString consumes a single- or double-quoted string literal starting at
// src[i]. A backslash consumes the following rune unconditionally, so an
// escaped quote never closes the literal.
func skipString(src []rune, i int) int {
	quote := src[i]
	i++
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
			continue
		case quote:
			return i + 1
		}
		i++
	}
	return len(src)
}

// skipTemplate consumes a backtick template literal starting at src[i],
// including ${...} interpolations with their own nested braces, strings and
// template literals.
func skipTemplate(src []rune, i int) int {
	i++
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
			continue
		case '`':
			return i + 1
		case '$':
			if i+1 < len(src) && src[i+1] == '{' {
				i = skipInterpolation(src, i+2)
				continue
			}
		}
		i++
	}
	return len(src)
}

// skipInterpolation consumes the body of a ${...} interpolation starting
// just past the opening brace. Brace depth is tracked so object literals
// inside the expression do not end the interpolation early; nested strings
// and template literals recurse, bounded by the source's actual nesting.
func skipInterpolation(src []rune, i int) int {
	depth := 1
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
			continue
		case '\'', '"':
			i = skipString(src, i)
			continue
		case '`':
			i = skipTemplate(src, i)
			continue
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
		i++
	}
	return len(src)
}

// skipLineComment returns the offset of the newline terminating the comment
// (the first rune after the construct), or len(src).
func skipLineComment(src []rune, i int) int {
	for i < len(src) && src[i] != '\n' {
		i++
	}
	return i
}

// skipBlockComment consumes a /* ... */ comment starting at src[i].
func skipBlockComment(src []rune, i int) int {
	i += 2
	for i+1 < len(src) {
		if src[i] == '*' && src[i+1] == '/' {
			return i + 2
		}
		i++
	}
	return len(src)
}

// skipRegex consumes a regex literal starting at the slash src[i]. Bracket
// character classes are scanned atomically, backslash escapes are honored,
// and trailing ASCII flag letters are included. A newline before the closing
// slash means the slash was not a regex after all; ok is false and the
// caller falls back to treating it as division.
func skipRegex(src []rune, i int) (end int, ok bool) {
	j := i + 1
	inClass := false
	for j < len(src) {
		switch c := src[j]; {
		case c == '\\':
			j += 2
			continue
		case c == '\n':
			return i, false
		case c == '[':
			inClass = true
		case c == ']':
			inClass = false
		case c == '/' && !inClass:
			j++
			for j < len(src) && isASCIILetter(src[j]) {
				j++
			}
			return j, true
		}
		j++
	}
	return len(src), true
}

// Punctuation that can precede a regex literal but never a division.
var regexPreceders = map[rune]struct{}{
	'=': {}, '(': {}, '[': {}, ',': {}, ':': {}, ';': {}, '!': {},
	'&': {}, '|': {}, '?': {}, '{': {}, '}': {}, '+': {}, '-': {},
	'*': {}, '%': {}, '<': {}, '>': {}, '~': {}, '^': {},
}

// Keywords after which a slash starts a regex, not a division.
var regexPrecederWords = map[string]struct{}{
	"return": {}, "typeof": {}, "instanceof": {}, "in": {}, "of": {},
	"new": {}, "delete": {}, "void": {}, "case": {}, "do": {}, "else": {},
	"yield": {}, "await": {}, "throw": {},
}

// regexAllowed reports whether a slash at pos is lexically permitted to
// begin a regex literal, judged by the last significant rune before it.
func regexAllowed(src []rune, pos int) bool {
	j := pos - 1
	for j >= 0 && isSpace(src[j]) {
		j--
	}
	if j < 0 {
		return true
	}
	c := src[j]
	if _, ok := regexPreceders[c]; ok {
		return true
	}
	if isWordRune(c) {
		end := j + 1
		for j >= 0 && isWordRune(src[j]) {
			j--
		}
		_, ok := regexPrecederWords[string(src[j+1:end])]
		return ok
	}
	return false
}

func isASCIILetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isWordRune(c rune) bool {
	return isASCIILetter(c) || (c >= '0' && c <= '9') || c == '_' || c == '$'
}

func isSpace(c rune) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\v', '\f':
		return true
	}
	return false
}
