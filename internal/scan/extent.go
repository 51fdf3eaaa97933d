package scan

// Block extent resolution: given the offset of the first non-whitespace rune
// after a governing comment, compute the exclusive end offset of the span
// that comment governs.

func blockEnd(src []rune, start int, fam Family) int {
	switch fam {
	case FamilyPython:
		return pythonBlockEnd(src, start)
	case FamilyHashOnly:
		return lineEnd(src, start)
	default:
		return cBlockEnd(src, start)
	}
}

// cBlockEnd implements the two-phase C-family algorithm: find the body
// opener (or a statement-terminating semicolon) while tracking paren depth,
// then match the closing brace. Braces inside default-parameter object
// literals are ignored because they appear at positive paren depth; strings,
// template literals, comments and regex literals are skipped so punctuation
// inside them is never counted.
func cBlockEnd(src []rune, start int) int {
	i := start
	parens := 0
	for i < len(src) {
		switch src[i] {
		case '"', '\'':
			i = skipString(src, i)
			continue
		case '`':
			i = skipTemplate(src, i)
			continue
		case '/':
			if i+1 < len(src) {
				switch src[i+1] {
				case '/':
					i = skipLineComment(src, i)
					continue
				case '*':
					i = skipBlockComment(src, i)
					continue
				}
			}
			if regexAllowed(src, i) {
				if j, ok := skipRegex(src, i); ok {
					i = j
					continue
				}
			}
		case '(':
			parens++
		case ')':
			if parens > 0 {
				parens--
			}
		case ';':
			if parens == 0 {
				return i + 1
			}
		case '{':
			if parens == 0 {
				return matchClosingBrace(src, i)
			}
		}
		i++
	}
	return len(src)
}

// matchClosingBrace scans from the opening brace until depth returns to
// zero. When the remaining region holds no quote, backtick or slash the
// skip logic cannot fire and plain counting gives the same answer cheaper.
func matchClosingBrace(src []rune, open int) int {
	if plainRegion(src, open) {
		depth := 0
		for i := open; i < len(src); i++ {
			switch src[i] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return i + 1
				}
			}
		}
		return len(src)
	}
	depth := 1
	i := open + 1
	for i < len(src) {
		switch src[i] {
		case '"', '\'':
			i = skipString(src, i)
			continue
		case '`':
			i = skipTemplate(src, i)
			continue
		case '/':
			if i+1 < len(src) {
				switch src[i+1] {
				case '/':
					i = skipLineComment(src, i)
					continue
				case '*':
					i = skipBlockComment(src, i)
					continue
				}
			}
			if regexAllowed(src, i) {
				if j, ok := skipRegex(src, i); ok {
					i = j
					continue
				}
			}
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

func plainRegion(src []rune, from int) bool {
	for i := from; i < len(src); i++ {
		switch src[i] {
		case '"', '\'', '`', '/':
			return false
		}
	}
	return true
}

// pythonBlockEnd walks lines after the declaration line (the line holding
// start). Blank lines never terminate. Any line, comment or code, indented
// at or below the declaration terminates the block at the previous content
// line; lines indented strictly deeper extend it. Tabs count as 4 columns.
func pythonBlockEnd(src []rune, start int) int {
	declStart := lineStart(src, start)
	declIndent := indentColumns(src, declStart)
	le := lineEnd(src, start)
	end := contentEnd(src, declStart, le)
	i := le
	for i < len(src) {
		ls := i + 1
		if ls >= len(src) {
			break
		}
		le = lineEnd(src, ls)
		if blankLine(src, ls, le) {
			i = le
			continue
		}
		if indentColumns(src, ls) <= declIndent {
			return end
		}
		end = contentEnd(src, ls, le)
		i = le
	}
	return len(src)
}

func lineStart(src []rune, i int) int {
	for i > 0 && src[i-1] != '\n' {
		i--
	}
	return i
}

func lineEnd(src []rune, i int) int {
	for i < len(src) && src[i] != '\n' {
		i++
	}
	return i
}

func indentColumns(src []rune, ls int) int {
	col := 0
	for i := ls; i < len(src); i++ {
		switch src[i] {
		case ' ':
			col++
		case '\t':
			col += 4
		default:
			return col
		}
	}
	return col
}

func blankLine(src []rune, ls, le int) bool {
	for i := ls; i < le; i++ {
		if !isSpace(src[i]) {
			return false
		}
	}
	return true
}

// contentEnd returns the offset just past the last non-whitespace rune in
// [ls, le), or ls for an all-whitespace line.
func contentEnd(src []rune, ls, le int) int {
	for i := le; i > ls; i-- {
		if !isSpace(src[i-1]) {
			return i
		}
	}
	return ls
}

func firstNonSpace(src []rune, from int) int {
	for i := from; i < len(src); i++ {
		if !isSpace(src[i]) {
			return i
		}
	}
	return -1
}
