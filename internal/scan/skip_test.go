package scan

import "testing"

func TestSkipStringEscapes(t *testing.T) {
	cases := []struct {
		src  string
		want int
	}{
		{`"abc"x`, 5},
		{`"a\"b"x`, 6},
		{`"a\\"x`, 5},
		{`'it\'s'x`, 7},
		{`"unterminated`, 13},
		{`"esc at end\`, 12},
	}
	for _, tc := range cases {
		got := skipString([]rune(tc.src), 0)
		if got != tc.want {
			t.Errorf("skipString(%q): got %d want %d", tc.src, got, tc.want)
		}
	}
}

func TestSkipTemplateNestedInterpolation(t *testing.T) {
	cases := []struct {
		src  string
		want int
	}{
		{"`abc`x", 5},
		{"`a${b}c`x", 8},
		{"`a${ {x: 1} }c`x", 15},
		{"`a${`inner${d}`}c`x", 18},
		{"`a${\"}\"}c`x", 10},
		{"`unterminated", 13},
	}
	for _, tc := range cases {
		got := skipTemplate([]rune(tc.src), 0)
		if got != tc.want {
			t.Errorf("skipTemplate(%q): got %d want %d", tc.src, got, tc.want)
		}
	}
}

func TestSkipComments(t *testing.T) {
	if got := skipLineComment([]rune("// hi\nrest"), 0); got != 5 {
		t.Errorf("line comment: got %d want 5", got)
	}
	if got := skipLineComment([]rune("// to eof"), 0); got != 9 {
		t.Errorf("line comment eof: got %d want 9", got)
	}
	if got := skipBlockComment([]rune("/* x */rest"), 0); got != 7 {
		t.Errorf("block comment: got %d want 7", got)
	}
	if got := skipBlockComment([]rune("/* open"), 0); got != 7 {
		t.Errorf("unterminated block: got %d want 7", got)
	}
}

func TestSkipRegex(t *testing.T) {
	src := []rune("/ab/g;")
	end, ok := skipRegex(src, 0)
	if !ok || end != 5 {
		t.Fatalf("basic regex: got %d,%v", end, ok)
	}

	src = []rune(`/[/}{]/;`)
	end, ok = skipRegex(src, 0)
	if !ok || end != 7 {
		t.Fatalf("class with slash and braces: got %d,%v", end, ok)
	}

	src = []rune(`/a\/b/;`)
	end, ok = skipRegex(src, 0)
	if !ok || end != 6 {
		t.Fatalf("escaped slash: got %d,%v", end, ok)
	}

	// newline before the closing slash: not a regex after all
	if _, ok = skipRegex([]rune("/ab\ncd/"), 0); ok {
		t.Fatal("newline must abort the regex interpretation")
	}
}

func TestRegexAllowed(t *testing.T) {
	allowed := []string{"x = /", "f(/", "[/", "a, /", "return /", "typeof /", "{ /"}
	for _, src := range allowed {
		rs := []rune(src)
		if !regexAllowed(rs, len(rs)-1) {
			t.Errorf("%q: expected regex position", src)
		}
	}
	division := []string{"a /", "x) /", "b] /", "count /", `"s" /`, "1 /"}
	for _, src := range division {
		rs := []rune(src)
		if regexAllowed(rs, len(rs)-1) {
			t.Errorf("%q: expected division position", src)
		}
	}
}
