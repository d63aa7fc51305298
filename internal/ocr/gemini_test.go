package ocr

import "testing"

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{`{"formulas":[]}`, `{"formulas":[]}`},
		{"```json\n{\"formulas\":[]}\n```", `{"formulas":[]}`},
		{"```\n{}\n```", `{}`},
		{"  {} ", `{}`},
	}
	for _, c := range cases {
		if got := stripCodeFences(c.in); got != c.want {
			t.Errorf("stripCodeFences(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
