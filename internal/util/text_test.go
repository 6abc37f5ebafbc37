package util

import "testing"

func TestNormalizeText(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "Ball Valve", want: "Ball Valve"},
		{name: "surrounding space", input: "  Ball Valve ", want: "Ball Valve"},
		{name: "internal runs", input: "Ball \t  Valve", want: "Ball Valve"},
		{name: "thin space", input: "1 1/2\"", want: "1 1/2\""},
		{name: "nbsp", input: "Ball Valve", want: "Ball Valve"},
		{name: "empty", input: "", want: ""},
		{name: "only spaces", input: "   ", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeText(tc.input)
			if got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
			if again := NormalizeText(got); again != got {
				t.Fatalf("not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestMakeItemKey(t *testing.T) {
	want := `ea | 1/2" | ball valve`
	if got := MakeItemKey(`1/2"`, "Ball Valve", "EA"); got != want {
		t.Fatalf("got %q", got)
	}

	variants := []struct{ size, desc, units string }{
		{`1/2"`, "Ball Valve", "EA"},
		{` 1/2" `, "BALL  VALVE", "ea"},
		{"1/2\"", "ball valve", "Ea"},
	}
	for _, v := range variants {
		if got := MakeItemKey(v.size, v.desc, v.units); got != want {
			t.Fatalf("key not canonical: %q from %+v", got, v)
		}
	}
}

func TestSizeToFloat(t *testing.T) {
	cases := []struct {
		input string
		want  float64
	}{
		{"", 0},
		{"2", 2},
		{"2.5", 2.5},
		{"¾", 0.75},
		{"1½", 1.5},
		{"3 x close", 3},
		{"2x1", 2},
		{`1/2"`, 0},
		{"x close", 0},
		{"DN50", 0},
	}
	for _, tc := range cases {
		if got := SizeToFloat(tc.input); got != tc.want {
			t.Fatalf("SizeToFloat(%q) = %v want %v", tc.input, got, tc.want)
		}
	}
}
