package game

import "testing"

func TestStatusLine(t *testing.T) {
	got := StatusLine(Score{Score: 3, ShotsLeft: 7, TimeLeft: 42})
	if want := "Score 3  Shots 7  Time 42"; got != want {
		t.Fatalf("StatusLine = %q, want %q", got, want)
	}
	if BestLine(0, "ann") != "" {
		t.Fatal("BestLine shows an empty record")
	}
	if got := BestLine(5, "ann"); got != "Best 5 (ann)" {
		t.Fatalf("BestLine = %q", got)
	}
}

func TestPowerBar(t *testing.T) {
	cases := []struct {
		power, width int
		want         string
	}{
		{0, 4, "----"},
		{50, 4, "##--"},
		{100, 4, "####"},
		{150, 4, "####"},
		{-5, 4, "----"},
		{50, 0, ""},
	}
	for _, tc := range cases {
		if got := PowerBar(tc.power, tc.width); got != tc.want {
			t.Errorf("PowerBar(%d,%d) = %q, want %q", tc.power, tc.width, got, tc.want)
		}
	}
}
