package emotion

import "testing"

func TestSchemeLabels(t *testing.T) {
	if got := SchemeNormal.Labels(); len(got) != 3 || got[0] != "positive" {
		t.Fatalf("normal labels = %v", got)
	}
	if got := SchemeEkman.Labels(); len(got) != 7 || got[len(got)-1] != "neutral" {
		t.Fatalf("ekman labels = %v", got)
	}
	if Scheme("mood").Labels() != nil {
		t.Fatalf("unknown scheme should have nil labels")
	}
	if Scheme("mood").Valid() {
		t.Fatalf("unknown scheme should not be valid")
	}
}

func TestRound5(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0.123456789, 0.12346},
		{0.999995, 1},
		{0.000004, 0},
		{1, 1},
	}
	for _, c := range cases {
		if got := Round5(c.in); got != c.want {
			t.Fatalf("Round5(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestDistributionRound(t *testing.T) {
	d := Distribution{"joy": 0.333333333, "anger": 0.666666667}
	d.Round()
	if d["joy"] != 0.33333 || d["anger"] != 0.66667 {
		t.Fatalf("rounded distribution = %v", d)
	}
}

func TestArgMax(t *testing.T) {
	d := Distribution{"positive": 0.2, "neutral": 0.5, "negative": 0.3}
	label, score, ok := ArgMax(SchemeNormal, d)
	if !ok || label != "neutral" || score != 0.5 {
		t.Fatalf("ArgMax = %q %v %v", label, score, ok)
	}

	// Ties resolve to the earlier label in canonical order
	tie := Distribution{"positive": 0.4, "negative": 0.4, "neutral": 0.2}
	label, _, ok = ArgMax(SchemeNormal, tie)
	if !ok || label != "positive" {
		t.Fatalf("tie ArgMax = %q %v", label, ok)
	}

	// Labels outside the scheme are ignored
	alien := Distribution{"bored": 0.9}
	if _, _, ok := ArgMax(SchemeNormal, alien); ok {
		t.Fatalf("ArgMax over alien labels should report ok=false")
	}

	if _, _, ok := ArgMax(SchemeNormal, nil); ok {
		t.Fatalf("ArgMax over nil should report ok=false")
	}
}
