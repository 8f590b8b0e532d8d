package recommend

import (
	"testing"

	"myTerpMarket/domain"
)

func newTestParser() *VibeParser {
	return NewVibeParser(DefaultVibeMappings())
}

func TestParseTotality(t *testing.T) {
	p := newTestParser()

	queries := []string{
		"",
		"relaxed",
		"RELAXED",
		"something nobody mapped",
		"activity:",
		"cannabis question:",
		"   ",
		"!!!",
	}

	for _, q := range queries {
		profile, effects := p.Parse(q)
		if profile == nil {
			t.Errorf("Parse(%q) returned nil profile", q)
		}
		if len(effects) == 0 {
			t.Errorf("Parse(%q) returned no effects", q)
		}
	}
}

func TestParseFallback(t *testing.T) {
	p := newTestParser()

	profile, effects := p.Parse("xyzzy")

	want := domain.TerpeneProfile{"myrcene": 0.5, "limonene": 0.5, "pinene": 0.5, "caryophyllene": 0.5}
	for k, v := range want {
		if profile[k] != v {
			t.Errorf("fallback profile[%s] = %v, want %v", k, profile[k], v)
		}
	}
	if len(effects) != 1 || effects[0] != "Custom Experience" {
		t.Errorf("fallback effects = %v, want [Custom Experience]", effects)
	}
}

func TestParseCaseInsensitive(t *testing.T) {
	p := newTestParser()

	lowerProfile, _ := p.Parse("relaxed")
	upperProfile, _ := p.Parse("ReLaXeD")

	for k, v := range lowerProfile {
		if upperProfile[k] != v {
			t.Fatalf("case-sensitive mismatch on %s: %v vs %v", k, v, upperProfile[k])
		}
	}
}

func TestParseActivityHiking(t *testing.T) {
	p := newTestParser()

	// Stem matching must catch both the base word and the gerund.
	for _, query := range []string{"activity: hiking", "activity: a hike with friends"} {
		profile, effects := p.Parse(query)

		want := []string{"Energy", "Focus", "Physical Activity"}
		if len(effects) != len(want) {
			t.Fatalf("%q effects = %v, want %v", query, effects, want)
		}
		for i := range want {
			if effects[i] != want[i] {
				t.Fatalf("%q effects = %v, want %v", query, effects, want)
			}
		}

		// Hiking maps to the canonical energized profile.
		energized, _ := p.Parse("energized")
		for k, v := range energized {
			if profile[k] != v {
				t.Errorf("%q profile[%s] = %v, want energized %v", query, k, profile[k], v)
			}
		}
	}
}

func TestParseActivityFallback(t *testing.T) {
	p := newTestParser()

	_, effects := p.Parse("activity: quantum knitting")
	if len(effects) != 1 || effects[0] != "Activity-Optimized" {
		t.Errorf("unmatched activity effects = %v, want [Activity-Optimized]", effects)
	}
}

func TestParseEducation(t *testing.T) {
	p := newTestParser()

	_, effects := p.Parse("cannabis question: what helps with sleep?")
	if len(effects) == 0 || effects[0] != "Educational: Relaxation & Sleep" {
		t.Errorf("education effects = %v", effects)
	}

	_, effects = p.Parse("cannabis question: tell me about terpenes")
	if len(effects) == 0 || effects[0] != "Educational: General Guidance" {
		t.Errorf("education default effects = %v", effects)
	}
}

func TestParseRulePrecedence(t *testing.T) {
	p := newTestParser()

	// Activity prefix wins over a vibe keyword in the text.
	_, effects := p.Parse("activity: relaxing movie night")
	if effects[0] != "Relaxation" || len(effects) != 3 || effects[2] != "Immersion" {
		t.Errorf("activity rule did not take precedence: %v", effects)
	}

	// Category keyword wins over a vibe keyword later in the query.
	_, effects = p.Parse("edible for feeling relaxed")
	if effects[0] != "Long-lasting" {
		t.Errorf("category rule did not take precedence: %v", effects)
	}
}

func TestParseEdibleSkewsMyrcene(t *testing.T) {
	p := newTestParser()

	profile, effects := p.Parse("edible")
	if profile["myrcene"] <= profile["linalool"] {
		t.Errorf("edible profile should be myrcene-heavy: %v", profile)
	}

	found := false
	for _, e := range effects {
		if e == "Long-lasting" {
			found = true
		}
	}
	if !found {
		t.Errorf("edible effects missing Long-lasting: %v", effects)
	}
}

func TestParseVibeTableLookup(t *testing.T) {
	p := newTestParser()

	profile, effects := p.Parse("i want to feel sleepy tonight")
	if profile["myrcene"] != 0.9 {
		t.Errorf("sleepy profile myrcene = %v, want 0.9", profile["myrcene"])
	}
	if effects[0] != "Deep Sleep" {
		t.Errorf("sleepy effects = %v", effects)
	}
}

func TestParseDBOverride(t *testing.T) {
	// Rows appended after the defaults replace same-keyword entries, which
	// is how admin-edited DB rows are layered on.
	mappings := append(DefaultVibeMappings(), domain.VibeMapping{
		Keyword: "relaxed",
		Profile: domain.TerpeneProfile{"linalool": 1.0},
		Effects: []string{"House Blend Calm"},
	})
	p := NewVibeParser(mappings)

	profile, effects := p.Parse("relaxed")
	if profile["linalool"] != 1.0 || len(profile) != 1 {
		t.Errorf("override profile = %v", profile)
	}
	if effects[0] != "House Blend Calm" {
		t.Errorf("override effects = %v", effects)
	}
}

func TestParseDoesNotShareProfile(t *testing.T) {
	p := newTestParser()

	first, _ := p.Parse("relaxed")
	first["myrcene"] = 99

	second, _ := p.Parse("relaxed")
	if second["myrcene"] == 99 {
		t.Error("Parse returned a shared mutable profile")
	}
}
