package recommend

import (
	"strings"

	"myTerpMarket/domain"
)

// Effect labels and profile used when nothing else matches.
var (
	balancedProfile = domain.TerpeneProfile{
		"myrcene":       0.5,
		"limonene":      0.5,
		"pinene":        0.5,
		"caryophyllene": 0.5,
	}
	balancedEffects = []string{"Custom Experience"}
)

// DefaultVibeMappings is the compiled-in vibe knowledge base. The admin
// tooling can override or extend these rows in the vibe_mappings table;
// rows loaded from the DB replace defaults with the same keyword.
func DefaultVibeMappings() []domain.VibeMapping {
	return []domain.VibeMapping{
		{
			Keyword: "relaxed",
			Profile: domain.TerpeneProfile{"myrcene": 0.8, "linalool": 0.7, "caryophyllene": 0.5},
			Effects: []string{"Relaxation", "Stress Relief", "Calm"},
		},
		{
			Keyword: "sleepy",
			Profile: domain.TerpeneProfile{"myrcene": 0.9, "linalool": 0.8, "terpinolene": 0.4},
			Effects: []string{"Deep Sleep", "Sedation", "Night-time Relief"},
		},
		{
			Keyword: "energized",
			Profile: domain.TerpeneProfile{"limonene": 0.8, "pinene": 0.7, "terpinolene": 0.5},
			Effects: []string{"Energy", "Focus", "Uplifted Mood"},
		},
		{
			Keyword: "focused",
			Profile: domain.TerpeneProfile{"pinene": 0.8, "limonene": 0.5, "caryophyllene": 0.3},
			Effects: []string{"Focus", "Mental Clarity", "Alertness"},
		},
		{
			Keyword: "happy",
			Profile: domain.TerpeneProfile{"limonene": 0.9, "pinene": 0.4, "myrcene": 0.3},
			Effects: []string{"Euphoria", "Mood Boost", "Positivity"},
		},
		{
			Keyword: "creative",
			Profile: domain.TerpeneProfile{"limonene": 0.7, "pinene": 0.6, "terpinolene": 0.4},
			Effects: []string{"Creativity", "Inspiration", "Flow State"},
		},
		{
			Keyword: "social",
			Profile: domain.TerpeneProfile{"limonene": 0.8, "caryophyllene": 0.5, "myrcene": 0.3},
			Effects: []string{"Sociability", "Conversation", "Uplifted Mood"},
		},
		{
			Keyword: "pain relief",
			Profile: domain.TerpeneProfile{"caryophyllene": 0.9, "myrcene": 0.6, "humulene": 0.5},
			Effects: []string{"Pain Relief", "Anti-inflammatory", "Body Comfort"},
		},
		{
			Keyword: "calm",
			Profile: domain.TerpeneProfile{"linalool": 0.8, "caryophyllene": 0.5, "limonene": 0.4},
			Effects: []string{"Anxiety Relief", "Calm", "Ease"},
		},
		{
			Keyword: "hungry",
			Profile: domain.TerpeneProfile{"myrcene": 0.7, "caryophyllene": 0.6, "humulene": 0.3},
			Effects: []string{"Appetite Stimulation", "Body Relaxation", "Comfort"},
		},
	}
}

// parseRule is one ordered matching rule. Rules are checked in declaration
// order and the first hit wins, so specific intents (activity, education)
// override generic vibe matching.
type parseRule func(p *VibeParser, query string) (domain.TerpeneProfile, []string, bool)

// VibeParser turns a free-text vibe query into a target terpene profile and
// human-readable effect labels. Matching is substring containment over
// lowercased input; no tokenization. Parse never fails.
type VibeParser struct {
	order    []string
	mappings map[string]domain.VibeMapping
	rules    []parseRule
}

// NewVibeParser builds a parser over the given mapping rows. Rows later in
// the slice override earlier rows with the same keyword, so callers merge DB
// rows over DefaultVibeMappings() by appending them.
func NewVibeParser(mappings []domain.VibeMapping) *VibeParser {
	p := &VibeParser{
		mappings: make(map[string]domain.VibeMapping, len(mappings)),
	}

	for _, m := range mappings {
		key := strings.ToLower(strings.TrimSpace(m.Keyword))
		if key == "" {
			continue
		}
		if _, seen := p.mappings[key]; !seen {
			p.order = append(p.order, key)
		}
		p.mappings[key] = m
	}

	p.rules = []parseRule{
		(*VibeParser).matchActivity,
		(*VibeParser).matchEducation,
		(*VibeParser).matchCategoryKeyword,
		(*VibeParser).matchVibeTable,
	}

	return p
}

// Parse is total: every input, including the empty string, yields a non-nil
// profile and at least one effect label.
func (p *VibeParser) Parse(query string) (domain.TerpeneProfile, []string) {
	q := strings.ToLower(strings.TrimSpace(query))

	for _, rule := range p.rules {
		if profile, effects, ok := rule(p, q); ok {
			return profile, effects
		}
	}

	return balancedProfile.Clone(), append([]string(nil), balancedEffects...)
}

// lookup resolves a canonical keyword against the loaded table, falling back
// to the balanced profile if an admin removed the row.
func (p *VibeParser) lookup(keyword string) (domain.TerpeneProfile, []string) {
	if m, ok := p.mappings[keyword]; ok {
		return m.Profile.Clone(), append([]string(nil), m.Effects...)
	}
	return balancedProfile.Clone(), append([]string(nil), balancedEffects...)
}

// "activity:<text>" queries map a planned activity to a canonical vibe.
func (p *VibeParser) matchActivity(query string) (domain.TerpeneProfile, []string, bool) {
	text, ok := strings.CutPrefix(query, "activity:")
	if !ok {
		return nil, nil, false
	}
	text = strings.TrimSpace(text)

	activityRules := []struct {
		keys    []string
		keyword string
		effects []string
	}{
		{[]string{"party", "social", "concert"}, "social", []string{"Social Energy", "Euphoria", "Confidence"}},
		{[]string{"creative", "art", "music"}, "creative", []string{"Creativity", "Inspiration", "Artistic Flow"}},
		{[]string{"hik", "outdoor", "exercise"}, "energized", []string{"Energy", "Focus", "Physical Activity"}},
		{[]string{"movie", "relax", "chill"}, "relaxed", []string{"Relaxation", "Comfort", "Immersion"}},
	}

	for _, r := range activityRules {
		for _, k := range r.keys {
			if strings.Contains(text, k) {
				profile, _ := p.lookup(r.keyword)
				return profile, append([]string(nil), r.effects...), true
			}
		}
	}

	return balancedProfile.Clone(), []string{"Activity-Optimized"}, true
}

// "cannabis question:<text>" queries come from the education kiosk flow.
func (p *VibeParser) matchEducation(query string) (domain.TerpeneProfile, []string, bool) {
	text, ok := strings.CutPrefix(query, "cannabis question:")
	if !ok {
		return nil, nil, false
	}
	text = strings.TrimSpace(text)

	educationRules := []struct {
		keys    []string
		keyword string
		effects []string
	}{
		{[]string{"relax", "sleep", "anxiety"}, "relaxed", []string{"Educational: Relaxation & Sleep"}},
		{[]string{"energy", "focus", "alert"}, "energized", []string{"Educational: Energy & Focus"}},
		{[]string{"pain", "inflammation", "relief"}, "pain relief", []string{"Educational: Pain Management"}},
		{[]string{"creat", "inspire", "art"}, "creative", []string{"Educational: Creativity"}},
	}

	for _, r := range educationRules {
		for _, k := range r.keys {
			if strings.Contains(text, k) {
				profile, _ := p.lookup(r.keyword)
				return profile, append([]string(nil), r.effects...), true
			}
		}
	}

	return balancedProfile.Clone(), []string{"Educational: General Guidance"}, true
}

// Category keywords anywhere in the query get consumption-tuned profiles,
// e.g. edibles skew myrcene-heavy because effects are slow and long-lasting.
func (p *VibeParser) matchCategoryKeyword(query string) (domain.TerpeneProfile, []string, bool) {
	categoryRules := []struct {
		keys    []string
		profile domain.TerpeneProfile
		effects []string
	}{
		{
			[]string{"concentrate", "extract"},
			domain.TerpeneProfile{"caryophyllene": 0.7, "limonene": 0.6, "myrcene": 0.5},
			[]string{"Potent", "Fast-acting", "Intense"},
		},
		{
			[]string{"flower", "bud"},
			domain.TerpeneProfile{"myrcene": 0.6, "pinene": 0.5, "limonene": 0.5},
			[]string{"Classic Experience", "Full Spectrum", "Balanced"},
		},
		{
			[]string{"edible"},
			domain.TerpeneProfile{"myrcene": 0.8, "linalool": 0.5, "caryophyllene": 0.4},
			[]string{"Long-lasting", "Body Effects", "Gradual Onset"},
		},
		{
			[]string{"vape", "cartridge"},
			domain.TerpeneProfile{"limonene": 0.6, "pinene": 0.5, "terpinolene": 0.4},
			[]string{"Fast-acting", "Discreet", "Controlled Dosing"},
		},
	}

	for _, r := range categoryRules {
		for _, k := range r.keys {
			if strings.Contains(query, k) {
				return r.profile.Clone(), append([]string(nil), r.effects...), true
			}
		}
	}

	return nil, nil, false
}

// Direct vibe-table lookup: first loaded keyword contained in the query wins.
func (p *VibeParser) matchVibeTable(query string) (domain.TerpeneProfile, []string, bool) {
	if query == "" {
		return nil, nil, false
	}

	for _, key := range p.order {
		if strings.Contains(query, key) {
			profile, effects := p.lookup(key)
			return profile, effects, true
		}
	}

	return nil, nil, false
}
