// Package servicetag infers discipline, level and category tags from free-text service and
// package names, and decides whether a package can pay for a service.
package servicetag

import (
	"strings"
	"unicode"
)

// Dimension groups related tags.
type Dimension string

const (
	DimensionDiscipline Dimension = "discipline"
	DimensionLevel      Dimension = "level"
	DimensionCategory   Dimension = "category"
)

const (
	Kitesurf = "kitesurf"
	Wingfoil = "wingfoil"
	Efoil    = "efoil"
	Windsurf = "windsurf"
	Surf     = "surf"
	SUP      = "sup"

	Beginner     = "beginner"
	Intermediate = "intermediate"
	Advanced     = "advanced"

	Lesson      = "lesson"
	Rental      = "rental"
	Supervision = "supervision"
	Package     = "package"
)

type rule struct {
	dim      Dimension
	tag      string
	keywords []string
}

// rules are applied in order and each matched word is consumed, so compound names
// ("kitesurf", "wing foil") must come before the shorter words they contain.
var rules = []rule{
	{DimensionDiscipline, Kitesurf, []string{"kitesurf", "kitesurfing", "kiteboard", "kiteboarding", "kite surf", "kite"}},
	{DimensionDiscipline, Wingfoil, []string{"wingfoil", "wingfoiling", "wing foil", "wing foiling", "wing"}},
	{DimensionDiscipline, Efoil, []string{"efoil", "e foil", "electric foil"}},
	{DimensionDiscipline, Windsurf, []string{"windsurf", "windsurfing", "wind surf"}},
	{DimensionDiscipline, SUP, []string{"sup", "stand up paddle", "standup paddle", "paddleboard", "paddle board", "paddle"}},
	{DimensionDiscipline, Surf, []string{"surf", "surfing"}},

	{DimensionLevel, Beginner, []string{"beginner", "beginners", "intro", "introduction", "discovery", "starter", "basic", "first steps"}},
	{DimensionLevel, Intermediate, []string{"intermediate", "improver", "progression"}},
	{DimensionLevel, Advanced, []string{"advanced", "expert", "pro"}},

	{DimensionCategory, Supervision, []string{"supervision", "supervised", "assisted"}},
	{DimensionCategory, Rental, []string{"rental", "rentals", "rent", "hire", "equipment"}},
	{DimensionCategory, Package, []string{"package", "packages", "pack", "bundle"}},
	{DimensionCategory, Lesson, []string{"lesson", "lessons", "course", "class", "private", "group", "semi private", "tuition"}},
}

// compiled keyword token sequences, indexed like rules
var compiled = compileRules()

func compileRules() [][][]string {
	out := make([][][]string, len(rules))
	for i, r := range rules {
		for _, kw := range r.keywords {
			out[i] = append(out[i], tokenize(kw))
		}
	}
	return out
}

// TagSet is the classification of one text. Tags inside a dimension keep rule order.
type TagSet struct {
	Discipline []string `json:"discipline"`
	Level      []string `json:"level"`
	Category   []string `json:"category"`
}

// Get returns the tags of one dimension.
func (s TagSet) Get(dim Dimension) []string {
	switch dim {
	case DimensionDiscipline:
		return s.Discipline
	case DimensionLevel:
		return s.Level
	case DimensionCategory:
		return s.Category
	}
	return nil
}

// Has reports whether tag is present in dim.
func (s TagSet) Has(dim Dimension, tag string) bool {
	for _, t := range s.Get(dim) {
		if t == tag {
			return true
		}
	}
	return false
}

// Empty reports whether nothing was recognized.
func (s TagSet) Empty() bool {
	return len(s.Discipline) == 0 && len(s.Level) == 0 && len(s.Category) == 0
}

func (s *TagSet) add(dim Dimension, tag string) {
	if s.Has(dim, tag) {
		return
	}
	switch dim {
	case DimensionDiscipline:
		s.Discipline = append(s.Discipline, tag)
	case DimensionLevel:
		s.Level = append(s.Level, tag)
	case DimensionCategory:
		s.Category = append(s.Category, tag)
	}
}

// Classify tags text using the keyword table. Matching is case-insensitive on whole
// words; punctuation and hyphens separate words.
func Classify(text string) TagSet {
	set := TagSet{Discipline: []string{}, Level: []string{}, Category: []string{}}

	words := tokenize(text)
	used := make([]bool, len(words))

	for i, r := range rules {
		for _, kw := range compiled[i] {
			for pos := 0; pos+len(kw) <= len(words); pos++ {
				if !matchAt(words, used, kw, pos) {
					continue
				}
				for j := range kw {
					used[pos+j] = true
				}
				set.add(r.dim, r.tag)
			}
		}
	}
	return set
}

// Matches reports whether a package named packageText can be used for a service named
// serviceText. Every dimension tagged on both sides must share at least one tag; a
// dimension missing on either side does not constrain. The "package" category only
// describes the product itself and is ignored.
func Matches(packageText, serviceText string) bool {
	return MatchSets(Classify(packageText), Classify(serviceText))
}

// MatchSets is Matches over already classified texts.
func MatchSets(pkg, svc TagSet) bool {
	for _, dim := range []Dimension{DimensionDiscipline, DimensionLevel, DimensionCategory} {
		p, s := pkg.Get(dim), svc.Get(dim)
		if dim == DimensionCategory {
			p, s = without(p, Package), without(s, Package)
		}
		if len(p) == 0 || len(s) == 0 {
			continue
		}
		if !intersects(p, s) {
			return false
		}
	}
	return true
}

func matchAt(words []string, used []bool, kw []string, pos int) bool {
	for j, w := range kw {
		if used[pos+j] || words[pos+j] != w {
			return false
		}
	}
	return true
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func without(tags []string, drop string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != drop {
			out = append(out, t)
		}
	}
	return out
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
