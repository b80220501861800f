// internal/scoring/fit/matchers.go
package fit

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"matching-workers/internal/models"
)

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// MatchRole compares the candidate's desired role with the role a job needs.
func MatchRole(userRole, jobRole string, synonyms map[string][]string) int {
	u, j := normalize(userRole), normalize(jobRole)
	if u == "" || j == "" {
		return neutralScore
	}
	if u == j {
		return roleExact
	}

	tokens := strings.FieldsFunc(u, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, syn := range synonyms[j] {
		syn = normalize(syn)
		if syn == u {
			return roleSynonym
		}
		// multi-word synonyms match as a phrase, single words only as a whole token
		if strings.Contains(syn, " ") {
			if strings.Contains(u, syn) {
				return roleSynonym
			}
			continue
		}
		for _, tok := range tokens {
			if tok == syn {
				return roleSynonym
			}
		}
	}
	return roleMiss
}

func MatchLeadType(leadType string, scores map[string]int) int {
	lt := normalize(leadType)
	if lt == "" {
		return neutralScore
	}
	if s, ok := scores[lt]; ok {
		return s
	}
	return leadTypeOther
}

func MatchSalesCycle(band string, scores map[string]int) int {
	if s, ok := scores[normalize(band)]; ok {
		return s
	}
	return neutralScore
}

// ParseCostBand reads a deal size out of a cost band such as "5k" or "12000".
// Range-coded bands ("25001_50000") are not understood and report false.
func ParseCostBand(band string, pattern *regexp.Regexp) (int, bool) {
	m := pattern.FindStringSubmatch(band)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, false
	}
	if len(m) > 2 && m[2] != "" {
		n *= 1000
	}
	return n, true
}

// MatchDealSize compares the candidate's average deal size with the deal
// size implied by the job's cost band.
func MatchDealSize(userDeal int, costBand string, pattern *regexp.Regexp) int {
	jobDeal, ok := ParseCostBand(costBand, pattern)
	switch {
	case userDeal > 0 && ok:
		lo, hi := int64(userDeal), int64(jobDeal)
		if lo > hi {
			lo, hi = hi, lo
		}
		return int((lo*200 + hi) / (2 * hi))
	case userDeal <= 0 && strings.TrimSpace(costBand) == "":
		return neutralScore
	default:
		return dealSizeLenient
	}
}

// MatchLocation scores how well the candidate's location suits the job.
// The second return value names the attribute that produced the score.
func MatchLocation(profile models.UserProfile, loc models.Location, flexible map[string]bool) (int, string) {
	mode := normalize(loc.Mode)
	if flexible[mode] {
		return locationFlexible, mode
	}
	if c := normalize(loc.City); c != "" && c == normalize(profile.City) {
		return locationCity, loc.City
	}
	if c := normalize(loc.Country); c != "" && c == normalize(profile.Country) {
		return locationCountry, loc.Country
	}
	return locationMiss, ""
}

// MatchTools returns the share of required job tools the candidate already
// uses, plus the matched job tools. A tool matches when either name contains
// the other, ignoring case.
func MatchTools(userTools, jobTools []string) (int, []string) {
	required := nonEmpty(jobTools)
	if len(required) == 0 {
		return toolsNoneRequired, nil
	}
	known := nonEmpty(userTools)
	if len(known) == 0 {
		return toolsNoneListed, nil
	}

	var matched []string
	for _, jt := range required {
		j := normalize(jt)
		for _, ut := range known {
			u := normalize(ut)
			if strings.Contains(j, u) || strings.Contains(u, j) {
				matched = append(matched, strings.TrimSpace(jt))
				break
			}
		}
	}
	score := int(math.Round(float64(len(matched)) / float64(len(required)) * 100))
	return score, matched
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
