// Package match implements the skill-overlap heuristics used to enrich
// listings at read time: match scores, the synthetic acceptance-rate
// estimate, and profile completeness. The acceptance estimate is documented
// as approximate and non-deterministic; callers asserting on it should check
// bounds, not exact values.
package match

import (
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/internova/internova/internal/models"
)

const (
	baseScore = 50
	maxScore  = 95
)

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// skillsMatch reports whether two skill tags fuzzily match: equality or
// substring containment, case-insensitive in both directions.
func skillsMatch(a, b string) bool {
	a, b = norm(a), norm(b)
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

// MatchedCount counts the user skills that fuzzily match at least one of the
// listing's required skills.
func MatchedCount(userSkills, required []string) int {
	n := 0
	for _, us := range userSkills {
		for _, rs := range required {
			if skillsMatch(us, rs) {
				n++
				break
			}
		}
	}
	return n
}

// RequiredOverlap returns the fraction of required skills covered by the
// user's skills, in [0, 1]. Zero required skills yields 0.
func RequiredOverlap(userSkills, required []string) float64 {
	if len(required) == 0 {
		return 0
	}
	n := 0
	for _, rs := range required {
		for _, us := range userSkills {
			if skillsMatch(us, rs) {
				n++
				break
			}
		}
	}
	return float64(n) / float64(len(required))
}

// Score computes the listing match score for a set of declared user skills:
// a baseline of 50, raised by 0.45 points per percent of required skills the
// user covers, capped at 95. With no declared skills the score is exactly the
// baseline.
func Score(userSkills, required []string) int {
	if len(userSkills) == 0 {
		return baseScore
	}
	pct := 0.0
	if len(required) > 0 {
		pct = float64(MatchedCount(userSkills, required)) / float64(len(required)) * 100
	}
	score := baseScore + int(math.Round(pct*0.45))
	if score > maxScore {
		score = maxScore
	}
	return score
}

// completenessFields is the number of tracked student profile fields.
const completenessFields = 9

// Completeness returns the percentage (0-100) of tracked student profile
// fields that are filled in.
func Completeness(p models.Profile) int {
	filled := 0
	for _, f := range []string{p.University, p.Course, p.Year, p.CGPA, p.Bio, p.Location, p.Photo, p.ResumeKey} {
		if strings.TrimSpace(f) != "" {
			filled++
		}
	}
	if len(p.Skills) > 0 {
		filled++
	}
	return int(math.Round(float64(filled) / completenessFields * 100))
}

// AcceptanceBase draws the synthetic per-read baseline in [10, 39].
func AcceptanceBase(rng *rand.Rand) int {
	return 10 + rng.Intn(30)
}

// AcceptanceEstimate adjusts a baseline acceptance rate by profile
// completeness, skill overlap and CGPA-vs-requirement comparison, clamped to
// [0, 95].
func AcceptanceEstimate(base int, p models.Profile, in models.Internship) int {
	rate := float64(base)

	completion := Completeness(p)
	if completion < 50 {
		rate *= 0.6
	} else if completion > 80 {
		rate *= 1.3
	}

	rate *= 0.7 + RequiredOverlap(p.Skills, in.Skills)*0.6

	if p.CGPA != "" && in.Requirements != nil && in.Requirements.CGPA > 0 {
		if cgpa, err := strconv.ParseFloat(strings.TrimSpace(p.CGPA), 64); err == nil {
			switch {
			case cgpa >= in.Requirements.CGPA:
				rate *= 1.2
			case cgpa < in.Requirements.CGPA-1:
				rate *= 0.7
			}
		}
	}

	est := int(math.Round(rate))
	if est > maxScore {
		est = maxScore
	}
	if est < 0 {
		est = 0
	}
	return est
}
