package match

import "strings"

// CommonSkills is the fixed vocabulary used for keyword-based skill
// extraction when the AI collaborator is unavailable.
var CommonSkills = []string{
	"JavaScript", "Python", "Java", "React", "Node.js", "TypeScript", "HTML", "CSS",
	"SQL", "MongoDB", "PostgreSQL", "Git", "Docker", "AWS", "Azure", "Linux",
	"C++", "C#", "PHP", "Ruby", "Go", "Swift", "Kotlin", "Angular", "Vue.js",
	"Express.js", "Django", "Flask", "Spring Boot", "Laravel", "REST API", "GraphQL",
	"Machine Learning", "Data Science", "AI", "TensorFlow", "PyTorch", "Pandas",
	"Excel", "Power BI", "Tableau", "Photoshop", "Figma", "UI/UX Design",
	"Project Management", "Agile", "Scrum", "Communication", "Leadership", "Teamwork",
}

// defaultSkills is the ultimate fallback when nothing can be extracted at all.
var defaultSkills = []string{"Communication", "Teamwork", "Problem Solving", "Time Management", "Adaptability"}

// MaxExtractedSkills caps the skill-extraction result.
const MaxExtractedSkills = 5

// KeywordSkills scans text for occurrences of the common-skill vocabulary,
// case-insensitively, returning at most MaxExtractedSkills tags in vocabulary
// order.
func KeywordSkills(text string) []string {
	textLower := strings.ToLower(text)
	var found []string
	for _, skill := range CommonSkills {
		if strings.Contains(textLower, strings.ToLower(skill)) {
			found = append(found, skill)
			if len(found) >= MaxExtractedSkills {
				break
			}
		}
	}
	return found
}

// FinalizeSkills combines AI-extracted tags with keyword matches and pads or
// trims the result to exactly MaxExtractedSkills entries, deduplicated.
func FinalizeSkills(extracted []string, text string) []string {
	skills := append([]string(nil), extracted...)

	if len(skills) < MaxExtractedSkills {
		skills = mergeUnique(skills, KeywordSkills(text))
	}

	switch {
	case len(skills) == 0:
		skills = append(skills, defaultSkills...)
	case len(skills) < MaxExtractedSkills:
		skills = mergeUnique(skills, CommonSkills)
	}

	return skills[:MaxExtractedSkills]
}

func mergeUnique(dst, src []string) []string {
	seen := make(map[string]struct{}, len(dst))
	for _, s := range dst {
		seen[strings.ToLower(s)] = struct{}{}
	}
	for _, s := range src {
		if _, ok := seen[strings.ToLower(s)]; ok {
			continue
		}
		seen[strings.ToLower(s)] = struct{}{}
		dst = append(dst, s)
		if len(dst) >= MaxExtractedSkills {
			break
		}
	}
	return dst
}

// WithoutExisting drops tags already present in existing (case-insensitive),
// so extracted skills do not duplicate a profile's declared ones.
func WithoutExisting(skills, existing []string) []string {
	seen := make(map[string]struct{}, len(existing))
	for _, s := range existing {
		seen[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if _, ok := seen[strings.ToLower(strings.TrimSpace(s))]; ok {
			continue
		}
		out = append(out, s)
	}
	return out
}
