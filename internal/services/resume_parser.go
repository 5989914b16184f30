package services

import (
	"log"
	"regexp"
	"strconv"
	"strings"

	"alfredoptarigan/ats-engine/internal/models"
)

// ResumeParserService turns raw resume text into a structured profile.
// It never fails: each field extraction is independent, and a field that
// cannot be extracted is simply absent on the profile.
type ResumeParserService interface {
	Parse(rawText, candidateName string, vocabulary []string) *models.CandidateProfile
}

type resumeParserService struct{}

func NewResumeParserService() ResumeParserService {
	return &resumeParserService{}
}

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?\(?[0-9]{1,3}\)?[-\s.]?[0-9]{3}[-\s.]?[0-9]{4,6}`)

	experiencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\+?\s*(?:years?|yrs?)\s*(?:of\s*)?(?:experience|exp)`),
		regexp.MustCompile(`experience\s*(?:of|:)?\s*(\d+)\+?\s*(?:years?|yrs?)`),
	}

	degreePattern = regexp.MustCompile(`(?i)\b(B\.?S\.?c?|B\.?A\.?|B\.?Tech|Bachelor(?:'s)?|M\.?S\.?c?|M\.?A\.?|M\.?Tech|M\.?B\.?A\.?|Master(?:'s)?|Ph\.?D\.?|Doctorate|Associate|Diploma)\b`)

	skillsSectionPattern    = regexp.MustCompile(`(?im)^\s*(?:technical\s+)?(?:skills?|competenc(?:y|ies))\s*:?\s*$`)
	summarySectionPattern   = regexp.MustCompile(`(?im)^\s*(?:summary|objective|profile|about)\s*:?\s*$`)
	experienceHeaderPattern = regexp.MustCompile(`(?im)^\s*(?:professional\s+|work\s+|relevant\s+)?(?:experience|employment(?:\s+history)?|work\s+history)\s*:?\s*$`)
)

const (
	maxEducationEntries = 5
	summaryFallbackLen  = 300
)

// Parse implements ResumeParserService. The vocabulary argument carries the
// skills from job descriptions the system has seen; it is merged with the
// static dictionary before matching.
func (p *resumeParserService) Parse(rawText, candidateName string, vocabulary []string) *models.CandidateProfile {
	text := CleanText(rawText)
	textLower := strings.ToLower(text)

	profile := &models.CandidateProfile{
		Name:    candidateName,
		RawText: rawText,
	}

	if email := emailPattern.FindString(text); email != "" {
		profile.Email = email
	}
	if phone := phonePattern.FindString(text); phone != "" {
		profile.Phone = phone
	}
	if years, ok := extractExperienceYears(textLower); ok {
		profile.ExperienceYears = &years
	}

	profile.Skills = extractSkills(text, textLower, vocabulary)
	profile.Education = extractEducation(text)
	profile.ExperienceSummary = extractExperienceSummary(text)

	if profile.Email == "" || profile.Phone == "" || profile.ExperienceYears == nil {
		log.Printf("⚠️  Partial resume extraction for %s (email=%t phone=%t experience=%t)",
			candidateName, profile.Email != "", profile.Phone != "", profile.ExperienceYears != nil)
	}

	return profile
}

// extractExperienceYears takes the maximum over every "N years of
// experience" style phrase found in the text.
func extractExperienceYears(textLower string) (int, bool) {
	best := -1
	for _, pattern := range experiencePatterns {
		for _, match := range pattern.FindAllStringSubmatch(textLower, -1) {
			if years, err := strconv.Atoi(match[1]); err == nil && years > best {
				best = years
			}
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

func extractSkills(text, textLower string, vocabulary []string) []string {
	// Prefer the skills section when the resume has one; fall back to the
	// whole document.
	searchText := textLower
	if section := sectionAfter(text, skillsSectionPattern, 12); section != "" {
		searchText = strings.ToLower(section)
	}

	seen := make(map[string]bool)
	var found []string

	match := func(skill string) {
		canonical := NormalizeSkill(skill)
		if canonical == "" || seen[foldSkill(canonical)] {
			return
		}
		if containsSkill(searchText, canonical) {
			seen[foldSkill(canonical)] = true
			found = append(found, canonical)
		}
	}

	for _, skill := range commonSkills {
		match(skill)
	}
	for _, skill := range vocabulary {
		match(skill)
	}

	return found
}

// containsSkill checks for the skill as a whole word; skills carrying
// non-word runes (C++, C#, CI/CD) get a plain substring check since word
// boundaries are meaningless around them.
func containsSkill(textLower, skill string) bool {
	skillLower := strings.ToLower(skill)
	if strings.ContainsFunc(skillLower, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && r != ' '
	}) {
		return strings.Contains(textLower, skillLower)
	}
	pattern, err := regexp.Compile(`\b` + regexp.QuoteMeta(skillLower) + `\b`)
	if err != nil {
		return strings.Contains(textLower, skillLower)
	}
	return pattern.MatchString(textLower)
}

func extractEducation(text string) []string {
	var entries []string
	seen := make(map[string]bool)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !degreePattern.MatchString(line) {
			continue
		}
		if !seen[line] {
			seen[line] = true
			entries = append(entries, line)
		}
		if len(entries) == maxEducationEntries {
			break
		}
	}

	return entries
}

// extractExperienceSummary returns the summary section when present, then
// the professional-experience section, then the first characters of the
// document.
func extractExperienceSummary(text string) string {
	if section := sectionAfter(text, summarySectionPattern, 6); section != "" {
		return truncateClean(section, 500)
	}
	if section := sectionAfter(text, experienceHeaderPattern, 10); section != "" {
		return truncateClean(section, 500)
	}

	cleaned := strings.Join(strings.Fields(text), " ")
	if len(cleaned) > summaryFallbackLen {
		return cleaned[:summaryFallbackLen] + "..."
	}
	return cleaned
}

// sectionAfter returns up to maxLines non-empty lines following the first
// line matching the header pattern, stopping at the next section header.
func sectionAfter(text string, header *regexp.Regexp, maxLines int) string {
	lines := strings.Split(text, "\n")
	start := -1
	for i, line := range lines {
		if header.MatchString(line) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return ""
	}

	var collected []string
	for _, line := range lines[start:] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if len(collected) > 0 {
				break
			}
			continue
		}
		if looksLikeSectionHeader(trimmed) {
			break
		}
		collected = append(collected, trimmed)
		if len(collected) == maxLines {
			break
		}
	}

	return strings.Join(collected, "\n")
}

func looksLikeSectionHeader(line string) bool {
	if len(line) > 40 {
		return false
	}
	trimmed := strings.TrimSuffix(line, ":")
	if trimmed == "" {
		return false
	}
	upper := strings.ToUpper(trimmed)
	return trimmed == upper && strings.ContainsFunc(trimmed, func(r rune) bool {
		return r >= 'A' && r <= 'Z'
	})
}

func truncateClean(text string, max int) string {
	cleaned := strings.Join(strings.Fields(text), " ")
	if len(cleaned) > max {
		return cleaned[:max]
	}
	return cleaned
}
