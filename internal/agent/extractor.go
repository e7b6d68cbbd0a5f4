package agent

import (
	"regexp"
	"strings"
)

// Question extraction runs an ordered chain of strategies over the
// LLM-authored plan text. Each strategy is tried only when the previous
// produced nothing; the chain can never yield zero questions because a
// fixed fallback list closes it out.

var (
	numberedMarker = regexp.MustCompile(`^\s*\d+\.\s+`)
	dashMarker     = regexp.MustCompile(`^\s*-\s+`)
	starMarker     = regexp.MustCompile(`^\s*\*\s+`)
	qMarker        = regexp.MustCompile(`(?i)^\s*Q\d+:\s+`)
	questionMarker = regexp.MustCompile(`(?i)^\s*Question\s+\d+:\s+`)

	headingLine   = regexp.MustCompile(`(?m)^###\s+(.+)$`)
	leadingNumber = regexp.MustCompile(`^\d+\.?\s*`)
	leadingBullet = regexp.MustCompile(`^[-*]\s*`)
	boldMarkup    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicMarkup  = regexp.MustCompile(`\*(.+?)\*`)
	spaces        = regexp.MustCompile(`\s+`)
)

var interrogativeWords = []string{"what", "how", "why", "when", "where", "which", "who"}

var cueWords = []string{"explain", "describe", "what", "how", "why", "tell"}

// FallbackQuestions is used when no questions can be extracted from a plan.
// The interview must always be able to proceed.
var FallbackQuestions = []string{
	"Can you tell me about yourself and your professional background?",
	"What are your key technical skills and areas of expertise?",
	"Describe a challenging project you've worked on recently.",
	"How do you approach problem-solving in your work?",
	"What are your career goals and aspirations?",
}

// ExtractQuestions parses the interview plan into an ordered list of
// distinct questions, capped at maxQuestions.
func ExtractQuestions(plan string, maxQuestions int) []string {
	strategies := []func(string) []string{
		extractListItems,
		extractHeadings,
		extractQuestionLines,
		extractSubstantialLines,
	}

	var raw []string
	for _, strategy := range strategies {
		raw = strategy(plan)
		if len(raw) > 0 {
			break
		}
	}

	cleaned := make([]string, 0, len(raw))
	for _, q := range raw {
		q = boldMarkup.ReplaceAllString(q, "$1")
		q = italicMarkup.ReplaceAllString(q, "$1")
		q = strings.TrimSpace(q)

		if containsAny(q, interrogativeWords) && !strings.HasSuffix(q, "?") {
			q += "?"
		}
		if len(q) > 10 {
			cleaned = append(cleaned, q)
		}
	}

	// De-duplicate case-insensitively, preserving first-seen order.
	seen := make(map[string]bool)
	unique := make([]string, 0, len(cleaned))
	for _, q := range cleaned {
		key := strings.ToLower(q)
		if !seen[key] {
			unique = append(unique, q)
			seen[key] = true
		}
	}

	if maxQuestions > 0 && len(unique) > maxQuestions {
		unique = unique[:maxQuestions]
	}
	if len(unique) == 0 {
		return append([]string(nil), FallbackQuestions...)
	}
	return unique
}

// extractListItems matches numbered, bulleted and labelled list items. Each
// marker family is tried separately; the first that produces any valid
// question wins. An item runs until the next marker of the same family or a
// blank line.
func extractListItems(plan string) []string {
	markers := []*regexp.Regexp{numberedMarker, dashMarker, starMarker, qMarker, questionMarker}
	lines := strings.Split(plan, "\n")

	for _, marker := range markers {
		var questions []string
		var current []string

		flush := func() {
			if len(current) == 0 {
				return
			}
			item := spaces.ReplaceAllString(strings.Join(current, " "), " ")
			item = strings.TrimSpace(item)
			// Imperative prompts ("Describe...", "Tell me...") are valid
			// interview questions without a question mark.
			if len(item) > 10 && (strings.Contains(item, "?") || containsAny(item, cueWords)) {
				questions = append(questions, item)
			}
			current = nil
		}

		for _, line := range lines {
			switch {
			case marker.MatchString(line):
				flush()
				current = []string{marker.ReplaceAllString(line, "")}
			case strings.TrimSpace(line) == "":
				flush()
			case len(current) > 0:
				current = append(current, strings.TrimSpace(line))
			}
		}
		flush()

		if len(questions) > 0 {
			return questions
		}
	}
	return nil
}

func extractHeadings(plan string) []string {
	var questions []string
	for _, m := range headingLine.FindAllStringSubmatch(plan, -1) {
		heading := strings.TrimSpace(m[1])
		if strings.Contains(heading, "?") && len(heading) > 10 {
			questions = append(questions, heading)
		}
	}
	return questions
}

func extractQuestionLines(plan string) []string {
	var questions []string
	for _, line := range strings.Split(plan, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasSuffix(line, "?") && len(line) > 15 {
			line = leadingNumber.ReplaceAllString(line, "")
			line = leadingBullet.ReplaceAllString(line, "")
			questions = append(questions, line)
		}
	}
	return questions
}

func extractSubstantialLines(plan string) []string {
	var questions []string
	for _, line := range strings.Split(plan, "\n") {
		line = strings.TrimSpace(line)
		if len(line) <= 20 {
			continue
		}
		if strings.HasPrefix(line, "##") || strings.HasPrefix(line, "**") ||
			strings.HasPrefix(line, "===") || strings.HasPrefix(line, "---") {
			continue
		}
		if strings.HasSuffix(line, ":") {
			continue
		}
		if strings.Contains(line, "?") || containsAny(line, cueWords) {
			questions = append(questions, line)
		}
	}
	return questions
}

func containsAny(s string, words []string) bool {
	lower := strings.ToLower(s)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
