package agent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractQuestionsNumberedList(t *testing.T) {
	plan := "1. What is your experience with Python?\n2. Describe a bug you fixed."

	questions := ExtractQuestions(plan, 10)

	require.Len(t, questions, 2)
	assert.Equal(t, "What is your experience with Python?", questions[0])
	assert.Equal(t, "Describe a bug you fixed.", questions[1])
}

func TestExtractQuestionsFullPlan(t *testing.T) {
	plan := `### Interview Overview
This interview assesses backend development skills.

### Question List
1. What is your experience with Go?
2. How do you handle errors in a large codebase?
3. Describe a production incident you debugged.

### Difficulty Progression
Questions build from background to concrete scenarios.`

	questions := ExtractQuestions(plan, 10)

	require.Len(t, questions, 3)
	assert.Equal(t, "What is your experience with Go?", questions[0])
	assert.Equal(t, "How do you handle errors in a large codebase?", questions[1])
	assert.Equal(t, "Describe a production incident you debugged.", questions[2])
}

func TestExtractQuestionsMultilineItem(t *testing.T) {
	plan := "1. What is your experience\n   with distributed systems?\n2. How do you test concurrent code?"

	questions := ExtractQuestions(plan, 10)

	require.Len(t, questions, 2)
	assert.Equal(t, "What is your experience with distributed systems?", questions[0])
}

func TestExtractQuestionsHeadings(t *testing.T) {
	plan := "### What motivates you as an engineer?\nSome commentary.\n### Closing notes"

	questions := ExtractQuestions(plan, 10)

	require.Len(t, questions, 1)
	assert.Equal(t, "What motivates you as an engineer?", questions[0])
}

func TestExtractQuestionsPlainQuestionLines(t *testing.T) {
	plan := "Intro text without structure\nCould you walk me through your last deployment?\nshort?\n"

	questions := ExtractQuestions(plan, 10)

	require.Len(t, questions, 1)
	assert.Equal(t, "Could you walk me through your last deployment?", questions[0])
}

func TestExtractQuestionsAppendsQuestionMark(t *testing.T) {
	plan := "1. What tools do you rely on daily"

	questions := ExtractQuestions(plan, 10)

	require.Len(t, questions, 1)
	assert.True(t, strings.HasSuffix(questions[0], "?"))
}

func TestExtractQuestionsStripsMarkup(t *testing.T) {
	plan := "1. **What is your greatest strength?**"

	questions := ExtractQuestions(plan, 10)

	require.Len(t, questions, 1)
	assert.Equal(t, "What is your greatest strength?", questions[0])
}

func TestExtractQuestionsDeduplicates(t *testing.T) {
	plan := "1. What is your name?\n2. WHAT IS YOUR NAME?\n3. Where are you based?"

	questions := ExtractQuestions(plan, 10)

	require.Len(t, questions, 2)
	assert.Equal(t, "What is your name?", questions[0])
	assert.Equal(t, "Where are you based?", questions[1])
}

func TestExtractQuestionsCapsAtMax(t *testing.T) {
	plan := strings.Join([]string{
		"1. What is question one?",
		"2. What is question two?",
		"3. What is question three?",
		"4. What is question four?",
	}, "\n")

	questions := ExtractQuestions(plan, 2)

	require.Len(t, questions, 2)
	assert.Equal(t, "What is question one?", questions[0])
	assert.Equal(t, "What is question two?", questions[1])
}

func TestExtractQuestionsFallback(t *testing.T) {
	questions := ExtractQuestions("no structure here at all", 10)

	assert.Equal(t, FallbackQuestions, questions)
}

func TestExtractQuestionsFallbackIsCopy(t *testing.T) {
	questions := ExtractQuestions("", 10)
	questions[0] = "mutated"

	assert.NotEqual(t, "mutated", FallbackQuestions[0])
}
