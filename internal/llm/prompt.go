package llm

import (
	"fmt"
	"strings"

	"github.com/coursetrack/syllabus-tracker/constants"
	"github.com/coursetrack/syllabus-tracker/internal/entity"
)

// BuildExtractionSystemPrompt is the fixed contract demanded of the remote
// model: a raw JSON array of {title, due_date, type, accuracy} objects,
// nothing else.
func BuildExtractionSystemPrompt() string {
	return strings.TrimSpace(`
You are replacing a production LLM.

CRITICAL REQUIREMENTS:
- Output MUST be a raw JSON array.
- Do NOT wrap in markdown.
- Do NOT include explanation.
- Do NOT include code fences.
- Do NOT include text before or after JSON.

Required format:

[
  {
    "title": string,
    "due_date": string (YYYY-MM-DD) or null,
    "type": string,
    "accuracy": number
  }
]

"type" must be one of:
` + strings.Join(constants.EventTypeStrings(), ", ") + `

Rules:
- Dates must be normalized to YYYY-MM-DD.
- If date cannot be determined, use null.
- "accuracy" is confidence from 0 to 100 for that specific entry.
- Do not include extra fields beyond title, due_date, type, accuracy.
- Do not reorder keys.
- Return [] if nothing found.
`)
}

// BuildExtractionUserPrompt embeds the raw syllabus text.
func BuildExtractionUserPrompt(text string) string {
	return strings.TrimSpace(fmt.Sprintf(`
Extract all course events (assignments, tests, quizzes, exams, projects, presentations, deadlines).

Normalize all dates to YYYY-MM-DD.

Text:
%s`, text))
}

// BuildPlanSystemPrompt demands a raw JSON study-plan object.
func BuildPlanSystemPrompt() string {
	return strings.TrimSpace(`
You are a helpful academic advisor creating personalized study plans.

CRITICAL REQUIREMENTS:
- Output MUST be a raw JSON object (not wrapped in markdown or code blocks).
- Do NOT include explanation text before or after JSON.
- Do NOT include code fences.

Required format:

{
  "overview": string (brief description of the course study approach),
  "weekly_schedule": [string, string, ...] (array of 4-8 weekly recommendations),
  "study_tips": [string, string, ...] (array of 5-8 practical tips),
  "resource_recommendations": string (recommended resources and tools)
}

Be practical and specific. Base recommendations on the actual assignments provided.
`)
}

// BuildPlanUserPrompt formats the extracted events into readable lines.
func BuildPlanUserPrompt(events []entity.CourseEvent, courseName string) string {
	lines := make([]string, 0, len(events))
	for _, e := range events {
		due := "TBD"
		if e.DueDate != nil {
			due = *e.DueDate
		}
		lines = append(lines, fmt.Sprintf("- %s (%s): Due %s", e.Title, e.Type, due))
	}

	return strings.TrimSpace(fmt.Sprintf(`
Create a personalized study plan for %s based on these assignments:

%s

Generate practical, actionable guidance that helps the student succeed in this course.`,
		courseName, strings.Join(lines, "\n")))
}
