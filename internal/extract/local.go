package extract

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/coursetrack/syllabus-tracker/constants"
	"github.com/coursetrack/syllabus-tracker/internal/dates"
	"github.com/coursetrack/syllabus-tracker/internal/entity"
)

var (
	reTitleMonthDay = regexp.MustCompile(`(?i)(.+?)\s+(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\w*\s+\d{1,2}`)
	reMonthDay      = regexp.MustCompile(`(?i)(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\w*\s+\d{1,2}`)
	reMonthToken    = regexp.MustCompile(`(?i)^(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\w*$`)

	reGradingHeader  = regexp.MustCompile(`(?i)component.*due.*percentage`)
	reScheduleHeader = regexp.MustCompile(`(?i)(test|exam|quiz).*date`)
)

// proseTokenCount is the row width at which a dateless line in table mode is
// treated as a prose heading that ends the table.
const proseTokenCount = 6

// LocalExtractor scans raw syllabus text line-by-line using heuristic
// patterns. It never calls the network and never fails; unusable lines are
// simply skipped.
type LocalExtractor struct {
	year   int
	logger *slog.Logger
}

// NewLocalExtractor builds an extractor that resolves bare month-day dates
// against defaultYear (<= 0 means the current calendar year).
func NewLocalExtractor(defaultYear int, logger *slog.Logger) *LocalExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &LocalExtractor{year: defaultYear, logger: logger}
}

// Extract produces candidate events from text. Two recognition modes
// coexist: a free-text scan matching a trailing "<title> <Month> <day>"
// shape, and a tabular scan triggered by grading/schedule header lines.
// While table mode is active, rows are handled by the tabular scan only.
func (e *LocalExtractor) Extract(text string) []entity.CandidateEvent {
	var events []entity.CandidateEvent
	inTable := false

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			inTable = false
			continue
		}
		if reGradingHeader.MatchString(trimmed) || reScheduleHeader.MatchString(trimmed) {
			inTable = true
			continue
		}

		if inTable {
			ev, ok, prose := e.scanTableRow(trimmed)
			if prose {
				inTable = false
				// fall through to the free-text scan for this line
			} else {
				if ok {
					events = append(events, ev)
				}
				continue
			}
		}

		if ev, ok := e.scanFreeText(line); ok {
			events = append(events, ev)
		}
	}

	e.logger.Debug("local extraction done", "lines_mode", "scan", "events", len(events))
	return events
}

// scanFreeText matches the greedy-title / month-day regex pair on one line.
func (e *LocalExtractor) scanFreeText(line string) (entity.CandidateEvent, bool) {
	m := reTitleMonthDay.FindStringSubmatch(line)
	if m == nil {
		return entity.CandidateEvent{}, false
	}
	frag := reMonthDay.FindString(line)
	parsed, ok := dates.ParseFlexibleDate(frag, e.year)
	if !ok {
		return entity.CandidateEvent{}, false
	}
	return entity.CandidateEvent{
		Title:   strings.TrimSpace(m[1]),
		DueDate: &parsed,
		Type:    string(constants.Assignment),
	}, true
}

// scanTableRow treats the line as a whitespace-delimited table row: first
// token is the title, the date is the first month-name token plus up to two
// following tokens. A row contributes at most one event. prose reports that
// the line looks like a heading rather than a row, ending table mode.
func (e *LocalExtractor) scanTableRow(line string) (ev entity.CandidateEvent, ok, prose bool) {
	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		return entity.CandidateEvent{}, false, false
	}

	title := tokens[0]
	monthAt := -1
	for i, tok := range tokens[1:] {
		if reMonthToken.MatchString(tok) {
			monthAt = i + 1
			break
		}
	}
	if monthAt == -1 {
		if len(tokens) >= proseTokenCount {
			return entity.CandidateEvent{}, false, true
		}
		return entity.CandidateEvent{}, false, false
	}

	// Try the month token with two, one, then zero trailing tokens; the
	// shorter fragments recover rows like "A1 Feb 13th 13%".
	for take := 2; take >= 0; take-- {
		end := monthAt + 1 + take
		if end > len(tokens) {
			continue
		}
		frag := strings.Join(tokens[monthAt:end], " ")
		if parsed, okDate := dates.ParseFlexibleDate(frag, e.year); okDate {
			return entity.CandidateEvent{
				Title:   title,
				DueDate: &parsed,
				Type:    string(constants.InferEventType(title)),
			}, true, false
		}
	}
	return entity.CandidateEvent{}, false, false
}
