// Package model defines shared data structures.
package model

import (
	"fmt"
	"time"
)

// YearMode controls how question dates are displayed.
type YearMode string

// Year display modes.
const (
	YearWestern  YearMode = "western"
	YearJapanese YearMode = "japanese"
	YearBoth     YearMode = "both"
)

// Valid reports whether the mode is one of the known values.
func (m YearMode) Valid() bool {
	switch m {
	case YearWestern, YearJapanese, YearBoth:
		return true
	}
	return false
}

// CalendarRange selects the year span questions are drawn from.
type CalendarRange string

// Question ranges.
const (
	RangeRecent      CalendarRange = "recent"
	RangeBirthday    CalendarRange = "birthday"
	RangeCompetition CalendarRange = "competition"
)

// Ranges lists all ranges in display order.
func Ranges() []CalendarRange {
	return []CalendarRange{RangeRecent, RangeBirthday, RangeCompetition}
}

// Valid reports whether the range is one of the known values.
func (r CalendarRange) Valid() bool {
	switch r {
	case RangeRecent, RangeBirthday, RangeCompetition:
		return true
	}
	return false
}

// Label returns the Japanese display label for the range.
func (r CalendarRange) Label() string {
	switch r {
	case RangeBirthday:
		return "誕生日"
	case RangeCompetition:
		return "競技"
	case RangeRecent:
		return "最近"
	}
	return string(r)
}

// CalendarSettings holds user-configurable quiz parameters.
type CalendarSettings struct {
	YearMode         YearMode `json:"yearMode"`
	CountdownSeconds int      `json:"countdownSeconds"`
	ShowNumbers      bool     `json:"showNumbers"`
	StartDay         int      `json:"startDay"` // 0: Sunday, 1: Monday
}

// CountdownChoices lists the selectable countdown durations.
var CountdownChoices = []int{3, 5, 10}

// Valid reports whether every field holds a known value.
func (s CalendarSettings) Valid() bool {
	if !s.YearMode.Valid() {
		return false
	}
	ok := false
	for _, c := range CountdownChoices {
		if s.CountdownSeconds == c {
			ok = true
		}
	}
	if !ok {
		return false
	}
	return s.StartDay == 0 || s.StartDay == 1
}

// Question is a single calendar date with a well-defined day of week.
type Question struct {
	Year  int
	Month time.Month
	Day   int
}

// Date returns the question as a time.Time in the local zone.
func (q Question) Date() time.Time {
	return time.Date(q.Year, q.Month, q.Day, 0, 0, 0, 0, time.Local)
}

// Weekday returns the day-of-week index (0 = Sunday).
func (q Question) Weekday() int {
	return int(q.Date().Weekday())
}

// LapRecord captures one answered question.
type LapRecord struct {
	QuestionNumber int    `json:"questionNumber"`
	Date           string `json:"date"`
	TimeMs         int64  `json:"time"`
	Correct        bool   `json:"correct"`
	UserAnswer     string `json:"userAnswer"`
	CorrectAnswer  string `json:"correctAnswer"`
}

// CalendarSessionRecord is the persisted outcome of one completed session.
type CalendarSessionRecord struct {
	ID             string           `json:"id"`
	Timestamp      int64            `json:"timestamp"` // completion time, Unix ms
	Range          CalendarRange    `json:"range"`
	TotalTimeMs    int64            `json:"totalTime"`
	PenaltySeconds int              `json:"penaltySeconds"`
	FinalScoreMs   int64            `json:"finalScore"`
	IsCorrectAll   bool             `json:"isCorrectAll"`
	Laps           []LapRecord      `json:"laps"`
	Settings       CalendarSettings `json:"settings"`
}

// CorrectCount returns the number of correct laps.
func (r CalendarSessionRecord) CorrectCount() int {
	n := 0
	for _, lap := range r.Laps {
		if lap.Correct {
			n++
		}
	}
	return n
}

// QuestionsPerSession is the fixed session length.
const QuestionsPerSession = 5

// HistoryCap is the maximum number of persisted session records.
const HistoryCap = 100

// DaysJP holds the weekday labels, Sunday first.
var DaysJP = []string{"日", "月", "火", "水", "木", "金", "土"}

// HiraganaSet holds the characters letter pairs are drawn from.
var HiraganaSet = []rune("あいうえおかきくけこさしすせそたちつてとなにぬねのはひふへ")

// FormatMillis renders a millisecond duration as seconds, e.g. "12.34s".
func FormatMillis(ms int64) string {
	return fmt.Sprintf("%.2fs", float64(ms)/1000.0)
}
