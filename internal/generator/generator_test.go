package generator

import (
	"testing"
	"time"

	"github.com/kioku-app/kioku/internal/model"
)

func TestQuestionsRespectRangeBounds(t *testing.T) {
	g := New()
	currentYear := time.Now().Year()
	cases := []struct {
		r         model.CalendarRange
		startYear int
		endYear   int
	}{
		{model.RangeRecent, currentYear - 1, currentYear + 1},
		{model.RangeBirthday, currentYear - 80, currentYear},
		{model.RangeCompetition, 1500, 2500},
	}
	for _, tc := range cases {
		for i := 0; i < 50; i++ {
			questions := g.Questions(tc.r, model.QuestionsPerSession)
			if len(questions) != model.QuestionsPerSession {
				t.Fatalf("%s: expected %d questions, got %d", tc.r, model.QuestionsPerSession, len(questions))
			}
			for _, q := range questions {
				if q.Year < tc.startYear || q.Year > tc.endYear {
					t.Fatalf("%s: year %d outside [%d, %d]", tc.r, q.Year, tc.startYear, tc.endYear)
				}
				if q.Month < time.January || q.Month > time.December {
					t.Fatalf("%s: invalid month %d", tc.r, q.Month)
				}
				if q.Day < 1 || q.Day > 28 {
					t.Fatalf("%s: day %d outside [1, 28]", tc.r, q.Day)
				}
			}
		}
	}
}

func TestQuestionWeekdayMatchesDate(t *testing.T) {
	q := model.Question{Year: 2024, Month: time.March, Day: 5}
	if q.Weekday() != int(time.Tuesday) {
		t.Fatalf("expected Tuesday (2), got %d", q.Weekday())
	}
}

func TestNumberIsTwoDigits(t *testing.T) {
	g := New()
	for i := 0; i < 200; i++ {
		n := g.Number()
		if len(n) != 2 || n[0] < '0' || n[0] > '9' || n[1] < '0' || n[1] > '9' {
			t.Fatalf("expected a zero-padded two-digit number, got %q", n)
		}
	}
}

func TestLetterPairUsesHiraganaSet(t *testing.T) {
	allowed := map[rune]struct{}{}
	for _, r := range model.HiraganaSet {
		allowed[r] = struct{}{}
	}
	g := New()
	for i := 0; i < 200; i++ {
		pair := []rune(g.LetterPair())
		if len(pair) != 2 {
			t.Fatalf("expected two characters, got %q", string(pair))
		}
		for _, r := range pair {
			if _, ok := allowed[r]; !ok {
				t.Fatalf("character %q outside the hiragana set", r)
			}
		}
	}
}
