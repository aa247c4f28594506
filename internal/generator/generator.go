// Package generator produces random drill items.
package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/kioku-app/kioku/internal/model"
)

// Year span for the competition range.
const (
	competitionStartYear = 1500
	competitionEndYear   = 2500
)

// Generator produces randomized questions and drill items.
type Generator struct {
	rnd *rand.Rand
	now func() time.Time
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return &Generator{
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
}

// Questions draws a fresh batch of calendar questions for the range.
func (g *Generator) Questions(r model.CalendarRange, count int) []model.Question {
	questions := make([]model.Question, 0, count)
	for i := 0; i < count; i++ {
		questions = append(questions, g.question(r))
	}
	return questions
}

func (g *Generator) question(r model.CalendarRange) model.Question {
	currentYear := g.now().Year()
	var startYear, endYear int
	switch r {
	case model.RangeBirthday:
		startYear = currentYear - 80
		endYear = currentYear
	case model.RangeCompetition:
		startYear = competitionStartYear
		endYear = competitionEndYear
	default:
		startYear = currentYear - 1
		endYear = currentYear + 1
	}
	return model.Question{
		Year:  startYear + g.rnd.Intn(endYear-startYear+1),
		Month: time.Month(1 + g.rnd.Intn(12)),
		// Days stop at 28 so every generated date is valid in every month.
		Day: 1 + g.rnd.Intn(28),
	}
}

// Number draws a zero-padded two-digit number, "00" through "99".
func (g *Generator) Number() string {
	return fmt.Sprintf("%02d", g.rnd.Intn(100))
}

// LetterPair draws two hiragana characters.
func (g *Generator) LetterPair() string {
	first := model.HiraganaSet[g.rnd.Intn(len(model.HiraganaSet))]
	second := model.HiraganaSet[g.rnd.Intn(len(model.HiraganaSet))]
	return string(first) + string(second)
}
