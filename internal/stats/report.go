package stats

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/kioku-app/kioku/internal/history"
	"github.com/kioku-app/kioku/internal/model"
)

const terminalWidthBackup = 80

// TerminalWidth returns the stdout terminal width, or a backup value when
// stdout is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// RenderPersonalBests prints the best final score per range.
func RenderPersonalBests(w io.Writer, records []model.CalendarSessionRecord) error {
	if _, err := fmt.Fprintln(w, "Personal Bests"); err != nil {
		return err
	}
	for _, r := range model.Ranges() {
		score := "--.--s"
		if best := history.BestOf(records, r); best != nil {
			score = model.FormatMillis(best.FinalScoreMs)
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", r.Label(), score); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderHistory prints the session log as a table, most-recent-first,
// truncated to the given terminal width.
func RenderHistory(w io.Writer, records []model.CalendarSessionRecord, width int) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	headers := []string{"Date", "Range", "Score", "Raw", "Penalty", "Correct"}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			time.UnixMilli(rec.Timestamp).Format("2006-01-02 15:04"),
			rec.Range.Label(),
			model.FormatMillis(rec.FinalScoreMs),
			model.FormatMillis(rec.TotalTimeMs),
			fmt.Sprintf("+%ds", rec.PenaltySeconds),
			fmt.Sprintf("%d/%d", rec.CorrectCount(), model.QuestionsPerSession),
		})
	}
	rightAlign := map[int]bool{2: true, 3: true, 4: true, 5: true}
	for _, line := range FormatTable(headers, rows, rightAlign) {
		if width > 0 {
			line = runewidth.Truncate(line, width, "…")
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
