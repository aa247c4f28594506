// Package era formats dates with Japanese era names.
package era

import (
	"fmt"
	"time"

	"github.com/kioku-app/kioku/internal/model"
)

type eraEntry struct {
	// from is the first day of the era encoded as yyyymmdd.
	from      int
	name      string
	firstYear int
}

var eras = []eraEntry{
	{from: 20190501, name: "令和", firstYear: 2019},
	{from: 19890108, name: "平成", firstYear: 1989},
	{from: 19261225, name: "昭和", firstYear: 1926},
	{from: 19120730, name: "大正", firstYear: 1912},
	{from: 18680125, name: "明治", firstYear: 1868},
}

// Era returns the Japanese era year label for the date, e.g. "令和6年".
// The first year of an era is rendered as 元年. Dates before the Meiji era
// fall back to the western year.
func Era(t time.Time) string {
	encoded := t.Year()*10000 + int(t.Month())*100 + t.Day()
	for _, e := range eras {
		if encoded >= e.from {
			year := t.Year() - e.firstYear + 1
			if year == 1 {
				return e.name + "元年"
			}
			return fmt.Sprintf("%s%d年", e.name, year)
		}
	}
	return fmt.Sprintf("%d年", t.Year())
}

// FormatDate renders a date according to the year display mode.
func FormatDate(t time.Time, mode model.YearMode) string {
	m := int(t.Month())
	d := t.Day()
	switch mode {
	case model.YearJapanese:
		return fmt.Sprintf("%s %d月%d日", Era(t), m, d)
	case model.YearBoth:
		return fmt.Sprintf("%d年(%s) %d月%d日", t.Year(), Era(t), m, d)
	default:
		return fmt.Sprintf("%d年%d月%d日", t.Year(), m, d)
	}
}
