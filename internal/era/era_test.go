package era

import (
	"testing"
	"time"

	"github.com/kioku-app/kioku/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestEraBoundaries(t *testing.T) {
	cases := []struct {
		date time.Time
		want string
	}{
		{date(2019, time.May, 1), "令和元年"},
		{date(2019, time.April, 30), "平成31年"},
		{date(2024, time.March, 5), "令和6年"},
		{date(1989, time.January, 8), "平成元年"},
		{date(1989, time.January, 7), "昭和64年"},
		{date(1926, time.December, 25), "昭和元年"},
		{date(1912, time.July, 30), "大正元年"},
		{date(1868, time.January, 25), "明治元年"},
		{date(1700, time.June, 1), "1700年"},
	}
	for _, tc := range cases {
		if got := Era(tc.date); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.date.Format("2006-01-02"), tc.want, got)
		}
	}
}

func TestFormatDateModes(t *testing.T) {
	d := date(2024, time.March, 5)
	if got := FormatDate(d, model.YearWestern); got != "2024年3月5日" {
		t.Fatalf("western: got %q", got)
	}
	if got := FormatDate(d, model.YearJapanese); got != "令和6年 3月5日" {
		t.Fatalf("japanese: got %q", got)
	}
	if got := FormatDate(d, model.YearBoth); got != "2024年(令和6年) 3月5日" {
		t.Fatalf("both: got %q", got)
	}
}
