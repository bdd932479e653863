package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/julianstephens/almanac/internal/constants"
	"github.com/julianstephens/almanac/internal/models"
)

const (
	icsProductID  = "-//almanac//almanac//EN"
	icsDateFormat = "20060102"
	icsStampFmt   = "20060102T150405Z"
)

// WeekStart returns the Monday of ISO week n of year.
func WeekStart(year, n int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := (int(jan4.Weekday()) + 6) % 7
	return jan4.AddDate(0, 0, -offset+7*(n-1))
}

// ICS writes one seven-day all-day event per week, anchored at ISO weeks of year.
func ICS(w io.Writer, ed models.Edition, year int) error {
	bw := bufio.NewWriter(w)
	stamp := ed.GeneratedAt.UTC().Format(icsStampFmt)

	bw.WriteString("BEGIN:VCALENDAR\r\n")
	bw.WriteString("VERSION:2.0\r\n")
	fmt.Fprintf(bw, "PRODID:%s\r\n", icsProductID)
	bw.WriteString("CALSCALE:GREGORIAN\r\n")
	fmt.Fprintf(bw, "X-WR-CALNAME:%s %d\r\n", escapeText(ed.Title()), year)

	for _, week := range ed.Weeks {
		start := WeekStart(year, week.Week)
		bw.WriteString("BEGIN:VEVENT\r\n")
		fmt.Fprintf(bw, "UID:%s-week-%02d@%s\r\n", ed.ID, week.Week, constants.AppName)
		fmt.Fprintf(bw, "DTSTAMP:%s\r\n", stamp)
		fmt.Fprintf(bw, "DTSTART;VALUE=DATE:%s\r\n", start.Format(icsDateFormat))
		fmt.Fprintf(bw, "DTEND;VALUE=DATE:%s\r\n", start.AddDate(0, 0, 7).Format(icsDateFormat))
		fmt.Fprintf(bw, "SUMMARY:%s\r\n", escapeText(fmt.Sprintf("Week %d: %s", week.Week, week.Title)))
		fmt.Fprintf(bw, "DESCRIPTION:%s\r\n", escapeText(weekDescription(week)))
		if week.PlaceToVisit != "" {
			fmt.Fprintf(bw, "LOCATION:%s\r\n", escapeText(week.PlaceToVisit))
		}
		fmt.Fprintf(bw, "CATEGORIES:%s\r\n", strings.ToUpper(string(week.Season)))
		bw.WriteString("END:VEVENT\r\n")
	}

	bw.WriteString("END:VCALENDAR\r\n")
	return bw.Flush()
}

func weekDescription(w models.Week) string {
	var b strings.Builder
	for _, a := range w.Activities {
		fmt.Fprintf(&b, "- %s: %s\n", a.Name, a.Description)
	}
	fmt.Fprintf(&b, "Song: %s by %s\n", w.Song.Title, w.Song.Artist)
	fmt.Fprintf(&b, "Book: %s by %s\n", w.Book.Title, w.Book.Author)
	fmt.Fprintf(&b, "Recipe: %s", w.Recipe.Name)
	return b.String()
}

func escapeText(text string) string {
	text = strings.ReplaceAll(text, "\\", "\\\\")
	text = strings.ReplaceAll(text, ";", "\\;")
	text = strings.ReplaceAll(text, ",", "\\,")
	text = strings.ReplaceAll(text, "\n", "\\n")
	return text
}
