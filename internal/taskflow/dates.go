package taskflow

import "time"

// DateLayout is the wire and storage form of calendar dates.
const DateLayout = "2006-01-02"

// DateOf renders the calendar date of t in its own location.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// NextDueDate computes the due date a recurring task generates when the
// scheduler runs on runDate: daily is due tomorrow, weekly a week after
// tomorrow, monthly a calendar month after tomorrow. AddDate normalizes
// month-end overflow the same way the calendar does (Jan 31 + 1 month lands
// in early March).
func NextDueDate(recurrence string, runDate time.Time) (string, bool) {
	tomorrow := runDate.AddDate(0, 0, 1)
	switch recurrence {
	case "daily":
		return DateOf(tomorrow), true
	case "weekly":
		return DateOf(tomorrow.AddDate(0, 0, 7)), true
	case "monthly":
		return DateOf(tomorrow.AddDate(0, 1, 0)), true
	}
	return "", false
}
