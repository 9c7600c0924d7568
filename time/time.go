package time

import (
	"errors"
	"regexp"
	"strconv"
	"time"
)

// The format of a date argument is one of:
//  YYYY-MM-DD
//  Nd (days ago)
//  Nw (weeks ago)
//
// The cron trigger passes a day offset, hence the relative forms.

// MT: Constant after initialization; immutable.
var dateRe = regexp.MustCompile(`^(\d\d\d\d)-(\d\d)-(\d\d)$`)
var daysRe = regexp.MustCompile(`^(\d+)d$`)
var weeksRe = regexp.MustCompile(`^(\d+)w$`)

func ParseRelativeDate(s string) (time.Time, error) {
	probe := dateRe.FindSubmatch([]byte(s))
	if probe != nil {
		yyyy, _ := strconv.ParseUint(string(probe[1]), 10, 32)
		mm, _ := strconv.ParseUint(string(probe[2]), 10, 32)
		dd, _ := strconv.ParseUint(string(probe[3]), 10, 32)
		return time.Date(int(yyyy), time.Month(mm), int(dd), 0, 0, 0, 0, time.UTC), nil
	}
	probe = daysRe.FindSubmatch([]byte(s))
	if probe != nil {
		days, _ := strconv.ParseUint(string(probe[1]), 10, 32)
		return ThisDay(time.Now().UTC().AddDate(0, 0, -int(days))), nil
	}
	probe = weeksRe.FindSubmatch([]byte(s))
	if probe != nil {
		weeks, _ := strconv.ParseUint(string(probe[1]), 10, 32)
		return ThisDay(time.Now().UTC().AddDate(0, 0, -int(weeks)*7)), nil
	}
	return time.Now(), errors.New("Bad date specification " + s)
}

// The time returned is UTC; the input ought to be UTC as well.
func ThisDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func NextDay(t time.Time) time.Time {
	return ThisDay(t.AddDate(0, 0, 1))
}

func PreviousDay(t time.Time) time.Time {
	return ThisDay(t.AddDate(0, 0, -1))
}

// DayStamp formats the day the way the acquisition system names raw log files: YYYYMMDD.
func DayStamp(t time.Time) string {
	return t.UTC().Format("20060102")
}
