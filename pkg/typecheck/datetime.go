package typecheck

import (
	"regexp"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
}

var timeLayouts = []string{
	"15:04",
	"15:04:05",
	"15:04:05.9",
	"15:04:05.99",
	"15:04:05.999",
}

var zoneLayouts = []string{"", "Z", "Z07:00", "Z0700"}

var (
	reYear     = regexp.MustCompile(`^[0-9]{4,}$`)
	reWeek     = regexp.MustCompile(`^[0-9]{4,}-W([0-9]{2})$`)
	reYearless = regexp.MustCompile(`^(?:--)?([0-9]{2})-([0-9]{2})$`)
	// ISO 8601 duration: P[nD][T[nH][nM][n[.n]S]]
	reISODuration  = regexp.MustCompile(`^P(?:[0-9]+D)?(?:T(?:[0-9]+H)?(?:[0-9]+M)?(?:[0-9]+(?:\.[0-9]{1,3})?S)?)?$`)
	reDurationPart = regexp.MustCompile(`^[0-9]+(?:\.[0-9]{1,3})?[wWdDhHmMsS]$`)
)

func isDate(v string) bool {
	_, err := time.Parse("2006-01-02", v)
	return err == nil
}

// isDateTime accepts the value grammar of the datetime attribute of time,
// ins and del: dates, months, years, yearless dates, weeks, times, local
// and global date-times, time-zone offsets and durations.
func isDateTime(v string) bool {
	if v == "" {
		return false
	}
	for _, l := range dateLayouts {
		if parses(l, v) {
			return true
		}
	}
	if reYear.MatchString(v) && v != "0000" {
		return true
	}
	if m := reWeek.FindStringSubmatch(v); m != nil {
		return m[1] >= "01" && m[1] <= "53"
	}
	if m := reYearless.FindStringSubmatch(v); m != nil {
		return parses("2006-01-02", "2000-"+m[1]+"-"+m[2])
	}
	for _, l := range timeLayouts {
		if parses(l, v) {
			return true
		}
	}
	if isZone(v) {
		return true
	}
	if isLocalOrGlobalDateTime(v) {
		return true
	}
	return isDuration(v)
}

func isLocalOrGlobalDateTime(v string) bool {
	sep := strings.IndexAny(v, "T ")
	if sep < 0 {
		return false
	}
	date, rest := v[:sep], v[sep+1:]
	if !parses("2006-01-02", date) {
		return false
	}
	for _, tl := range timeLayouts {
		for _, zl := range zoneLayouts {
			if parses(tl+zl, rest) {
				return true
			}
		}
	}
	return false
}

func isZone(v string) bool {
	if v == "Z" {
		return true
	}
	for _, l := range []string{"-07:00", "-0700"} {
		if parses(l, v) {
			return true
		}
	}
	return false
}

func isDuration(v string) bool {
	if v != "P" && v != "PT" && reISODuration.MatchString(v) {
		return true
	}
	parts := strings.Fields(v)
	if len(parts) == 0 {
		return false
	}
	for _, p := range parts {
		if !reDurationPart.MatchString(p) {
			return false
		}
	}
	return true
}

func parses(layout, v string) bool {
	_, err := time.Parse(layout, v)
	return err == nil
}
