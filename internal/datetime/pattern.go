package datetime

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/metacatalog/timefmt/internal/locale"
)

// token is either literal text or a run of one repeated ASCII letter
// ("yyyy", "MMM", "a").
type token struct {
	literal bool
	val     string
}

// tokenize splits pattern into literal text and letter runs. Text between
// single quotes is literal; an unterminated quote runs to the end.
func tokenize(pattern string) []token {
	var (
		out     []token
		cur     strings.Builder
		run     rune
		quoted  bool
		literal bool
	)
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, token{literal: literal, val: cur.String()})
			cur.Reset()
		}
		run = 0
	}

	for _, r := range pattern {
		switch {
		case r == '\'':
			flush()
			quoted = !quoted
			literal = quoted
		case quoted:
			cur.WriteRune(r)
		case isLetter(r):
			if r != run || literal {
				flush()
				literal = false
				run = r
			}
			cur.WriteRune(r)
		default:
			if !literal {
				flush()
				literal = true
			}
			cur.WriteRune(r)
		}
	}
	flush()
	return out
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// expandMacros replaces the locale macros D, DD, DDD, t, f and ff with the
// calendar's own patterns.
func expandMacros(tokens []token, cal *locale.Calendar) []token {
	out := make([]token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.literal {
			out = append(out, tok)
			continue
		}
		var macro string
		switch tok.val {
		case "D":
			macro = cal.ShortDate
		case "DD":
			macro = cal.MediumDate
		case "DDD":
			macro = cal.LongDate
		case "t":
			macro = cal.ShortTime
		case "f":
			macro = cal.ShortDateTime()
		case "ff":
			macro = cal.MediumDateTime()
		default:
			out = append(out, tok)
			continue
		}
		out = append(out, tokenize(macro)...)
	}
	return out
}

// formatPattern renders t with pattern using cal for names and macros.
// Unknown letter runs are written verbatim.
func formatPattern(t time.Time, pattern string, cal *locale.Calendar) string {
	var b strings.Builder
	for _, tok := range expandMacros(tokenize(pattern), cal) {
		if tok.literal {
			b.WriteString(tok.val)
			continue
		}
		b.WriteString(formatToken(t, tok.val, cal))
	}
	return b.String()
}

func formatToken(t time.Time, tok string, cal *locale.Calendar) string {
	switch tok {
	case "y":
		return strconv.Itoa(t.Year())
	case "yy":
		return pad(abs(t.Year())%100, 2)
	case "yyyy":
		return pad(t.Year(), 4)

	case "M", "L":
		return strconv.Itoa(int(t.Month()))
	case "MM", "LL":
		return pad(int(t.Month()), 2)
	case "MMM":
		return cal.MonthName(t.Month(), true)
	case "MMMM":
		return cal.MonthName(t.Month(), false)
	case "LLL":
		return cal.StandaloneMonthName(t.Month(), true)
	case "LLLL":
		return cal.StandaloneMonthName(t.Month(), false)

	case "d":
		return strconv.Itoa(t.Day())
	case "dd":
		return pad(t.Day(), 2)

	case "c", "E":
		return strconv.Itoa(isoWeekday(t.Weekday()))
	case "ccc", "EEE":
		return cal.WeekdayName(t.Weekday(), true)
	case "cccc", "EEEE":
		return cal.WeekdayName(t.Weekday(), false)

	case "H":
		return strconv.Itoa(t.Hour())
	case "HH":
		return pad(t.Hour(), 2)
	case "h":
		return strconv.Itoa(hour12(t.Hour()))
	case "hh":
		return pad(hour12(t.Hour()), 2)
	case "m":
		return strconv.Itoa(t.Minute())
	case "mm":
		return pad(t.Minute(), 2)
	case "s":
		return strconv.Itoa(t.Second())
	case "ss":
		return pad(t.Second(), 2)
	case "S":
		return strconv.Itoa(t.Nanosecond() / int(time.Millisecond))
	case "SSS":
		return pad(t.Nanosecond()/int(time.Millisecond), 3)
	case "a":
		if t.Hour() < 12 {
			return cal.Meridiem[0]
		}
		return cal.Meridiem[1]

	case "Z":
		return formatOffset(t, offsetNarrow)
	case "ZZ":
		return formatOffset(t, offsetColon)
	case "ZZZ":
		return formatOffset(t, offsetCompact)
	case "ZZZZ":
		name, _ := t.Zone()
		return name
	case "z":
		return t.Location().String()

	case "o":
		return strconv.Itoa(t.YearDay())
	case "ooo":
		return pad(t.YearDay(), 3)
	case "q":
		return strconv.Itoa(quarter(t.Month()))
	case "qq":
		return pad(quarter(t.Month()), 2)
	case "W":
		_, w := t.ISOWeek()
		return strconv.Itoa(w)
	case "WW":
		_, w := t.ISOWeek()
		return pad(w, 2)

	case "X":
		return strconv.FormatInt(t.Unix(), 10)
	case "x":
		return strconv.FormatInt(t.UnixMilli(), 10)
	}
	return tok
}

type offsetStyle int

const (
	offsetNarrow  offsetStyle = iota // +5, +5:30
	offsetColon                      // +05:30
	offsetCompact                    // +0530
)

func formatOffset(t time.Time, style offsetStyle) string {
	_, off := t.Zone()
	sign := "+"
	if off < 0 {
		sign = "-"
		off = -off
	}
	h, m := off/3600, (off%3600)/60
	switch style {
	case offsetNarrow:
		if m == 0 {
			return fmt.Sprintf("%s%d", sign, h)
		}
		return fmt.Sprintf("%s%d:%02d", sign, h, m)
	case offsetColon:
		return fmt.Sprintf("%s%02d:%02d", sign, h, m)
	default:
		return fmt.Sprintf("%s%02d%02d", sign, h, m)
	}
}

func pad(n, width int) string {
	if n < 0 {
		return "-" + pad(-n, width)
	}
	s := strconv.Itoa(n)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// isoWeekday numbers Monday 1 through Sunday 7.
func isoWeekday(d time.Weekday) int {
	if d == time.Sunday {
		return 7
	}
	return int(d)
}

func hour12(h int) int {
	if h%12 == 0 {
		return 12
	}
	return h % 12
}

func quarter(m time.Month) int {
	return (int(m)-1)/3 + 1
}
