package locale

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goodsign/monday"
	"golang.org/x/text/cases"
	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

// Unit is a relative-time unit.
type Unit int

const (
	Year Unit = iota
	Month
	Day
	Hour
	Minute
	Second
)

// Calendar holds the date/time conventions of one locale. Patterns use the
// token language of the datetime package.
type Calendar struct {
	Tag Tag

	ShortDate  string // D
	MediumDate string // DD
	LongDate   string // DDD
	ShortTime  string // t

	// DateTimeSeparator joins a date pattern and ShortTime for f / ff.
	DateTimeSeparator string

	// Meridiem holds the AM and PM markers.
	Meridiem [2]string

	Relative RelativeRules

	names monday.Locale
	lang  language.Tag

	// shortMonths overrides the abbreviated format-context month names
	// where monday's differ from CLDR.
	shortMonths *[12]string
}

// RelativeRules phrase a signed count of units.
type RelativeRules struct {
	// Past and Future are templates with {n} and {unit} placeholders.
	Past   string
	Future string

	// Units maps each unit to its plural forms. plural.Other is required.
	Units map[Unit]map[plural.Form]string

	// Named replaces numeric phrases of -1, 0 and +1 when numeric "auto"
	// phrasing is requested ("yesterday", "this month").
	Named map[Unit]map[int64]string
}

// MediumDateTime is the ff macro: medium date followed by short time.
func (c *Calendar) MediumDateTime() string {
	return c.MediumDate + c.literalSeparator() + c.ShortTime
}

// ShortDateTime is the f macro: short date followed by short time.
func (c *Calendar) ShortDateTime() string {
	return c.ShortDate + c.literalSeparator() + c.ShortTime
}

func (c *Calendar) literalSeparator() string {
	if c.DateTimeSeparator == "" {
		return ""
	}
	return "'" + c.DateTimeSeparator + "'"
}

// MonthName returns the month name as it appears inside a date, in the
// genitive where the language has one ("5 января"). Abbreviated when short
// is set.
func (c *Calendar) MonthName(m time.Month, short bool) string {
	if short && c.shortMonths != nil {
		return c.shortMonths[m-1]
	}
	layout := "January"
	if short {
		layout = "Jan"
	}
	// monday switches to the genitive only when a day precedes the month.
	withDay := monday.Format(time.Date(2001, m, 2, 12, 0, 0, 0, time.UTC), "2 "+layout, c.names)
	if name, ok := strings.CutPrefix(withDay, "2 "); ok && name != "" {
		return name
	}
	return c.StandaloneMonthName(m, short)
}

// StandaloneMonthName returns the nominative month name used outside a
// date ("Январь"). Abbreviated when short is set.
func (c *Calendar) StandaloneMonthName(m time.Month, short bool) string {
	layout := "January"
	if short {
		layout = "Jan"
	}
	return monday.Format(time.Date(2001, m, 1, 12, 0, 0, 0, time.UTC), layout, c.names)
}

// WeekdayName returns the localized weekday name, abbreviated when short is set.
func (c *Calendar) WeekdayName(d time.Weekday, short bool) string {
	layout := "Monday"
	if short {
		layout = "Mon"
	}
	// 2001-01-07 was a Sunday.
	return monday.Format(time.Date(2001, 1, 7+int(d), 12, 0, 0, 0, time.UTC), layout, c.names)
}

// Phrase renders count units relative to now. past selects the past
// template for a zero count. With named set, -1/0/+1 use the locale's
// named phrase when one exists.
func (c *Calendar) Phrase(count int64, past bool, unit Unit, named bool) string {
	if named {
		if words, ok := c.Relative.Named[unit]; ok {
			if w, ok := words[count]; ok {
				return w
			}
		}
	}
	abs := count
	if abs < 0 {
		abs = -abs
		past = true
	} else if count > 0 {
		past = false
	}
	forms := c.Relative.Units[unit]
	word, ok := forms[c.pluralForm(abs)]
	if !ok {
		word = forms[plural.Other]
	}
	tmpl := c.Relative.Future
	if past {
		tmpl = c.Relative.Past
	}
	return strings.NewReplacer("{n}", strconv.FormatInt(abs, 10), "{unit}", word).Replace(tmpl)
}

func (c *Calendar) pluralForm(n int64) plural.Form {
	if n >= 1_000_000_000 {
		n = 1_000_000 + n%1_000_000
	}
	return plural.Cardinal.MatchPlural(c.lang, int(n), 0, 0, 0, 0)
}

// Capitalize upper-cases the first letter of s and lower-cases the rest
// using the locale's casing rules.
func (c *Calendar) Capitalize(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return cases.Upper(c.lang).String(s[:size]) + cases.Lower(c.lang).String(s[size:])
}

// CalendarFor returns the calendar of t, or of Default when t is unsupported.
func CalendarFor(t Tag) *Calendar {
	if c, ok := calendars[t]; ok {
		return c
	}
	return calendars[Default]
}

func unitForms(one, other string) map[plural.Form]string {
	return map[plural.Form]string{plural.One: one, plural.Other: other}
}

func named(last, this, next string) map[int64]string {
	return map[int64]string{-1: last, 0: this, 1: next}
}

var calendars = map[Tag]*Calendar{
	EnUS: {
		Tag:               EnUS,
		ShortDate:         "M/d/yyyy",
		MediumDate:        "MMM d, yyyy",
		LongDate:          "MMMM d, yyyy",
		ShortTime:         "h:mm a",
		DateTimeSeparator: ", ",
		Meridiem:          [2]string{"AM", "PM"},
		Relative: RelativeRules{
			Past:   "{n} {unit} ago",
			Future: "in {n} {unit}",
			Units: map[Unit]map[plural.Form]string{
				Year:   unitForms("year", "years"),
				Month:  unitForms("month", "months"),
				Day:    unitForms("day", "days"),
				Hour:   unitForms("hour", "hours"),
				Minute: unitForms("minute", "minutes"),
				Second: unitForms("second", "seconds"),
			},
			Named: map[Unit]map[int64]string{
				Year:  named("last year", "this year", "next year"),
				Month: named("last month", "this month", "next month"),
				Day:   named("yesterday", "today", "tomorrow"),
			},
		},
		names: monday.LocaleEnUS,
	},
	ZhCN: {
		Tag:               ZhCN,
		ShortDate:         "yyyy/M/d",
		MediumDate:        "yyyy年M月d日",
		LongDate:          "yyyy年M月d日",
		ShortTime:         "HH:mm",
		DateTimeSeparator: " ",
		Meridiem:          [2]string{"上午", "下午"},
		Relative: RelativeRules{
			Past:   "{n}{unit}前",
			Future: "{n}{unit}后",
			Units: map[Unit]map[plural.Form]string{
				Year:   unitForms("年", "年"),
				Month:  unitForms("个月", "个月"),
				Day:    unitForms("天", "天"),
				Hour:   unitForms("小时", "小时"),
				Minute: unitForms("分钟", "分钟"),
				Second: unitForms("秒钟", "秒钟"),
			},
			Named: map[Unit]map[int64]string{
				Year:  named("去年", "今年", "明年"),
				Month: named("上个月", "本月", "下个月"),
				Day:   named("昨天", "今天", "明天"),
			},
		},
		names: monday.LocaleZhCN,
	},
	FrFR: {
		Tag:               FrFR,
		ShortDate:         "dd/MM/yyyy",
		MediumDate:        "d MMM yyyy",
		LongDate:          "d MMMM yyyy",
		ShortTime:         "HH:mm",
		DateTimeSeparator: ", ",
		Meridiem:          [2]string{"AM", "PM"},
		Relative: RelativeRules{
			Past:   "il y a {n} {unit}",
			Future: "dans {n} {unit}",
			Units: map[Unit]map[plural.Form]string{
				Year:   unitForms("an", "ans"),
				Month:  unitForms("mois", "mois"),
				Day:    unitForms("jour", "jours"),
				Hour:   unitForms("heure", "heures"),
				Minute: unitForms("minute", "minutes"),
				Second: unitForms("seconde", "secondes"),
			},
			Named: map[Unit]map[int64]string{
				Year:  named("l’année dernière", "cette année", "l’année prochaine"),
				Month: named("le mois dernier", "ce mois-ci", "le mois prochain"),
				Day:   named("hier", "aujourd’hui", "demain"),
			},
		},
		names: monday.LocaleFrFR,
	},
	JaJP: {
		Tag:               JaJP,
		ShortDate:         "yyyy/MM/dd",
		MediumDate:        "yyyy年M月d日",
		LongDate:          "yyyy年M月d日",
		ShortTime:         "H:mm",
		DateTimeSeparator: " ",
		Meridiem:          [2]string{"午前", "午後"},
		Relative: RelativeRules{
			Past:   "{n} {unit}前",
			Future: "{n} {unit}後",
			Units: map[Unit]map[plural.Form]string{
				Year:   unitForms("年", "年"),
				Month:  unitForms("か月", "か月"),
				Day:    unitForms("日", "日"),
				Hour:   unitForms("時間", "時間"),
				Minute: unitForms("分", "分"),
				Second: unitForms("秒", "秒"),
			},
			Named: map[Unit]map[int64]string{
				Year:  named("昨年", "今年", "来年"),
				Month: named("先月", "今月", "来月"),
				Day:   named("昨日", "今日", "明日"),
			},
		},
		names: monday.LocaleJaJP,
	},
	PtBR: {
		Tag:               PtBR,
		ShortDate:         "dd/MM/yyyy",
		MediumDate:        "d 'de' MMM 'de' yyyy",
		LongDate:          "d 'de' MMMM 'de' yyyy",
		ShortTime:         "HH:mm",
		DateTimeSeparator: ", ",
		Meridiem:          [2]string{"AM", "PM"},
		Relative: RelativeRules{
			Past:   "há {n} {unit}",
			Future: "em {n} {unit}",
			Units: map[Unit]map[plural.Form]string{
				Year:   unitForms("ano", "anos"),
				Month:  unitForms("mês", "meses"),
				Day:    unitForms("dia", "dias"),
				Hour:   unitForms("hora", "horas"),
				Minute: unitForms("minuto", "minutos"),
				Second: unitForms("segundo", "segundos"),
			},
			Named: map[Unit]map[int64]string{
				Year:  named("ano passado", "este ano", "próximo ano"),
				Month: named("mês passado", "este mês", "próximo mês"),
				Day:   named("ontem", "hoje", "amanhã"),
			},
		},
		names: monday.LocalePtBR,
	},
	EsES: {
		Tag:               EsES,
		ShortDate:         "d/M/yyyy",
		MediumDate:        "d MMM yyyy",
		LongDate:          "d 'de' MMMM 'de' yyyy",
		ShortTime:         "H:mm",
		DateTimeSeparator: ", ",
		Meridiem:          [2]string{"a. m.", "p. m."},
		Relative: RelativeRules{
			Past:   "hace {n} {unit}",
			Future: "dentro de {n} {unit}",
			Units: map[Unit]map[plural.Form]string{
				Year:   unitForms("año", "años"),
				Month:  unitForms("mes", "meses"),
				Day:    unitForms("día", "días"),
				Hour:   unitForms("hora", "horas"),
				Minute: unitForms("minuto", "minutos"),
				Second: unitForms("segundo", "segundos"),
			},
			Named: map[Unit]map[int64]string{
				Year:  named("el año pasado", "este año", "el próximo año"),
				Month: named("el mes pasado", "este mes", "el próximo mes"),
				Day:   named("ayer", "hoy", "mañana"),
			},
		},
		names: monday.LocaleEsES,
	},
	RuRU: {
		Tag:               RuRU,
		ShortDate:         "dd.MM.yyyy",
		MediumDate:        "d MMM yyyy 'г.'",
		LongDate:          "d MMMM yyyy 'г.'",
		ShortTime:         "HH:mm",
		DateTimeSeparator: ", ",
		Meridiem:          [2]string{"AM", "PM"},
		Relative: RelativeRules{
			Past:   "{n} {unit} назад",
			Future: "через {n} {unit}",
			Units: map[Unit]map[plural.Form]string{
				Year:   {plural.One: "год", plural.Few: "года", plural.Many: "лет", plural.Other: "года"},
				Month:  {plural.One: "месяц", plural.Few: "месяца", plural.Many: "месяцев", plural.Other: "месяца"},
				Day:    {plural.One: "день", plural.Few: "дня", plural.Many: "дней", plural.Other: "дня"},
				Hour:   {plural.One: "час", plural.Few: "часа", plural.Many: "часов", plural.Other: "часа"},
				Minute: {plural.One: "минуту", plural.Few: "минуты", plural.Many: "минут", plural.Other: "минуты"},
				Second: {plural.One: "секунду", plural.Few: "секунды", plural.Many: "секунд", plural.Other: "секунды"},
			},
			Named: map[Unit]map[int64]string{
				Year:  named("в прошлом году", "в этом году", "в следующем году"),
				Month: named("в прошлом месяце", "в этом месяце", "в следующем месяце"),
				Day:   named("вчера", "сегодня", "завтра"),
			},
		},
		names: monday.LocaleRuRU,
		shortMonths: &[12]string{
			"янв.", "февр.", "мар.", "апр.", "мая", "июн.",
			"июл.", "авг.", "сент.", "окт.", "нояб.", "дек.",
		},
	},
	DeDE: {
		Tag:               DeDE,
		ShortDate:         "d.M.yyyy",
		MediumDate:        "dd.MM.yyyy",
		LongDate:          "d. MMMM yyyy",
		ShortTime:         "HH:mm",
		DateTimeSeparator: ", ",
		Meridiem:          [2]string{"AM", "PM"},
		Relative: RelativeRules{
			Past:   "vor {n} {unit}",
			Future: "in {n} {unit}",
			Units: map[Unit]map[plural.Form]string{
				Year:   unitForms("Jahr", "Jahren"),
				Month:  unitForms("Monat", "Monaten"),
				Day:    unitForms("Tag", "Tagen"),
				Hour:   unitForms("Stunde", "Stunden"),
				Minute: unitForms("Minute", "Minuten"),
				Second: unitForms("Sekunde", "Sekunden"),
			},
			Named: map[Unit]map[int64]string{
				Year:  named("letztes Jahr", "dieses Jahr", "nächstes Jahr"),
				Month: named("letzten Monat", "diesen Monat", "nächsten Monat"),
				Day:   named("gestern", "heute", "morgen"),
			},
		},
		names: monday.LocaleDeDE,
	},
	NlNL: {
		Tag:               NlNL,
		ShortDate:         "d-M-yyyy",
		MediumDate:        "d MMM yyyy",
		LongDate:          "d MMMM yyyy",
		ShortTime:         "HH:mm",
		DateTimeSeparator: ", ",
		Meridiem:          [2]string{"a.m.", "p.m."},
		Relative: RelativeRules{
			Past:   "{n} {unit} geleden",
			Future: "over {n} {unit}",
			Units: map[Unit]map[plural.Form]string{
				Year:   unitForms("jaar", "jaar"),
				Month:  unitForms("maand", "maanden"),
				Day:    unitForms("dag", "dagen"),
				Hour:   unitForms("uur", "uur"),
				Minute: unitForms("minuut", "minuten"),
				Second: unitForms("seconde", "seconden"),
			},
			Named: map[Unit]map[int64]string{
				Year:  named("vorig jaar", "dit jaar", "volgend jaar"),
				Month: named("vorige maand", "deze maand", "volgende maand"),
				Day:   named("gisteren", "vandaag", "morgen"),
			},
		},
		names: monday.LocaleNlNL,
	},
}

func init() {
	for tag, c := range calendars {
		c.lang = tag.Language()
	}
}
