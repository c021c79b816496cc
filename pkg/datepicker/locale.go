package datepicker

import (
	"strings"
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
)

// DefaultLocale is used when Options.Locale is empty or unparseable.
const DefaultLocale = "en-US"

// DefaultLayout formats dates for accessible labels when the locale has no
// full date format of its own.
const DefaultLayout = "Monday, January 2, 2006"

var (
	locales       = monday.ListLocales()
	localeMatcher = newLocaleMatcher(locales)
)

func newLocaleMatcher(supported []monday.Locale) language.Matcher {
	tags := make([]language.Tag, len(supported))
	for i, l := range supported {
		tags[i] = language.Make(strings.ReplaceAll(string(l), "_", "-"))
	}
	return language.NewMatcher(tags)
}

// resolveLocale turns a BCP-47 tag ("fr", "es-419", "en_GB") into the closest
// supported language_REGION locale. Tags with no supported language resolve
// to en_US.
func resolveLocale(tag string) (language.Tag, monday.Locale) {
	if tag == "" {
		tag = DefaultLocale
	}
	t, err := language.Parse(tag)
	if err != nil {
		t = language.MustParse(DefaultLocale)
	}
	_, i, conf := localeMatcher.Match(t)
	if conf == language.No {
		return t, monday.LocaleEnUS
	}
	return t, locales[i]
}

// fullLayout is the locale's long date layout, such as "Monday, 2. January
// 2006" for German.
func fullLayout(loc monday.Locale) string {
	if layout, ok := monday.FullFormatsByLocale[loc]; ok {
		return layout
	}
	return DefaultLayout
}

// reference week: 2023-01-01 was a Sunday.
var referenceSunday = time.Date(2023, time.January, 1, 12, 0, 0, 0, time.UTC)

func weekdayName(w time.Weekday, layout string, loc monday.Locale) string {
	return monday.Format(referenceSunday.AddDate(0, 0, int(w)), layout, loc)
}

func monthName(m time.Month, loc monday.Locale) string {
	return monday.Format(time.Date(2023, m, 1, 12, 0, 0, 0, time.UTC), "January", loc)
}
