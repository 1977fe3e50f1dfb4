package cell

import (
	"golang.org/x/text/language"
)

// ISODateLayout is used for locales without a known date layout.
const ISODateLayout = "2006-01-02"

var dateLocales = []struct {
	tag    language.Tag
	layout string
}{
	{language.AmericanEnglish, "1/2/2006"},
	{language.BritishEnglish, "02/01/2006"},
	{language.German, "02.01.2006"},
	{language.French, "02/01/2006"},
	{language.Spanish, "2/1/2006"},
	{language.Japanese, "2006/1/2"},
	{language.Chinese, "2006/1/2"},
}

var dateMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(dateLocales))
	for i, l := range dateLocales {
		tags[i] = l.tag
	}
	return language.NewMatcher(tags)
}()

// DateLayout returns the short date layout for a BCP 47 locale.
// An empty or malformed locale yields the en-US layout; a well-formed locale
// with no close match yields ISODateLayout.
func DateLayout(locale string) string {
	if locale == "" {
		return dateLocales[0].layout
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return dateLocales[0].layout
	}
	_, idx, conf := dateMatcher.Match(tag)
	if conf == language.No {
		return ISODateLayout
	}
	return dateLocales[idx].layout
}
