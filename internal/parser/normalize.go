package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// Spelled-out magnitudes that show up glued to the currency marker in
// dictated speech. The compound words must be rewritten before the bare
// 천/만 rules run, otherwise 사천 would half-match 천 and double-substitute.
var magnitudeRules = []struct {
	re     *regexp.Regexp
	digits string
}{
	{regexp.MustCompile(`일천\s*원`), "1000"},
	{regexp.MustCompile(`이천\s*원`), "2000"},
	{regexp.MustCompile(`삼천\s*원`), "3000"},
	{regexp.MustCompile(`사천\s*원`), "4000"},
	{regexp.MustCompile(`오천\s*원`), "5000"},
	{regexp.MustCompile(`육천\s*원`), "6000"},
	{regexp.MustCompile(`칠천\s*원`), "7000"},
	{regexp.MustCompile(`팔천\s*원`), "8000"},
	{regexp.MustCompile(`구천\s*원`), "9000"},
}

// Digit-prefixed magnitudes compose: "3만원" means 3 x 10000. An absent
// prefix counts as 1, so bare "천원"/"만원" still rewrite per the table.
var (
	thousandRe    = regexp.MustCompile(`(\d*)\s*천\s*원`)
	tenThousandRe = regexp.MustCompile(`(\d*)\s*만\s*원`)
)

// Normalize collapses whitespace runs to single spaces, trims the ends, and
// rewrites spelled-out Korean magnitude words adjacent to the currency
// marker into digit form ("사천 원" -> "4000원", "3만원" -> "30000원").
// Normalizing an already-normalized string returns it unchanged.
func Normalize(transcript string) string {
	text := strings.Join(strings.Fields(transcript), " ")
	for _, rule := range magnitudeRules {
		text = rule.re.ReplaceAllString(text, rule.digits+"원")
	}
	text = composeMagnitude(thousandRe, text, 1000)
	text = composeMagnitude(tenThousandRe, text, 10000)
	return text
}

func composeMagnitude(re *regexp.Regexp, text string, unit int64) string {
	return re.ReplaceAllStringFunc(text, func(match string) string {
		prefix := re.FindStringSubmatch(match)[1]
		n := int64(1)
		if prefix != "" {
			v, err := strconv.ParseInt(prefix, 10, 64)
			if err != nil {
				return match
			}
			n = v
		}
		return strconv.FormatInt(n*unit, 10) + "원"
	})
}
