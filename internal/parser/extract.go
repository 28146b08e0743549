package parser

import (
	"regexp"
	"strconv"
	"strings"

	"gagyebu/internal/core"
)

type candidate struct {
	item  string
	price int64
}

// The three extraction shapes, in priority order. Every family scans the
// whole normalized text; a later family's price span is discarded when it
// overlaps text an earlier family already claimed, so "아메리카노 4500원
// 카드로" yields one candidate rather than a second one anchored on 카드.
var extractionFamilies = []struct {
	re       *regexp.Regexp
	itemIdx  int
	priceIdx int
}{
	// item then price: "아메리카노 4500원", "장보기 32,000원"
	{regexp.MustCompile(`([가-힣a-zA-Z][가-힣a-zA-Z0-9\s]*?)\s*(\d{1,3}(?:[,\s]\d{3})+|\d+)\s*원`), 1, 2},
	// price then item: "4500원짜리 아메리카노", "만원어치 장보기"
	{regexp.MustCompile(`(\d{1,3}(?:[,\s]\d{3})+|\d+)\s*원(?:짜리|어치)?\s*([가-힣a-zA-Z][가-힣a-zA-Z0-9]*)`), 2, 1},
	// item, particle, price: "라면을 1200원에"
	{regexp.MustCompile(`([가-힣a-zA-Z][가-힣a-zA-Z0-9\s]*?)[을를이가에서와과]\s*(\d{1,3}(?:[,\s]\d{3})+|\d+)\s*원`), 1, 2},
}

type span struct{ start, end int }

func (s span) overlaps(o span) bool {
	return s.start < o.end && o.start < s.end
}

// extractCandidates pulls (item, price) pairs out of a normalized
// transcript. Candidates keep match order, duplicates collapse on the
// cleaned item plus price, and prices outside (0, 1000000] are dropped.
func extractCandidates(text string) []candidate {
	var (
		out     []candidate
		claimed []span
		seen    = map[string]bool{}
	)
	for _, family := range extractionFamilies {
		for _, m := range family.re.FindAllStringSubmatchIndex(text, -1) {
			priceSpan := span{m[2*family.priceIdx], m[2*family.priceIdx+1]}
			if overlapsAny(priceSpan, claimed) {
				continue
			}
			price, ok := parsePrice(text[priceSpan.start:priceSpan.end])
			if !ok {
				continue
			}
			item := cleanItem(text[m[2*family.itemIdx]:m[2*family.itemIdx+1]])
			claimed = append(claimed, span{m[0], m[1]})
			key := item + "\x00" + strconv.FormatInt(price, 10)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, candidate{item: item, price: price})
		}
	}
	return out
}

func overlapsAny(s span, claimed []span) bool {
	for _, c := range claimed {
		if s.overlaps(c) {
			return true
		}
	}
	return false
}

func parsePrice(raw string) (int64, bool) {
	digits := strings.Map(func(r rune) rune {
		if r == ',' || r == ' ' {
			return -1
		}
		return r
	}, raw)
	price, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || price <= 0 || price > core.MaxUnitPrice {
		return 0, false
	}
	return price, true
}

var trailingParticles = []string{"에서", "을", "를", "이", "가", "은", "는", "와", "과", "도"}

// cleanItem turns a raw captured phrase into an item name. Leading tokens
// ending in the locative 에서 are the place, not the thing bought, so they
// drop as long as another token remains. A single trailing particle is
// stripped afterwards.
func cleanItem(raw string) string {
	fields := strings.Fields(raw)
	for len(fields) > 1 && strings.HasSuffix(fields[0], "에서") {
		fields = fields[1:]
	}
	item := strings.Join(fields, " ")
	for _, p := range trailingParticles {
		if strings.HasSuffix(item, p) && len(item) > len(p) {
			item = strings.TrimSuffix(item, p)
			break
		}
	}
	item = strings.TrimSpace(item)
	if item == "" {
		return "기타 지출"
	}
	return item
}
