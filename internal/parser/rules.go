package parser

import (
	"regexp"

	"gagyebu/internal/core"
)

type labelRule struct {
	re    *regexp.Regexp
	label string
}

// Store names are matched against the whole transcript, first match wins.
// Branded names sit above the generic place types because a brand mention
// usually also satisfies a generic pattern.
var storeRules = []labelRule{
	{regexp.MustCompile(`(?i)스타벅스|STARBUCKS|스벅`), "스타벅스"},
	{regexp.MustCompile(`(?i)메가커피|MEGA|메가`), "메가커피"},
	{regexp.MustCompile(`(?i)맥도날드|맥날|McDonald|맥드`), "맥도날드"},
	{regexp.MustCompile(`(?i)편의점|세븐일레븐|7-?eleven|CU|GS25|이마트24|미니스톱`), "편의점"},
	{regexp.MustCompile(`이마트|롯데마트|홈플러스|코스트코|하이마트|마트|슈퍼`), "마트"},
	{regexp.MustCompile(`(?i)카페|커피숍|커피|coffee|투썸|엔젤리너스|빽다방|이디야|컴포즈|할리스|카페베네`), "카페"},
	{regexp.MustCompile(`(?i)식당|맛집|음식점|restaurant|한식|중식|일식|양식`), "식당"},
	{regexp.MustCompile(`(?i)치킨|피자|버거|햄버거|KFC|버거킹|롯데리아`), "패스트푸드"},
	{regexp.MustCompile(`(?i)약국|pharmacy|온누리약국`), "약국"},
	{regexp.MustCompile(`올리브영|다이소|아트박스|문구점`), "생활용품점"},
	{regexp.MustCompile(`(?i)주유소|GS칼텍스|SK에너지|현대오일뱅크`), "주유소"},
	{regexp.MustCompile(`병원|의원|클리닉|치과|한의원`), "병원"},
}

// Category keywords are matched against the item phrase. The cafe rule
// carries no bare 음료 or 차 keyword, so a drink bought outside a cafe
// classifies as 간식 rather than 카페.
var categoryRules = []labelRule{
	{regexp.MustCompile(`커피|아메리카노|라떼|카푸치노|에스프레소|주스|스무디|프라푸치노|카페라떼|마키아토`), "카페"},
	{regexp.MustCompile(`밥|식사|치킨|피자|햄버거|샌드위치|도시락|라면|김밥|떡볶이|순대|어묵|핫도그|토스트|국수|파스타|스테이크|삼겹살|갈비|회|초밥|짜장면|짬뽕|장보기`), "식비"},
	{regexp.MustCompile(`버스|지하철|택시|기름|주유|교통카드|티머니|하이패스|유류비|주차비|톨게이트|고속도로`), "교통"},
	{regexp.MustCompile(`옷|신발|가방|화장품|샴푸|비누|세제|휴지|마스크|치약|로션|크림|립스틱|파운데이션|의류|바지|셔츠|원피스`), "생활용품"},
	{regexp.MustCompile(`과자|사탕|초콜릿|아이스크림|케이크|빵|쿠키|젤리|껌|음료수|콜라|사이다|맥주|소주`), "간식"},
	{regexp.MustCompile(`약|영양제|비타민|파스|연고|감기약|두통약|소화제|진통제|병원비|진료비|처방전`), "의료"},
	{regexp.MustCompile(`(?i)영화|게임|노래방|PC방|피시방|볼링|당구|오락|엔터테인먼트|공연|콘서트|뮤지컬`), "엔터"},
	{regexp.MustCompile(`책|문구|펜|노트|학용품|교육|학원|과외|수강료`), "교육"},
}

// A recognized store of a known kind pins the category afterwards,
// overriding whatever the item keywords said.
var storeCategoryOverrides = map[string]string{
	"카페":    "카페",
	"스타벅스":  "카페",
	"메가커피":  "카페",
	"패스트푸드": "식비",
	"약국":    "의료",
	"주유소":   "교통",
}

// Payment methods are matched against the whole transcript. Card words
// come first because dictations often mention both the thing bought and
// the card used in one breath.
var paymentRules = []labelRule{
	{regexp.MustCompile(`카드|체크|신용|삼성페이|애플페이|구글페이`), core.PaymentCard},
	{regexp.MustCompile(`계좌|이체|송금|인터넷뱅킹|무통장입금`), "계좌이체"},
	{regexp.MustCompile(`카카오페이|네이버페이|토스|페이코|제로페이|모바일페이|앱페이`), "모바일결제"},
	{regexp.MustCompile(`포인트|적립금|쿠폰|마일리지|상품권|기프트카드`), "포인트"},
	{regexp.MustCompile(`현금|현찰|지폐|동전`), core.PaymentCash},
}

// ClassifyStore scans a normalized transcript for a known store name and
// returns 기타 when nothing matches.
func ClassifyStore(text string) string {
	for _, rule := range storeRules {
		if rule.re.MatchString(text) {
			return rule.label
		}
	}
	return core.LabelOther
}

func classifyCategory(item, store string) string {
	category := core.LabelOther
	for _, rule := range categoryRules {
		if rule.re.MatchString(item) {
			category = rule.label
			break
		}
	}
	if override, ok := storeCategoryOverrides[store]; ok {
		return override
	}
	return category
}

func classifyPayment(text string) string {
	for _, rule := range paymentRules {
		if rule.re.MatchString(text) {
			return rule.label
		}
	}
	return core.PaymentCash
}
