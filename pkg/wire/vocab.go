package wire

// Fixed translation tables between internal tokens and the engine's
// vocabulary. Unknown tokens pass through untranslated rather than
// failing the conversion.

// DomainCodes maps internal source domains to engine domain codes.
var DomainCodes = map[string]string{
	"blog":      "ko.naver_blog",
	"instagram": "instagram",
	"news":      "ko.news",
}

// DomainLabels maps domain codes (and internal tokens) to display labels.
var DomainLabels = map[string]string{
	"ko.naver_blog": "네이버 블로그",
	"instagram":     "인스타그램",
	"ko.news":       "뉴스",
	"blog":          "블로그",
	"news":          "뉴스",
}

// AnalysisMethodLabels maps internal method tokens to engine labels.
var AnalysisMethodLabels = map[string]string{
	"positive":      "긍정",
	"negative":      "부정",
	"neutral":       "중립",
	"comprehensive": "종합",
}

// TextTypeLabels maps internal text types to engine labels.
var TextTypeLabels = map[string]string{
	"narrative": "서술형",
	"short":     "단답형",
}

func domainCode(domain string) string {
	if code, ok := DomainCodes[domain]; ok {
		return code
	}
	return domain
}

func methodLabel(method string) string {
	if label, ok := AnalysisMethodLabels[method]; ok {
		return label
	}
	return method
}

func textTypeLabel(textType string) string {
	if label, ok := TextTypeLabels[textType]; ok {
		return label
	}
	return textType
}
