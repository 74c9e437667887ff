package matching

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// englishTitles - обращения и титулы, которые не участвуют в сравнении имен
var englishTitles = map[string]struct{}{
	"mr": {}, "mrs": {}, "ms": {}, "miss": {}, "dr": {}, "prof": {}, "eng": {},
	"sir": {}, "madam": {}, "lord": {}, "lady": {}, "haj": {}, "sheikh": {},
}

var arabicReplacer = strings.NewReplacer(
	"آ", "ا",
	"أ", "ا",
	"إ", "ا",
	"ى", "ي",
	"ة", "ه",
	"ؤ", "و",
	"ئ", "ي",
)

// NormalizeArabic приводит арабское имя к единой форме для сравнения
func NormalizeArabic(text string) string {
	if text == "" {
		return ""
	}

	// Замены выполняются до NFKD, иначе хамза отделяется от алифа
	text = arabicReplacer.Replace(text)
	text = norm.NFKD.String(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Mn, r):
			continue
		case r >= 0x064B && r <= 0x065F, r == 0x0670:
			continue
		case r == 0x0640: // татвиль
			continue
		}
		b.WriteRune(r)
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// NormalizeEnglish приводит латинское имя к нижнему регистру, убирает
// титулы и знаки препинания
func NormalizeEnglish(text string) string {
	if text == "" {
		return ""
	}

	text = strings.ToLower(strings.TrimSpace(text))
	text = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, text)

	fields := strings.Fields(text)
	kept := fields[:0]
	for _, f := range fields {
		if _, isTitle := englishTitles[f]; isTitle {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

// ExtractNames возвращает первое и последнее слово полного имени
func ExtractNames(fullName string) (first, last string) {
	parts := strings.Fields(fullName)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], parts[len(parts)-1]
	}
}

// ContainsPEPIndicator проверяет наличие признака публичного должностного лица
func ContainsPEPIndicator(text string, indicators []string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, indicator := range indicators {
		if indicator != "" && strings.Contains(lower, strings.ToLower(indicator)) {
			return true
		}
	}
	return false
}

// MaskSensitive оставляет видимыми первые visible символов
func MaskSensitive(text string, visible int) string {
	runes := []rune(text)
	if len(runes) <= visible {
		return "***"
	}
	return string(runes[:visible]) + "***"
}
