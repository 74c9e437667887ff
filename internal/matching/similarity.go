package matching

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Ratio возвращает коэффициент схожести строк в диапазоне 0..100
// (алгоритм SequenceMatcher, сравнение по символам)
func Ratio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	return ratioRunes([]rune(a), []rune(b))
}

func ratioRunes(a, b []rune) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	m := difflib.NewMatcher(runeStrings(a), runeStrings(b))
	return m.Ratio() * 100
}

// PartialRatio сравнивает более короткую строку с каждым окном такой же
// длины в более длинной и возвращает лучший результат
func PartialRatio(a, b string) float64 {
	shorter, longer := []rune(a), []rune(b)
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) == 0 {
		return 0
	}

	best := 0.0
	for i := 0; i+len(shorter) <= len(longer); i++ {
		score := ratioRunes(shorter, longer[i:i+len(shorter)])
		if score > best {
			best = score
			if best == 100 {
				break
			}
		}
	}
	return best
}

// TokenSortRatio сравнивает строки после сортировки слов
func TokenSortRatio(a, b string) float64 {
	return Ratio(sortTokens(a), sortTokens(b))
}

// FuzzyScore возвращает максимум из Ratio, PartialRatio и TokenSortRatio
// для нормализованных имен
func FuzzyScore(name1, name2 string) float64 {
	n1 := NormalizeEnglish(name1)
	n2 := NormalizeEnglish(name2)
	if n1 == "" || n2 == "" {
		return 0
	}
	return max(Ratio(n1, n2), PartialRatio(n1, n2), TokenSortRatio(n1, n2))
}

// FuzzyMatchNames сообщает, превышает ли нечеткая схожесть имен порог
func FuzzyMatchNames(name1, name2 string, threshold float64) (bool, float64) {
	score := FuzzyScore(name1, name2)
	if score == 0 {
		return false, 0
	}
	return score >= threshold, score
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func runeStrings(runes []rune) []string {
	out := make([]string, len(runes))
	for i, r := range runes {
		out[i] = string(r)
	}
	return out
}
