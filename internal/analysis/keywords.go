package analysis

import (
	"strings"

	"golang.org/x/text/cases"
)

// SevereKeywords indicate possible self-harm. They are reported before
// mild matches so the wellbeing stage sees them first.
var SevereKeywords = []string{
	"hopeless", "helpless", "self-harm", "suicide",
	"can't go on", "no point", "give up", "want to die",
	"hurt myself", "end it all",
}

// MildKeywords indicate stress or anxiety.
var MildKeywords = []string{
	"stress", "overwhelmed", "exhausted", "tired", "sleep",
	"worried", "anxiety", "doubt", "insecure", "difficult",
	"lonely", "frustrated", "pressure", "nervous", "afraid",
}

var apostrophes = strings.NewReplacer("’", "'", "‘", "'", "ʼ", "'")

// ScreenKeywords returns every keyword found in text as a case-insensitive
// substring, severe tier first, each tier in list order. The result is
// prompt context only and must not gate any action.
func ScreenKeywords(text string) []string {
	// Caser values are stateful, so one is created per call.
	folded := cases.Fold().String(apostrophes.Replace(text))

	found := make([]string, 0, 4)
	for _, tier := range [][]string{SevereKeywords, MildKeywords} {
		for _, kw := range tier {
			if strings.Contains(folded, kw) {
				found = append(found, kw)
			}
		}
	}
	return found
}

// IsSevere reports whether kw belongs to the severe tier.
func IsSevere(kw string) bool {
	for _, s := range SevereKeywords {
		if s == kw {
			return true
		}
	}
	return false
}
