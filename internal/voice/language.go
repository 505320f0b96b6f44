package voice

import "strings"

// Language identifies a speech synthesis target. The set is closed: the
// engine boundary rejects anything outside en/hi/mr.
type Language string

const (
	English Language = "en"
	Hindi   Language = "hi"
	Marathi Language = "mr"
)

// AutoDetect is the sentinel preference meaning "classify the text".
const AutoDetect = "auto"

// Supported reports whether l is one of the three synthesizable languages.
func (l Language) Supported() bool {
	switch l {
	case English, Hindi, Marathi:
		return true
	}
	return false
}

// lexicalPattern is a single scoring rule: a literal fragment and the weight
// it contributes to its language when present in the text. The tables below
// are data, not control flow, so the rule set can be tuned without touching
// the scoring algorithm.
type lexicalPattern struct {
	text   string
	weight int
}

// Marathi-distinctive fragments: possessive markers, verb-ending forms and
// colloquial words that rarely appear in Hindi prose.
var marathiPatterns = []lexicalPattern{
	{"च्या", 1},
	{"माझ्या", 1},
	{"तुमच्या", 1},
	{"आपल्या", 1},
	{"आहेत", 1},
	{"होते", 1},
	{"करतो", 1},
	{"नाही", 1},
	{"होय", 1},
	{"कृपया", 1},
	{"कारण", 1},
	{"म्हणून", 1},
}

// Hindi-distinctive fragments: copula forms, modal/aspect markers and formal
// connectives.
var hindiPatterns = []lexicalPattern{
	{"है", 1},
	{"हैं", 1},
	{"था", 1},
	{"थी", 1},
	{"हूँ", 1},
	{"चाहिए", 1},
	{"रहा", 1},
	{"रही", 1},
	{"सकता", 1},
	{"सकती", 1},
	{"लेकिन", 1},
	{"क्योंकि", 1},
	{"इसलिए", 1},
}

// Government/official vocabulary leans Hindi in this corpus.
var hindiDomainTerms = []lexicalPattern{
	{"सरकार", 1},
	{"योजना", 1},
	{"आवेदन", 1},
	{"दस्तावेज़", 1},
	{"प्रमाणपत्र", 1},
}

// Casual Marathi discourse markers.
var marathiDiscourseMarkers = []lexicalPattern{
	{"बरं", 1},
	{"अरे", 1},
	{"चला", 1},
	{"मस्त", 1},
}

// Classify labels text as en, hi or mr. It is a pure function: identical
// input always yields the identical label, which the audio cache key depends
// on. Text without Devanagari characters is English (also the fallback when
// no script is recognized at all). Devanagari text goes through weighted
// lexical scoring to split Hindi from Marathi; Hindi wins ties.
func Classify(text string) Language {
	if !containsDevanagari(text) {
		return English
	}
	marathi, hindi := scoreDevanagari(text)
	if marathi > hindi {
		return Marathi
	}
	return Hindi
}

// scoreDevanagari accumulates the Marathi and Hindi scores in a fixed order:
// pattern tables, copula override, domain hints, then a sentence-final check
// on near-ties. Reordering these steps changes outcomes on near-tie inputs.
func scoreDevanagari(text string) (marathi, hindi int) {
	for _, p := range marathiPatterns {
		if strings.Contains(text, p.text) {
			marathi += p.weight
		}
	}
	for _, p := range hindiPatterns {
		if strings.Contains(text, p.text) {
			hindi += p.weight
		}
	}

	// The copula is the strongest single signal: Marathi आहे against the
	// Hindi forms है/हैं. Hindi forms take precedence when both appear.
	hasHindiCopula := strings.Contains(text, "है") || strings.Contains(text, "हैं")
	if hasHindiCopula {
		hindi += 2
	} else if strings.Contains(text, "आहे") {
		marathi += 2
	}

	for _, p := range hindiDomainTerms {
		if strings.Contains(text, p.text) {
			hindi += p.weight
		}
	}
	for _, p := range marathiDiscourseMarkers {
		if strings.Contains(text, p.text) {
			marathi += p.weight
		}
	}

	if diff := marathi - hindi; diff >= -1 && diff <= 1 {
		switch finalCopula(text) {
		case Marathi:
			marathi++
		case Hindi:
			hindi++
		}
	}

	return marathi, hindi
}

// finalCopula inspects the last token for a copula ending. Returns the empty
// Language when the sentence ends in neither.
func finalCopula(text string) Language {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	last := strings.TrimRight(fields[len(fields)-1], "।.?!,")
	switch {
	case strings.HasSuffix(last, "आहेत"), strings.HasSuffix(last, "आहे"):
		return Marathi
	case strings.HasSuffix(last, "हैं"), strings.HasSuffix(last, "है"):
		return Hindi
	}
	return ""
}

func containsDevanagari(text string) bool {
	for _, r := range text {
		if r >= 0x0900 && r <= 0x097F {
			return true
		}
	}
	return false
}
