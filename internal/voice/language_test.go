package voice

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Language
	}{
		{
			name: "latin only",
			text: "What is this scheme?",
			want: English,
		},
		{
			name: "no recognized script",
			text: "12345 !!",
			want: English,
		},
		{
			name: "marathi copula without hindi copula",
			text: "कृपया योजना आहे",
			want: Marathi,
		},
		{
			name: "hindi modal",
			text: "योजना चाहिए",
			want: Hindi,
		},
		{
			name: "devanagari with no marathi pattern defaults to hindi",
			text: "यह एक परीक्षण वाक्य",
			want: Hindi,
		},
		{
			name: "hindi copula overrides other marathi matches",
			text: "माझ्या कारण नाही लेकिन पैसा है",
			want: Hindi,
		},
		{
			name: "marathi possessive and negation",
			text: "तुमच्या अर्जाची माहिती नाही",
			want: Marathi,
		},
		{
			name: "plural hindi copula",
			text: "सभी किसान पात्र हैं",
			want: Hindi,
		},
		{
			name: "mixed script with devanagari runs scoring",
			text: "PM Kisan बद्दल माझ्या कागदपत्रांची माहिती नाही",
			want: Marathi,
		},
		{
			name: "near tie broken by sentence-final marathi copula",
			text: "माझ्या कारण होते है आहे",
			want: Marathi,
		},
		{
			name: "exact tie defaults to hindi",
			text: "रहा कारण",
			want: Hindi,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.text); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	inputs := []string{
		"कृपया योजना आहे",
		"योजना चाहिए",
		"What is this scheme?",
		"माझ्या कारण होते है आहे",
	}
	for _, in := range inputs {
		first := Classify(in)
		for i := 0; i < 100; i++ {
			if got := Classify(in); got != first {
				t.Fatalf("Classify(%q) unstable: %q then %q", in, first, got)
			}
		}
	}
}

func TestLanguageSupported(t *testing.T) {
	for _, l := range []Language{English, Hindi, Marathi} {
		if !l.Supported() {
			t.Errorf("%q should be supported", l)
		}
	}
	for _, l := range []Language{"", "fr", "auto", "EN"} {
		if l.Supported() {
			t.Errorf("%q should not be supported", l)
		}
	}
}
