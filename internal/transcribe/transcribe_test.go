package transcribe

import "testing"

func TestSupportedScript(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"english", "What schemes are available?", true},
		{"hindi", "मुझे योजना चाहिए", true},
		{"marathi", "कृपया योजना आहे", true},
		{"mixed", "PM Kisan योजना", true},
		{"empty", "", false},
		{"whitespace", "   \n ", false},
		{"digits and punctuation", "1234 !?", false},
		{"other script", "это тест", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SupportedScript(tt.text); got != tt.want {
				t.Errorf("SupportedScript(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
