package extract

import "testing"

// TestCleanValue tests label value cleaning.
func TestCleanValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"strips leading colon and space", ": Professor of CS", "Professor of CS", true},
		{"strips repeated colons", ":: 8-49", "8-49", true},
		{"keeps inner colons", "Room: 8-49", "Room: 8-49", true},
		{"whitespace before colon keeps colon", "  : x", ": x", true},
		{"trims unicode whitespace", " Lecturer ", "Lecturer", true},
		{"empty is absent", "", "", false},
		{"colon only is absent", ":", "", false},
		{"whitespace only is absent", " \n\t ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := CleanValue(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("CleanValue(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

// TestCleanPhone tests phone number sanitizing.
func TestCleanPhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"removes letters and dots", "(909) 869-1234 ext. 100", "(909) 869-1234  100", true},
		{"removes leading colon", ": 909-869-1234", "909-869-1234", true},
		{"keeps plain digits", "9098691234", "9098691234", true},
		{"removes plus and slash", "+1 909/869", "1 909869", true},
		{"drops non-ASCII digits", "٣٤٥ 12", "12", true},
		{"letters only is absent", "TBA", "", false},
		{"empty is absent", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := CleanPhone(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("CleanPhone(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
