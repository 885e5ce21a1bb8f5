package phone

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "local ten digits",
			raw:  "0759917862",
			want: "+225 0759917862",
		},
		{
			name: "local with separators",
			raw:  "07 59 91 78 62",
			want: "+225 0759917862",
		},
		{
			name: "country code passthrough",
			raw:  "+2250759917862",
			want: "+2250759917862",
		},
		{
			name: "country code with spaces",
			raw:  "225 07 599 178 62",
			want: "+2250759917862",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			if err != nil {
				t.Fatalf("Normalize(%q) error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeRejectsAmbiguousLengths(t *testing.T) {
	for _, raw := range []string{
		"",
		"075991786",     // 9 digits
		"07599178621",   // 11 digits, no country code
		"3360759917862", // 13 digits, wrong country code
	} {
		if _, err := Normalize(raw); !errors.Is(err, ErrInvalidNumber) {
			t.Fatalf("Normalize(%q) = %v, want ErrInvalidNumber", raw, err)
		}
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid("0759917862") {
		t.Fatal("expected local number to be valid")
	}
	if IsValid("12345") {
		t.Fatal("expected short number to be invalid")
	}
}
