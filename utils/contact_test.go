package utils

import "testing"

func TestDigitsOnly(t *testing.T) {
	cases := []struct{ in, want string }{
		{"+254 712 345678", "254712345678"},
		{"(020) 555-0199", "0205550199"},
		{"no digits here", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := DigitsOnly(tc.in); got != tc.want {
			t.Errorf("DigitsOnly(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestWhatsAppLink(t *testing.T) {
	if got := WhatsAppLink("+254 712 345678"); got != "https://wa.me/254712345678" {
		t.Fatalf("unexpected link: %q", got)
	}
	if got := WhatsAppLink("call me"); got != "" {
		t.Fatalf("digit-free phone should yield no link, got %q", got)
	}
}

func TestTelLink(t *testing.T) {
	if got := TelLink("+254 712 345678"); got != "tel:+254 712 345678" {
		t.Fatalf("unexpected link: %q", got)
	}
	if got := TelLink("   "); got != "" {
		t.Fatalf("blank phone should yield no link, got %q", got)
	}
}
