package logger

import "testing"

func TestRedactEmail(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"john.doe@example.com", "jo***@example.com"},
		{"ab@example.com", "***@example.com"},
		{"x@example.com", "***@example.com"},
		{"not-an-email", "***@***"},
	}
	for _, tc := range cases {
		if got := RedactEmail(tc.in); got != tc.want {
			t.Errorf("RedactEmail(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRedactValue_AddressFields(t *testing.T) {
	got := redactValue("address", "bouncer@example.test")
	if got != "bo***@example.test" {
		t.Errorf("address field not redacted: %q", got)
	}

	got = redactValue("detail", "delivery to someone@example.test failed")
	if got != "delivery to so***@example.test failed" {
		t.Errorf("embedded address not redacted: %q", got)
	}

	got = redactValue("relay", "smtp.example.test")
	if got != "smtp.example.test" {
		t.Errorf("non-address value changed: %q", got)
	}
}
