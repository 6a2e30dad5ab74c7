package phone

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{" +1 555 000 1234 ", "+15550001234"},
		{"+1\t555\n0001234", "+15550001234"},
		{"+15550001234", "+15550001234"},
		{"   ", ""},
	}

	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValid(t *testing.T) {
	valid := []string{"+15550001234", "15550001234", "+6281234567890", "+447911123456"}
	for _, dest := range valid {
		if !Valid(dest) {
			t.Errorf("Valid(%q) = false, want true", dest)
		}
	}

	invalid := []string{"", "notaphone", "+0123456789", "+1555", "123456789", "+1555000123456789", "+1555-000-1234"}
	for _, dest := range invalid {
		if Valid(dest) {
			t.Errorf("Valid(%q) = true, want false", dest)
		}
	}
}
