package services

import "testing"

func TestComputeInitials(t *testing.T) {
	cases := []struct {
		first, last, want string
	}{
		{"Alice", "Smith", "AS"},
		{"bob", "", "B"},
		{"", "", "?"},
		{" anna ", " karenina ", "AK"},
		{"élodie", "dupont", "ÉD"},
	}
	for _, tc := range cases {
		if got := computeInitials(tc.first, tc.last); got != tc.want {
			t.Fatalf("computeInitials(%q, %q) = %q, want %q", tc.first, tc.last, got, tc.want)
		}
	}
}
