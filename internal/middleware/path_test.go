package middleware

import "testing"

func TestNormalizePath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/login", "/login"},
		{"/(auth)/login", "/login"},
		{"/(main)/dashboard-employer/jobs", "/dashboard-employer/jobs"},
		{"/(a)/(b)/register", "/register"},
		{"/candidate/(wizard)/onboarding", "/candidate/onboarding"},
		{"/", "/"},
		{"/(auth)", "/"},
		{"", "/"},
		{"/jobs//detail", "/jobs/detail"},
	}

	for _, tc := range cases {
		if got := NormalizePath(tc.in); got != tc.want {
			t.Fatalf("NormalizePath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
