package clientip

import (
	"net/http"
	"testing"
)

func TestFromHeaders(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{
			name:    "forwarded chain takes first hop",
			headers: map[string]string{"X-Forwarded-For": "198.51.100.7, 10.0.0.1"},
			want:    "198.51.100.7",
		},
		{
			name:    "forwarded single value",
			headers: map[string]string{"X-Forwarded-For": "203.0.113.5"},
			want:    "203.0.113.5",
		},
		{
			name:    "forwarded with leading empty entry",
			headers: map[string]string{"X-Forwarded-For": " , 203.0.113.5"},
			want:    "203.0.113.5",
		},
		{
			name:    "real ip",
			headers: map[string]string{"X-Real-IP": "192.0.2.10"},
			want:    "192.0.2.10",
		},
		{
			name:    "cloudflare",
			headers: map[string]string{"CF-Connecting-IP": "192.0.2.33"},
			want:    "192.0.2.33",
		},
		{
			name: "forwarded wins over real ip",
			headers: map[string]string{
				"X-Forwarded-For": "198.51.100.7",
				"X-Real-IP":       "192.0.2.10",
			},
			want: "198.51.100.7",
		},
		{
			name:    "no proxy headers",
			headers: nil,
			want:    "127.0.0.1",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := http.Header{}
			for k, v := range tc.headers {
				h.Set(k, v)
			}
			if got := FromHeaders(h); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
