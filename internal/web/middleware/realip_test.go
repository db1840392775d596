package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTrustedRealIP(t *testing.T) {
	trusted := []string{"10.0.0.0/8", "192.168.1.5", "not-an-ip"}

	tests := []struct {
		name       string
		remoteAddr string
		realIP     string
		forwarded  string
		want       string
	}{
		{"untrusted peer keeps address", "203.0.113.9:5000", "1.2.3.4", "", "203.0.113.9:5000"},
		{"trusted cidr uses X-Real-IP", "10.1.2.3:5000", "1.2.3.4", "", "1.2.3.4"},
		{"trusted single ip uses X-Real-IP", "192.168.1.5:80", "1.2.3.4", "", "1.2.3.4"},
		{"X-Real-IP wins over X-Forwarded-For", "10.1.2.3:5000", "1.2.3.4", "5.6.7.8", "1.2.3.4"},
		{"first X-Forwarded-For hop", "10.1.2.3:5000", "", "5.6.7.8, 10.0.0.1", "5.6.7.8"},
		{"invalid header ignored", "10.1.2.3:5000", "garbage", "", "10.1.2.3:5000"},
		{"no headers", "10.1.2.3:5000", "", "", "10.1.2.3:5000"},
		{"ipv6 client", "10.1.2.3:5000", "2001:db8::1", "", "2001:db8::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			h := TrustedRealIP(trusted)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.RemoteAddr
			}))

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.realIP != "" {
				r.Header.Set("X-Real-IP", tt.realIP)
			}
			if tt.forwarded != "" {
				r.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			h.ServeHTTP(httptest.NewRecorder(), r)

			if got != tt.want {
				t.Errorf("RemoteAddr = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTrustedRealIP_NoTrustedProxies(t *testing.T) {
	var got string
	h := TrustedRealIP(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.RemoteAddr
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "127.0.0.1:1234"
	r.Header.Set("X-Real-IP", "1.2.3.4")
	h.ServeHTTP(httptest.NewRecorder(), r)

	if got != "127.0.0.1:1234" {
		t.Errorf("RemoteAddr = %q, want unchanged", got)
	}
}
