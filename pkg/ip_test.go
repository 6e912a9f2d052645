package pkg

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIPIsLocal(t *testing.T) {
	cases := []struct {
		addr            string
		expectedIsLocal bool
	}{
		{addr: "83.12.53.65:2145", expectedIsLocal: false},
		{addr: "127.23.0.1:35325", expectedIsLocal: false},
		{addr: "172.20.0.1:60102", expectedIsLocal: true},
		{addr: "172.20.0.1:60096", expectedIsLocal: true},
		{addr: "172.200.0.1:60096", expectedIsLocal: true},
		{addr: "172.19.0.1:42452", expectedIsLocal: true},
		{addr: "172.0.0.1:42452", expectedIsLocal: true},
		{addr: "83.12.53.65:214", expectedIsLocal: false},
		{addr: "172.19.0.1:42452", expectedIsLocal: true},
		{addr: "172.0.0.1:352345", expectedIsLocal: true},
		{addr: "111.12.56.65:8080", expectedIsLocal: false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expectedIsLocal, IPIsLocal(tc.addr))
	}
}

func TestClientIP(t *testing.T) {
	cases := []struct {
		name         string
		remoteAddr   string
		headers      map[string]string
		trustHeaders bool
		want         string
	}{
		{name: "remote addr", remoteAddr: "83.12.53.65:2145", want: "83.12.53.65"},
		{name: "local", remoteAddr: "127.0.0.1:51234", want: "localhost"},
		{name: "docker", remoteAddr: "172.20.0.1:60102", want: "localhost"},
		{name: "ipv6", remoteAddr: "[2001:db8::1]:443", want: "2001:db8::1"},
		{name: "real ip trusted", remoteAddr: "10.0.0.2:80", headers: map[string]string{"X-Real-Ip": "111.12.56.65"}, trustHeaders: true, want: "111.12.56.65"},
		{name: "forwarded for trusted", remoteAddr: "10.0.0.2:80", headers: map[string]string{"X-Forwarded-For": "84.1.2.3, 10.0.0.1"}, trustHeaders: true, want: "84.1.2.3"},
		{name: "trusted without headers", remoteAddr: "10.0.0.2:80", trustHeaders: true, want: "10.0.0.2"},
		{name: "real ip ignored", remoteAddr: "203.0.113.7:4431", headers: map[string]string{"X-Real-Ip": "111.12.56.65"}, want: "203.0.113.7"},
		{name: "forwarded for ignored", remoteAddr: "203.0.113.7:4431", headers: map[string]string{"X-Forwarded-For": "84.1.2.3"}, want: "203.0.113.7"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tc.want, ClientIP(req, tc.trustHeaders))
		})
	}
}
