package webdoc

import (
	"net"
	"testing"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{
			name:    "valid https URL",
			url:     "https://csrc.nist.gov/pubs/sp/800/53/r5/final",
			wantErr: false,
		},
		{
			name:    "http URL rejected",
			url:     "http://example.com",
			wantErr: true,
		},
		{
			name:    "ftp scheme rejected",
			url:     "ftp://example.com/doc.pdf",
			wantErr: true,
		},
		{
			name:    "localhost rejected",
			url:     "https://localhost:8080",
			wantErr: true,
		},
		{
			name:    "127.0.0.1 rejected",
			url:     "https://127.0.0.1/path",
			wantErr: true,
		},
		{
			name:    ".local domain rejected",
			url:     "https://myserver.local/api",
			wantErr: true,
		},
		{
			name:    ".internal domain rejected",
			url:     "https://grc.internal/ssp",
			wantErr: true,
		},
		{
			name:    "private IP rejected",
			url:     "https://192.168.1.1/path",
			wantErr: true,
		},
		{
			name:    "CGNAT IP rejected",
			url:     "https://100.64.0.1/",
			wantErr: true,
		},
		{
			name:    "malformed URL rejected",
			url:     "https://ex ample.com",
			wantErr: true,
		},
	}

	var v Validator
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURLAllowPrivateHosts(t *testing.T) {
	v := Validator{AllowPrivateHosts: true}

	allowed := []string{
		"http://localhost:8080/doc.html",
		"https://127.0.0.1/path",
		"https://192.168.1.1/ssp",
		"https://myserver.internal/policies",
	}
	for _, u := range allowed {
		if err := v.ValidateURL(u); err != nil {
			t.Errorf("ValidateURL(%q) with private hosts allowed = %v, want nil", u, err)
		}
	}

	// Scheme restrictions still apply
	if err := v.ValidateURL("ftp://localhost/doc"); err == nil {
		t.Error("ValidateURL(ftp URL) = nil, want error even with private hosts allowed")
	}
}

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		name    string
		ip      string
		private bool
	}{
		{"public IPv4", "8.8.8.8", false},
		{"10.x range", "10.0.0.1", true},
		{"172.16 range", "172.16.5.4", true},
		{"192.168 range", "192.168.0.100", true},
		{"loopback", "127.0.0.1", true},
		{"link-local", "169.254.1.1", true},
		{"CGNAT", "100.64.12.34", true},
		{"IPv6 loopback", "::1", true},
		{"IPv6 unique local", "fd00::1", true},
		{"IPv6 link-local", "fe80::1", true},
		{"IPv6-mapped private IPv4", "::ffff:192.168.1.1", true},
		{"public IPv6", "2607:f8b0::1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ip := net.ParseIP(tt.ip)
			if ip == nil {
				t.Fatalf("failed to parse IP %q", tt.ip)
			}
			if got := IsPrivateIP(ip); got != tt.private {
				t.Errorf("IsPrivateIP(%q) = %v, want %v", tt.ip, got, tt.private)
			}
		})
	}
}
