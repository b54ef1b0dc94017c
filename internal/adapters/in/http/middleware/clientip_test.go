package middleware

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTrustedProxies(t *testing.T) {
	tests := []struct {
		name        string
		input       []string
		wantCount   int
		wantInvalid []string
	}{
		{name: "empty", input: nil},
		{name: "cidr", input: []string{"10.0.0.0/8"}, wantCount: 1},
		{name: "single ipv4", input: []string{"10.0.0.1"}, wantCount: 1},
		{name: "single ipv6", input: []string{"::1"}, wantCount: 1},
		{name: "ipv6 cidr", input: []string{"fd00::/8"}, wantCount: 1},
		{
			name:        "invalid entries are reported",
			input:       []string{"10.0.0.0/8", "not-an-ip", "300.1.1.1"},
			wantCount:   1,
			wantInvalid: []string{"not-an-ip", "300.1.1.1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nets, invalid := ParseTrustedProxies(tt.input)
			assert.Len(t, nets, tt.wantCount)
			assert.Equal(t, tt.wantInvalid, invalid)
		})
	}
}

func TestParseTrustedProxies_SingleIPMask(t *testing.T) {
	nets := mustNets(t, "10.0.0.1", "2001:db8::1")

	ones, bits := nets[0].Mask.Size()
	assert.Equal(t, 32, ones)
	assert.Equal(t, 32, bits)

	ones, bits = nets[1].Mask.Size()
	assert.Equal(t, 128, ones)
	assert.Equal(t, 128, bits)
}

func TestContainsIP(t *testing.T) {
	nets := mustNets(t, "10.0.0.0/8", "192.168.1.1")

	assert.True(t, ContainsIP("10.1.2.3", nets))
	assert.True(t, ContainsIP("192.168.1.1", nets))
	assert.False(t, ContainsIP("192.168.1.2", nets))
	assert.False(t, ContainsIP("garbage", nets))
	assert.False(t, ContainsIP("10.1.2.3", nil))
}

func TestIPExtractor(t *testing.T) {
	trusted := mustNets(t, "10.0.0.0/8")

	tests := []struct {
		name       string
		trusted    bool
		remoteAddr string
		xff        string
		want       string
	}{
		{
			name:       "no trusted proxies uses the peer address",
			remoteAddr: "10.0.0.5:1234",
			xff:        "203.0.113.7",
			want:       "10.0.0.5",
		},
		{
			name:       "trusted proxy forwards the client",
			trusted:    true,
			remoteAddr: "10.0.0.5:1234",
			xff:        "203.0.113.7",
			want:       "203.0.113.7",
		},
		{
			name:       "untrusted peer cannot spoof the header",
			trusted:    true,
			remoteAddr: "198.51.100.9:1234",
			xff:        "203.0.113.7",
			want:       "198.51.100.9",
		},
		{
			name:       "trusted peer without header",
			trusted:    true,
			remoteAddr: "10.0.0.5:1234",
			want:       "10.0.0.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nets := trusted
			if !tt.trusted {
				nets = nil
			}
			rec := serve(newTestEcho(nets, nil), tt.remoteAddr, tt.xff)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, rec.Body.String())
		})
	}
}
