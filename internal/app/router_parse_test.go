package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOrigins(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", []string{"*"}},
		{"*", []string{"*"}},
		{"https://a.com, https://b.com", []string{"https://a.com", "https://b.com"}},
		{"  ,  ", []string{"*"}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ParseOrigins(c.in), c.in)
	}
}

func TestSpanRoute(t *testing.T) {
	assert.Equal(t, "/healthz", spanRoute("/healthz"))
	assert.Equal(t, "/v1/sessions/{id}", spanRoute("/v1/sessions/abc"))
	assert.Equal(t, "/v1/sessions/{id}/search", spanRoute("/v1/sessions/abc/search"))
}
