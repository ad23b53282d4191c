package providers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"bgp-notifier/internal/models"
)

func TestBuildMessage(t *testing.T) {
	msg := models.EmailMessage{
		From:    "noc@example.net",
		To:      "a@x.com, b@x.com",
		Subject: "BGP alert: hijack",
		Text:    "Possible hijack of 10.0.0.0/8",
	}

	raw := buildMessage(msg)
	headers, body, found := strings.Cut(raw, "\r\n\r\n")
	assert.True(t, found)
	assert.Contains(t, headers, "From: noc@example.net\r\n")
	assert.Contains(t, headers, "To: a@x.com, b@x.com\r\n")
	assert.Contains(t, headers, "Subject: BGP alert: hijack\r\n")
	assert.Contains(t, headers, "Content-Type: text/plain; charset=utf-8")
	assert.Equal(t, "Possible hijack of 10.0.0.0/8\r\n", body)
}

func TestSplitAddresses(t *testing.T) {
	tests := []struct {
		name   string
		joined string
		want   []string
	}{
		{"single", "a@x.com", []string{"a@x.com"}},
		{"comma joined", "a@x.com, b@x.com", []string{"a@x.com", "b@x.com"}},
		{"no space", "a@x.com,b@x.com", []string{"a@x.com", "b@x.com"}},
		{"empty entries", "a@x.com, , ", []string{"a@x.com"}},
		{"empty", "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitAddresses(tt.joined))
		})
	}
}
