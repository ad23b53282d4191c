package notification

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bgp-notifier/internal/logging"
	"bgp-notifier/internal/models"
	"bgp-notifier/internal/templates"
)

func hijackContent() models.AlertContent {
	return models.AlertContent{
		Message:  "Possible hijack of 10.0.0.0/8",
		Earliest: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Latest:   time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
		Origin:   "bgp-monitor",
		Data: []models.AlertEvent{
			{
				MatchedRule:    &models.RuleMatch{User: "alice", Prefix: "10.0.0.0/8", Description: "core prefix", ASN: 111},
				MatchedMessage: &models.RoutingMessage{Peer: "p1", OriginAS: 222, Prefix: "10.0.0.0/9"},
			},
			{
				MatchedRule:    &models.RuleMatch{User: "alice", Prefix: "10.0.0.0/8", Description: "core prefix", ASN: 111},
				MatchedMessage: &models.RoutingMessage{Peer: "p2", OriginAS: 333, Prefix: "10.0.0.0/10"},
			},
			{
				MatchedRule:    &models.RuleMatch{User: "alice", Prefix: "10.0.0.0/8", Description: "core prefix", ASN: 111},
				MatchedMessage: &models.RoutingMessage{Peer: "p1", OriginAS: 222, Prefix: "10.0.0.0/9"},
			},
		},
	}
}

func TestHijackContext(t *testing.T) {
	ctx := channelContext(models.ChannelHijack, hijackContent()).placeholders()

	assert.Equal(t, "Possible hijack of 10.0.0.0/8", ctx["summary"])
	assert.Equal(t, "2024-03-01 10:00:00", ctx["earliest"])
	assert.Equal(t, "2024-03-01 10:30:00", ctx["latest"])
	assert.Equal(t, "hijack", ctx["channel"])
	assert.Equal(t, "bgp-monitor", ctx["type"])
	assert.Equal(t, "10.0.0.0/8", ctx["prefix"])
	assert.Equal(t, "core prefix", ctx["description"])
	assert.Equal(t, "111", ctx["asn"])
	// p1 appears twice, so two distinct peers.
	assert.Equal(t, "2", ctx["peers"])
	// neworigin/newprefix come from the first event only.
	assert.Equal(t, "222", ctx["neworigin"])
	assert.Equal(t, "10.0.0.0/9", ctx["newprefix"])
	assert.Contains(t, ctx["bgplay"], "stat.ripe.net/widget/bgplay#")
	assert.Contains(t, ctx["bgplay"], "w.resource=10.0.0.0%2F8")
}

func TestVisibilityContextOmitsNewOrigin(t *testing.T) {
	ctx := channelContext(models.ChannelVisibility, hijackContent()).placeholders()

	assert.Equal(t, "visibility", ctx["channel"])
	assert.Equal(t, "10.0.0.0/8", ctx["prefix"])
	assert.Equal(t, "2", ctx["peers"])
	assert.Contains(t, ctx["bgplay"], "stat.ripe.net")
	assert.NotContains(t, ctx, "neworigin")
	assert.NotContains(t, ctx, "newprefix")
}

func TestNewPrefixContextCommonOnly(t *testing.T) {
	ctx := channelContext(models.ChannelNewPrefix, hijackContent()).placeholders()

	assert.Equal(t, map[string]string{
		"summary":  "Possible hijack of 10.0.0.0/8",
		"earliest": "2024-03-01 10:00:00",
		"latest":   "2024-03-01 10:30:00",
		"channel":  "newprefix",
		"type":     "bgp-monitor",
	}, ctx)
}

func TestUnknownChannelCommonOnly(t *testing.T) {
	ctx := channelContext("rpki", hijackContent()).placeholders()

	assert.Equal(t, "rpki", ctx["channel"])
	assert.NotContains(t, ctx, "prefix")
	assert.NotContains(t, ctx, "bgplay")
}

func TestComposeRendersTemplate(t *testing.T) {
	dir := t.TempDir()
	tmpl := "Hijack of ${prefix} by AS${neworigin} (${newprefix}), expected AS${asn}"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hijack.txt"), []byte(tmpl), 0644))

	composer := NewComposer(templates.NewStore(dir, []string{"hijack"}, logging.NewNop()))

	out, err := composer.Compose(models.ChannelHijack, hijackContent())
	require.NoError(t, err)
	assert.Equal(t, "Hijack of 10.0.0.0/8 by AS222 (10.0.0.0/9), expected AS111", out)
}

func TestComposeMissingTemplate(t *testing.T) {
	composer := NewComposer(templates.NewStore(t.TempDir(), []string{"hijack"}, logging.NewNop()))

	_, err := composer.Compose(models.ChannelHijack, hijackContent())
	require.ErrorIs(t, err, templates.ErrTemplateMissing)
}
