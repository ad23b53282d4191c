package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bgp-notifier/internal/logging"
	"bgp-notifier/internal/models"
)

func ruleEvent(user string) models.AlertEvent {
	return models.AlertEvent{MatchedRule: &models.RuleMatch{User: user, Prefix: "10.0.0.0/8"}}
}

func TestResolveDeduplicatesUsers(t *testing.T) {
	resolver := NewResolver(map[string][]string{
		"alice": {"a@x.com"},
		"bob":   {"b@x.com", "b2@x.com"},
	}, logging.NewNop())

	content := models.AlertContent{Data: []models.AlertEvent{
		ruleEvent("alice"),
		ruleEvent("alice"),
		ruleEvent("bob"),
		ruleEvent("alice"),
		ruleEvent("bob"),
	}}

	groups := resolver.Resolve(content)
	assert.Len(t, groups, 2)
	assert.ElementsMatch(t, groups, [][]string{
		{"a@x.com"},
		{"b@x.com", "b2@x.com"},
	})
}

func TestResolveSkipsEventsWithoutRule(t *testing.T) {
	resolver := NewResolver(map[string][]string{"alice": {"a@x.com"}}, logging.NewNop())

	content := models.AlertContent{Data: []models.AlertEvent{
		{MatchedMessage: &models.RoutingMessage{Peer: "p1"}},
		ruleEvent("alice"),
	}}

	groups := resolver.Resolve(content)
	assert.Equal(t, [][]string{{"a@x.com"}}, groups)
}

func TestResolveFailsClosedOnUnmappedUser(t *testing.T) {
	resolver := NewResolver(map[string][]string{"alice": {"a@x.com"}}, logging.NewNop())

	content := models.AlertContent{Data: []models.AlertEvent{
		ruleEvent("alice"),
		ruleEvent("mallory"), // unconfigured
	}}

	// One unmapped user suppresses delivery for everyone.
	assert.Empty(t, resolver.Resolve(content))
}

func TestResolveEmptyContent(t *testing.T) {
	resolver := NewResolver(map[string][]string{"alice": {"a@x.com"}}, logging.NewNop())
	assert.Empty(t, resolver.Resolve(models.AlertContent{}))
}
