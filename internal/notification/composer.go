package notification

import (
	"strconv"

	"bgp-notifier/internal/bgplay"
	"bgp-notifier/internal/models"
	"bgp-notifier/internal/templates"
)

const timeLayout = "2006-01-02 15:04:05"

// Composer turns an alert into the final message text for a channel.
type Composer struct {
	store *templates.Store
}

func NewComposer(store *templates.Store) *Composer {
	return &Composer{store: store}
}

// Compose renders the channel's template against the alert's context.
// Returns templates.ErrTemplateMissing (wrapped) when the channel has
// no loaded template.
func (c *Composer) Compose(channel string, content models.AlertContent) (string, error) {
	return c.store.Render(channel, channelContext(channel, content).placeholders())
}

// A renderContext supplies the placeholder values for one channel.
type renderContext interface {
	placeholders() map[string]string
}

// channelContext maps an alert to the context variant for its channel.
// Unknown channels render with the common fields only; their leftover
// placeholders come out as "undefined".
func channelContext(channel string, content models.AlertContent) renderContext {
	common := newCommonContext(channel, content)
	switch channel {
	case models.ChannelHijack:
		return hijackContext{
			commonContext: common,
			rule:          *content.Data[0].MatchedRule,
			peers:         distinctPeers(content.Data),
			newOrigin:     content.Data[0].MatchedMessage.OriginAS,
			newPrefix:     content.Data[0].MatchedMessage.Prefix,
			link:          bgplay.Link(content.Data[0].MatchedRule.Prefix, content.Earliest, content.Latest, nil),
		}
	case models.ChannelVisibility:
		return visibilityContext{
			commonContext: common,
			rule:          *content.Data[0].MatchedRule,
			peers:         distinctPeers(content.Data),
			link:          bgplay.Link(content.Data[0].MatchedRule.Prefix, content.Earliest, content.Latest, nil),
		}
	case models.ChannelNewPrefix:
		return newPrefixContext{commonContext: common}
	default:
		return common
	}
}

// commonContext carries the fields shared by every channel.
type commonContext struct {
	summary  string
	earliest string
	latest   string
	channel  string
	origin   string
}

func newCommonContext(channel string, content models.AlertContent) commonContext {
	return commonContext{
		summary:  content.Message,
		earliest: content.Earliest.UTC().Format(timeLayout),
		latest:   content.Latest.UTC().Format(timeLayout),
		channel:  channel,
		origin:   content.Origin,
	}
}

func (c commonContext) placeholders() map[string]string {
	return map[string]string{
		"summary":  c.summary,
		"earliest": c.earliest,
		"latest":   c.latest,
		"channel":  c.channel,
		"type":     c.origin,
	}
}

// hijackContext adds the matched rule, the announcing origin and the
// announced prefix of the first observed update.
type hijackContext struct {
	commonContext
	rule      models.RuleMatch
	peers     int
	newOrigin int
	newPrefix string
	link      string
}

func (c hijackContext) placeholders() map[string]string {
	ctx := c.commonContext.placeholders()
	ctx["prefix"] = c.rule.Prefix
	ctx["description"] = c.rule.Description
	ctx["asn"] = strconv.Itoa(c.rule.ASN)
	ctx["peers"] = strconv.Itoa(c.peers)
	ctx["neworigin"] = strconv.Itoa(c.newOrigin)
	ctx["newprefix"] = c.newPrefix
	ctx["bgplay"] = c.link
	return ctx
}

type visibilityContext struct {
	commonContext
	rule  models.RuleMatch
	peers int
	link  string
}

func (c visibilityContext) placeholders() map[string]string {
	ctx := c.commonContext.placeholders()
	ctx["prefix"] = c.rule.Prefix
	ctx["description"] = c.rule.Description
	ctx["asn"] = strconv.Itoa(c.rule.ASN)
	ctx["peers"] = strconv.Itoa(c.peers)
	ctx["bgplay"] = c.link
	return ctx
}

type newPrefixContext struct {
	commonContext
}

// distinctPeers counts the distinct peers that observed the alert's
// routing messages.
func distinctPeers(events []models.AlertEvent) int {
	peers := make(map[string]struct{})
	for _, event := range events {
		if event.MatchedMessage != nil {
			peers[event.MatchedMessage.Peer] = struct{}{}
		}
	}
	return len(peers)
}
