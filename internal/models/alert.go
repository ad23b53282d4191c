package models

import "time"

// Alert channels understood by the notification pipeline.
const (
	ChannelHijack     = "hijack"
	ChannelVisibility = "visibility"
	ChannelNewPrefix  = "newprefix"
)

// Channels lists every channel a template is loaded for.
var Channels = []string{ChannelHijack, ChannelVisibility, ChannelNewPrefix}

// RuleMatch is the monitoring rule that triggered an alert.
type RuleMatch struct {
	User        string `json:"user"`
	Prefix      string `json:"prefix"`
	Description string `json:"description"`
	ASN         int    `json:"asn"`
}

// RoutingMessage is the observed BGP update that satisfied the rule.
type RoutingMessage struct {
	Peer     string `json:"peer"`
	OriginAS int    `json:"originAs"`
	Prefix   string `json:"prefix"`
}

// AlertEvent pairs a matched rule with the routing message that matched it.
// Either side may be absent depending on the channel.
type AlertEvent struct {
	MatchedRule    *RuleMatch      `json:"matchedRule,omitempty"`
	MatchedMessage *RoutingMessage `json:"matchedMessage,omitempty"`
}

// AlertContent is one detected anomaly as produced by the upstream
// monitoring pipeline, possibly backed by multiple routing messages.
//
// For the hijack and visibility channels the first event's MatchedRule
// must be present; that is a contract with the producer, not something
// the pipeline defends against.
type AlertContent struct {
	Message  string       `json:"message"`
	Earliest time.Time    `json:"earliest"`
	Latest   time.Time    `json:"latest"`
	Origin   string       `json:"origin"`
	Data     []AlertEvent `json:"data"`
}

// EmailMessage is a composed outbound email, owned by the delivery
// queue until dispatched or dropped.
type EmailMessage struct {
	From    string `json:"from"`
	To      string `json:"to"` // comma-joined address list
	Subject string `json:"subject"`
	Text    string `json:"text"`

	// NotificationID ties the message back to its notification record.
	NotificationID string `json:"notification_id,omitempty"`
}
