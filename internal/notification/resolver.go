package notification

import (
	"bgp-notifier/internal/logging"
	"bgp-notifier/internal/models"
)

// Resolver maps the users referenced by an alert to their configured
// email addresses.
type Resolver struct {
	notifiedEmails map[string][]string
	logger         *logging.Logger
}

func NewResolver(notifiedEmails map[string][]string, logger *logging.Logger) *Resolver {
	return &Resolver{notifiedEmails: notifiedEmails, logger: logger}
}

// Resolve returns one address group per distinct user referenced by the
// alert's events. Events without a matched rule are skipped. If any
// referenced user has no configured address, resolution fails closed:
// nothing is returned and nobody is notified, so a hijack is never
// partially announced.
func (r *Resolver) Resolve(content models.AlertContent) [][]string {
	users := make(map[string]struct{})
	for _, event := range content.Data {
		if event.MatchedRule != nil && event.MatchedRule.User != "" {
			users[event.MatchedRule.User] = struct{}{}
		}
	}

	groups := make([][]string, 0, len(users))
	for user := range users {
		emails, ok := r.notifiedEmails[user]
		if !ok || len(emails) == 0 {
			r.logger.Errorf("Not all users have an associated email address (user %q unmapped)", user)
			return nil
		}
		groups = append(groups, emails)
	}
	return groups
}
