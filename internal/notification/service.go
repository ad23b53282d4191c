package notification

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"bgp-notifier/internal/config"
	"bgp-notifier/internal/logging"
	"bgp-notifier/internal/models"
	"bgp-notifier/internal/templates"
)

// Sender performs a single delivery attempt for one email.
type Sender interface {
	Send(ctx context.Context, msg models.EmailMessage) error
}

// Announcer pushes a short alert summary to a side channel.
type Announcer interface {
	Announce(ctx context.Context, text string) error
}

// NotificationStore records notifications and their delivery outcome.
type NotificationStore interface {
	CreateNotification(ctx context.Context, n models.Notification) error
	UpdateNotificationStatus(ctx context.Context, id, status, lastError string) error
}

// feedEvent is what WebSocket clients receive per dispatched email.
type feedEvent struct {
	Subject string `json:"subject"`
	To      string `json:"to"`
	Status  string `json:"status"`
}

// Service is the notification pipeline entry point: it resolves
// recipients, composes channel-specific message text and hands the
// result to the delivery queue. Report never blocks on the transport.
type Service struct {
	config    config.Config
	logger    *logging.Logger
	resolver  *Resolver
	composer  *Composer
	queue     *DeliveryQueue
	sender    Sender
	announcer Announcer
	store     NotificationStore
	feed      *Feed

	ctx    context.Context
	cancel context.CancelFunc
}

// New constructs the notification Service. sender, announcer and store
// may be nil: a nil sender makes dispatch a silent no-op, a nil
// announcer disables the side channel, a nil store disables the
// notification log.
func New(cfg config.Config, logger *logging.Logger, tmpl *templates.Store, sender Sender, announcer Announcer, store NotificationStore) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Service{
		config:    cfg,
		logger:    logger,
		resolver:  NewResolver(cfg.NotifiedEmails, logger),
		composer:  NewComposer(tmpl),
		sender:    sender,
		announcer: announcer,
		store:     store,
		feed:      NewFeed(logger),
		ctx:       ctx,
		cancel:    cancel,
	}
	s.queue = NewDeliveryQueue(
		cfg.Notification.QueueSize,
		cfg.Notification.DrainInterval,
		cfg.Notification.MaxPerTick,
		s.dispatchEmail,
		logger,
	)
	return s
}

// Logger exposes the Service's logger to the Kafka consumer and API.
func (s *Service) Logger() *logging.Logger {
	return s.logger
}

// Feed exposes the live notification feed for WebSocket handlers.
func (s *Service) Feed() *Feed {
	return s.feed
}

// Start launches the delivery queue drain loop.
func (s *Service) Start() {
	s.queue.Start()
}

// Stop halts the drain loop. Queued messages are not flushed.
func (s *Service) Stop() {
	s.cancel()
	s.queue.Stop()
}

// Report resolves recipients for the alert, renders the channel's
// message once and enqueues one email per recipient group. All
// failures are logged; the caller gets no synchronous error signal.
func (s *Service) Report(channel string, content models.AlertContent) {
	requestID := uuid.New()

	groups := s.resolver.Resolve(content)
	if len(groups) == 0 {
		s.logger.Debugf("Report %s: no recipients resolved for %s alert, nothing to send", requestID, channel)
		return
	}

	// Rendering does not vary by recipient, so render once per report.
	text, err := s.composer.Compose(channel, content)
	if err != nil {
		s.logger.Errorf("Report %s: failed to render %s alert: %v", requestID, channel, err)
		return
	}

	subject := "BGP alert: " + channel
	for _, group := range groups {
		id := uuid.New()
		msg := models.EmailMessage{
			From:           s.config.SMTP.From,
			To:             strings.Join(group, ", "),
			Subject:        subject,
			Text:           text,
			NotificationID: id.String(),
		}
		if s.store != nil {
			n := models.Notification{
				ID:         [16]byte(id),
				RequestID:  [16]byte(requestID),
				CreatedAt:  time.Now(),
				Channel:    channel,
				Subject:    subject,
				Recipients: msg.To,
				Body:       text,
				Status:     models.StatusPending,
			}
			if err := s.store.CreateNotification(s.ctx, n); err != nil {
				s.logger.Errorf("Report %s: CreateNotification failed: %v", requestID, err)
			}
		}
		s.queue.Enqueue(msg)
	}
	s.logger.Infof("Report %s: queued %d email(s) for %s alert", requestID, len(groups), channel)

	if s.announcer != nil {
		summary := subject + "\n" + content.Message
		go func() {
			if err := s.announcer.Announce(s.ctx, summary); err != nil {
				s.logger.Errorf("Report %s: telegram announce failed: %v", requestID, err)
			}
		}()
	}
}

// dispatchEmail performs the single best-effort delivery attempt for
// one dequeued message and records the outcome.
func (s *Service) dispatchEmail(msg models.EmailMessage) {
	ctx, cancel := context.WithTimeout(s.ctx, 30*time.Second)
	defer cancel()

	var sendErr error
	if s.sender != nil {
		sendErr = s.sender.Send(ctx, msg)
	}

	status := models.StatusSent
	lastError := ""
	if sendErr != nil {
		status = models.StatusFailed
		lastError = sendErr.Error()
		s.logger.Errorf("Failed to send email to %s: %v", msg.To, sendErr)
	} else {
		s.logger.Infof("Dispatched email to %s: %s", msg.To, msg.Subject)
	}

	if s.store != nil && msg.NotificationID != "" {
		if err := s.store.UpdateNotificationStatus(ctx, msg.NotificationID, status, lastError); err != nil {
			s.logger.Errorf("UpdateNotificationStatus failed for %s: %v", msg.NotificationID, err)
		}
	}

	s.feed.Broadcast(feedEvent{
		Subject: msg.Subject,
		To:      msg.To,
		Status:  status,
	})
}
