package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rake87226-cmyk/vercel-backend/config"
)

const publishTimeout = 10 * time.Second

type LineNotice struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type OrderNotice struct {
	OrderID       uint         `json:"order_id"`
	CustomerName  string       `json:"customer_name"`
	CustomerEmail string       `json:"customer_email"`
	CustomerPhone string       `json:"customer_phone"`
	Total         float64      `json:"total"`
	Items         []LineNotice `json:"items"`
}

type ReservationNotice struct {
	ReservationID uint   `json:"reservation_id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	PartySize     int    `json:"party_size"`
}

type PaymentNotice struct {
	PaymentID     uint    `json:"payment_id"`
	OrderID       *uint   `json:"order_id"`
	ReservationID *uint   `json:"reservation_id"`
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
}

// Notifier dispatches confirmations in the background. Handlers call it
// after their response data is final and never learn the outcome; results
// are logged only.
type Notifier struct {
	sms    *SMSSender
	email  *EmailSender
	events *EventPublisher
	log    zerolog.Logger

	wg sync.WaitGroup
}

// New wires the given senders. Nil senders are replaced by logging stubs.
func New(sms *SMSSender, email *EmailSender, events *EventPublisher, logger zerolog.Logger) *Notifier {
	if sms == nil {
		sms = NewSMSSender(nil, "", logger)
	}
	if email == nil {
		email = NewEmailSender(nil, "", logger)
	}
	if events == nil {
		events = NewEventPublisher(nil, "", logger)
	}
	return &Notifier{sms: sms, email: email, events: events, log: logger.With().Str("component", "notifier").Logger()}
}

// FromConfig initialises every transport once for the life of the process.
func FromConfig(cfg config.Config, logger zerolog.Logger) *Notifier {
	return New(
		NewTwilioSender(cfg.Twilio, logger),
		NewSMTPSender(cfg.SMTP, logger),
		DialEvents(cfg.Events, logger),
		logger,
	)
}

func (n *Notifier) OrderPlaced(o OrderNotice) {
	if o.CustomerPhone != "" {
		n.dispatch(ChannelSMS, func() Result {
			return n.sms.Send(o.CustomerPhone, orderSMS(o.OrderID, o.Total))
		})
	}
	if o.CustomerEmail != "" {
		n.dispatch(ChannelEmail, func() Result {
			subject, html, err := renderOrderEmail(o)
			if err != nil {
				return Result{Channel: ChannelEmail, Error: err.Error()}
			}
			return n.email.Send(o.CustomerEmail, subject, html)
		})
	}
	n.publish(EventOrderPlaced, o)
}

func (n *Notifier) ReservationPlaced(r ReservationNotice) {
	if r.Phone != "" {
		n.dispatch(ChannelSMS, func() Result {
			return n.sms.Send(r.Phone, reservationSMS(r))
		})
	}
	if r.Email != "" {
		n.dispatch(ChannelEmail, func() Result {
			subject, html, err := renderReservationEmail(r)
			if err != nil {
				return Result{Channel: ChannelEmail, Error: err.Error()}
			}
			return n.email.Send(r.Email, subject, html)
		})
	}
	n.publish(EventReservationPlaced, r)
}

func (n *Notifier) PaymentRecorded(p PaymentNotice) {
	n.publish(EventPaymentRecorded, p)
}

func (n *Notifier) publish(key string, payload any) {
	n.dispatch(ChannelEvents, func() Result {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		return n.events.Publish(ctx, key, payload)
	})
}

func (n *Notifier) dispatch(channel string, send func() Result) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		defer func() {
			if p := recover(); p != nil {
				n.log.Error().Str("channel", channel).Interface("panic", p).Msg("Notification panicked")
			}
		}()
		send().log(n.log)
	}()
}

// Wait blocks until every dispatched send has finished or ctx is done.
func (n *Notifier) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("notifications still in flight: %w", ctx.Err())
	}
}

// Close releases the broker connection. Call Wait first.
func (n *Notifier) Close() {
	n.events.Close()
}
