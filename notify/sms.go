package notify

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/rake87226-cmyk/vercel-backend/config"
)

// MessageCreator is the part of the Twilio REST API the SMS sender uses.
type MessageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// SMSSender delivers text messages through Twilio. A sender without an API
// client only logs what it would have sent.
type SMSSender struct {
	api  MessageCreator
	from string
	log  zerolog.Logger
}

func NewSMSSender(api MessageCreator, from string, logger zerolog.Logger) *SMSSender {
	return &SMSSender{api: api, from: from, log: logger.With().Str("component", "sms").Logger()}
}

// NewTwilioSender builds a sender from cfg, falling back to the logging stub
// when credentials are missing.
func NewTwilioSender(cfg config.Twilio, logger zerolog.Logger) *SMSSender {
	if !cfg.Configured() {
		logger.Info().Msg("Twilio not configured. SMS will be logged but not sent.")
		return NewSMSSender(nil, cfg.FromNumber, logger)
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	logger.Info().Str("from", cfg.FromNumber).Msg("Twilio SMS client initialized")
	return NewSMSSender(client.Api, cfg.FromNumber, logger)
}

func (s *SMSSender) Configured() bool { return s != nil && s.api != nil }

func (s *SMSSender) Send(to, body string) Result {
	if !s.Configured() {
		s.log.Info().Str("to", to).Str("body", body).Msg("SMS not sent")
		return Result{Channel: ChannelSMS, Reason: "Twilio not configured"}
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	msg, err := s.api.CreateMessage(params)
	if err != nil {
		s.log.Error().Err(err).Str("to", to).Msg("SMS send failed")
		return Result{Channel: ChannelSMS, Error: err.Error()}
	}

	var sid string
	if msg != nil && msg.Sid != nil {
		sid = *msg.Sid
	}
	s.log.Info().Str("sid", sid).Str("to", to).Msg("SMS sent")
	return Result{Channel: ChannelSMS, Success: true, MessageID: sid}
}

func orderSMS(orderID uint, total float64) string {
	return fmt.Sprintf("Order Confirmed!\nOrder ID: %d\nTotal: %s\nThank you for your order!", orderID, rupees(total))
}

func reservationSMS(r ReservationNotice) string {
	return fmt.Sprintf("Reservation Confirmed!\nReservation ID: %d\nDate: %s\nTime: %s\nParty Size: %d\nAdvance %s paid.\nThank you!",
		r.ReservationID, r.Date, r.Time, r.PartySize, rupees(ReservationAdvance))
}
