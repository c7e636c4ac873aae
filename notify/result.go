// Package notify sends best-effort customer notifications. Senders never
// return errors: every outcome, including a missing configuration, is a
// Result that callers log and otherwise ignore.
package notify

import (
	"strconv"

	"github.com/rs/zerolog"
)

const (
	ChannelSMS    = "sms"
	ChannelEmail  = "email"
	ChannelEvents = "events"
)

type Result struct {
	Channel   string `json:"channel"`
	Success   bool   `json:"success"`
	MessageID string `json:"message_id,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (r Result) log(l zerolog.Logger) {
	var event *zerolog.Event
	switch {
	case r.Success:
		event = l.Info()
	case r.Error != "":
		event = l.Error().Str("error", r.Error)
	default:
		event = l.Debug().Str("reason", r.Reason)
	}
	event.Str("channel", r.Channel).Bool("success", r.Success).Str("message_id", r.MessageID).Msg("Notification finished")
}

// rupees formats an amount the way it appears in customer messages.
func rupees(amount float64) string {
	return "₹" + strconv.FormatFloat(amount, 'f', -1, 64)
}
