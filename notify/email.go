package notify

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"github.com/rake87226-cmyk/vercel-backend/config"
)

// Mailer delivers fully built messages; *gomail.Dialer satisfies it.
type Mailer interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailSender delivers HTML mail over SMTP. A sender without a mailer only
// logs what it would have sent.
type EmailSender struct {
	mailer Mailer
	from   string
	log    zerolog.Logger
}

func NewEmailSender(mailer Mailer, from string, logger zerolog.Logger) *EmailSender {
	return &EmailSender{mailer: mailer, from: from, log: logger.With().Str("component", "email").Logger()}
}

// NewSMTPSender builds a sender from cfg. Port 465 uses implicit TLS, any
// other port upgrades with STARTTLS when the server offers it.
func NewSMTPSender(cfg config.SMTP, logger zerolog.Logger) *EmailSender {
	logger.Debug().
		Bool("host", cfg.Host != "").
		Bool("port", cfg.Port != 0).
		Bool("user", cfg.User != "").
		Bool("password", cfg.Password != "").
		Bool("from", cfg.From != "").
		Msg("Checking email config")

	if !cfg.Configured() {
		logger.Info().Msg("Email not fully configured. Emails will be logged but not sent.")
		return NewEmailSender(nil, cfg.From, logger)
	}
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	logger.Info().Str("host", cfg.Host).Int("port", cfg.Port).Str("user", cfg.User).Msg("Email client initialized")
	return NewEmailSender(dialer, cfg.From, logger)
}

func (s *EmailSender) Configured() bool { return s != nil && s.mailer != nil }

func (s *EmailSender) Send(to, subject, html string) Result {
	if !s.Configured() {
		s.log.Info().Str("to", to).Str("subject", subject).Msg("Email not sent")
		return Result{Channel: ChannelEmail, Reason: "Email not configured"}
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), mailDomain(s.from))
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetHeader("Message-ID", messageID)
	m.SetBody("text/html", html)

	s.log.Debug().Str("to", to).Str("from", s.from).Msg("Sending email")
	if err := s.mailer.DialAndSend(m); err != nil {
		s.log.Error().Err(err).Str("to", to).Msg("Email send failed")
		return Result{Channel: ChannelEmail, Error: err.Error()}
	}
	s.log.Info().Str("to", to).Str("message_id", messageID).Msg("Email sent")
	return Result{Channel: ChannelEmail, Success: true, MessageID: messageID}
}

func mailDomain(addr string) string {
	if i := strings.LastIndex(addr, "@"); i >= 0 && i < len(addr)-1 {
		return strings.Trim(addr[i+1:], "> ")
	}
	return "localhost"
}
