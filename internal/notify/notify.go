// Package notify emails the couple when guests act on the registry.
// Notifications are best-effort: a mail failure never fails the request
// that triggered it.
package notify

import (
	"fmt"
	"html"
	"log/slog"

	"github.com/inbucket/html2text"
	"github.com/wneessen/go-mail"

	"gift-registry/internal/config"
)

type Notifier struct {
	cfg    config.Email
	logger *slog.Logger
}

// New returns nil when no notification recipient is configured; a nil
// Notifier is safe to call.
func New(cfg config.Email) *Notifier {
	if cfg.NotifyTo == "" {
		return nil
	}
	return &Notifier{
		cfg:    cfg,
		logger: slog.With("component", "notify"),
	}
}

func (n *Notifier) send(subject, htmlBody string) {
	if n == nil {
		return
	}

	text, err := html2text.FromString(htmlBody, html2text.Options{PrettyTables: true})
	if err != nil {
		n.logger.Error("Failed to convert notification to text", "error", err)
		text = ""
	}

	msg := mail.NewMsg()
	if err := msg.From(n.cfg.From); err != nil {
		n.logger.Error("Invalid notification sender", "from", n.cfg.From, "error", err)
		return
	}
	if err := msg.To(n.cfg.NotifyTo); err != nil {
		n.logger.Error("Invalid notification recipient", "to", n.cfg.NotifyTo, "error", err)
		return
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, text)
	msg.AddAlternativeString(mail.TypeTextHTML, htmlBody)

	opts := []mail.Option{mail.WithPort(n.cfg.Port)}
	if n.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(n.cfg.Username),
			mail.WithPassword(n.cfg.Password),
		)
	}

	client, err := mail.NewClient(n.cfg.Host, opts...)
	if err != nil {
		n.logger.Error("Failed to create mail client", "error", err)
		return
	}

	if err := client.DialAndSend(msg); err != nil {
		n.logger.Error("Failed to send notification", "subject", subject, "error", err)
	}
}

// ReservationCreated fires in the background after a successful reservation.
func (n *Notifier) ReservationCreated(itemTitle, guestName string) {
	if n == nil {
		return
	}
	go n.send(
		"Presente reservado: "+itemTitle,
		fmt.Sprintf("<p><b>%s</b> reservou o presente <b>%s</b>.</p>",
			html.EscapeString(guestName), html.EscapeString(itemTitle)),
	)
}

// ContributionCreated fires after a contribution; itemTitle is empty for
// general contributions.
func (n *Notifier) ContributionCreated(itemTitle, guestName string, amountCents int64) {
	if n == nil {
		return
	}
	target := "presente geral"
	if itemTitle != "" {
		target = "a vaquinha " + itemTitle
	}
	go n.send(
		"Nova contribuição recebida",
		fmt.Sprintf("<p><b>%s</b> contribuiu R$ %d,%02d para %s.</p>",
			html.EscapeString(guestName), amountCents/100, amountCents%100, html.EscapeString(target)),
	)
}

// RsvpCreated fires after a new RSVP.
func (n *Notifier) RsvpCreated(guestName string, attending bool, companions int) {
	if n == nil {
		return
	}
	verdict := "não poderá comparecer"
	if attending {
		verdict = fmt.Sprintf("confirmou presença com %d acompanhante(s)", companions)
	}
	go n.send(
		"Novo RSVP: "+guestName,
		fmt.Sprintf("<p><b>%s</b> %s.</p>", html.EscapeString(guestName), verdict),
	)
}
