// Package notify delivers booking confirmation messages over SMTP.
// When no SMTP host is configured the mailer degrades to logging the
// message, which keeps local development working without a relay.
package notify

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"time"

	"hotel-booking-backend/internal/model"
)

// Mailer sends confirmation emails. Auth is plain SMTP auth; leave
// Host empty to run in log-only mode.
type Mailer struct {
	Host     string
	Port     string
	From     string
	Password string
}

// NewMailer constructs a Mailer from SMTP settings.
func NewMailer(host, port, from, password string) *Mailer {
	return &Mailer{Host: host, Port: port, From: from, Password: password}
}

// SendConfirmation emails the booking confirmation to address. The
// caller treats failures as non-fatal; the booking already exists by
// the time this runs.
func (m *Mailer) SendConfirmation(ctx context.Context, address string, b *model.Booking, hotelName, invoicePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	subject := fmt.Sprintf("Booking confirmed: %s", b.ConfirmationNumber)
	body := confirmationBody(b, hotelName, invoicePath)

	if m.Host == "" {
		log.Printf("notify: smtp not configured, logging instead | to=%s subject=%q", address, subject)
		return nil
	}

	msg := strings.Join([]string{
		"From: " + m.From,
		"To: " + address,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="utf-8"`,
		"",
		body,
	}, "\r\n")

	auth := smtp.PlainAuth("", m.From, m.Password, m.Host)
	if err := smtp.SendMail(m.Host+":"+m.Port, auth, m.From, []string{address}, []byte(msg)); err != nil {
		return fmt.Errorf("notify: send to %s: %w", address, err)
	}
	return nil
}

func confirmationBody(b *model.Booking, hotelName, invoicePath string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Your booking at %s is confirmed.\n\n", hotelName)
	fmt.Fprintf(&sb, "Confirmation number: %s\n", b.ConfirmationNumber)
	fmt.Fprintf(&sb, "Check-in:  %s\n", b.CheckInUTC.Format("2006-01-02"))
	fmt.Fprintf(&sb, "Check-out: %s\n", b.CheckOutUTC.Format("2006-01-02"))
	fmt.Fprintf(&sb, "Total:     %.2f EUR\n", float64(b.TotalPriceCents)/100)
	if invoicePath != "" {
		fmt.Fprintf(&sb, "Invoice:   %s\n", invoicePath)
	}
	fmt.Fprintf(&sb, "\nIssued %s\n", time.Now().UTC().Format(time.RFC3339))
	return sb.String()
}
