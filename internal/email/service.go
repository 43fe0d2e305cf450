// Package email sends transactional mail over SMTP. Delivery is
// best-effort: callers log failures and carry on.
package email

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/openvet/clinic-api/internal/model"
)

type Service interface {
	AppointmentBooked(client *model.Client, apt *model.Appointment) error
	AppointmentCancelled(client *model.Client, apt *model.Appointment) error
	SendCustom(to, subject, body string) error
}

type Config struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg Config) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass),
		from:   cfg.From,
	}
}

func (s *smtpService) AppointmentBooked(client *model.Client, apt *model.Appointment) error {
	subject := "Appointment confirmed"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour appointment has been booked for %s at %s.\nReason: %s\n\nSee you soon,\nThe clinic team",
		client.FirstName, apt.Date, apt.Time, apt.Reason,
	)
	return s.SendCustom(client.Email, subject, body)
}

func (s *smtpService) AppointmentCancelled(client *model.Client, apt *model.Appointment) error {
	subject := "Appointment cancelled"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour appointment on %s at %s has been cancelled.\nIf this was unexpected, please contact the clinic.\n\nThe clinic team",
		client.FirstName, apt.Date, apt.Time,
	)
	return s.SendCustom(client.Email, subject, body)
}

func (s *smtpService) SendCustom(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

// NoopService is used when SMTP is not configured.
type NoopService struct{}

func (NoopService) AppointmentBooked(*model.Client, *model.Appointment) error { return nil }

func (NoopService) AppointmentCancelled(*model.Client, *model.Appointment) error { return nil }

func (NoopService) SendCustom(string, string, string) error { return nil }
