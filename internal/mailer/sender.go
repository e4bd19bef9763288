package mailer

import (
	"fmt"
	"html"
	"net/smtp"

	"estatery-api-io/api/internal/config"
	"estatery-api-io/api/pkg/util"

	"github.com/jordan-wright/email"
)

const JobWelcome = "welcome"

// Job is one email waiting to be sent.
type Job struct {
	Type     string
	To       string
	Username string
}

// Sender handles sending emails via SMTP
type Sender struct {
	cfg  *config.Config
	send func(e *email.Email) error
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config) *Sender {
	s := &Sender{cfg: cfg}
	s.send = s.sendSMTP
	return s
}

// Compose builds the message for a job.
func (s *Sender) Compose(job Job) (*email.Email, error) {
	e := email.NewEmail()
	e.From = fmt.Sprintf("Estatery <%s>", s.cfg.SenderEmail)
	e.To = []string{job.To}

	switch job.Type {
	case JobWelcome:
		e.Subject = "Welcome to Estatery"
		e.Text = []byte(fmt.Sprintf(
			"Hi %s,\n\n"+
				"Your Estatery account is ready. You can now publish properties for sale or rent\n"+
				"and get in touch with landlords about the places you like.\n\n"+
				"See you soon,\nThe Estatery Team", job.Username))
		e.HTML = []byte(fmt.Sprintf(
			"<p>Hi <strong>%s</strong>,</p>"+
				"<p>Your Estatery account is ready. You can now publish properties for sale or rent "+
				"and get in touch with landlords about the places you like.</p>"+
				"<p>See you soon,<br>The Estatery Team</p>", html.EscapeString(job.Username)))
	default:
		return nil, fmt.Errorf("unknown email job type %q", job.Type)
	}

	return e, nil
}

// Deliver composes and sends a job.
func (s *Sender) Deliver(job Job) error {
	e, err := s.Compose(job)
	if err != nil {
		return err
	}

	if err := s.send(e); err != nil {
		util.Log.WithField("to", job.To).WithError(err).Error("failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	util.Log.WithField("to", job.To).WithField("subject", e.Subject).Info("email sent")
	return nil
}

func (s *Sender) sendSMTP(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	return e.Send(addr, auth)
}
