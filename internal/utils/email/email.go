package email

import (
	"fmt"
	"html"
	"net/smtp"
	"strings"

	"github.com/Dan9191/advisory-service/internal/config"
	"github.com/Dan9191/advisory-service/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

const fromName = "Hanvitt Advisors"

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email) error
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	s := &Sender{
		cfg:    cfg,
		logger: logger,
	}
	s.send = s.sendSMTP
	return s
}

func (s *Sender) sendSMTP(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	return e.Send(addr, auth)
}

func (s *Sender) newEmail(subject string) *email.Email {
	e := email.NewEmail()
	e.From = fmt.Sprintf("%s <%s>", fromName, s.cfg.SenderEmail)
	e.To = []string{s.cfg.NotifyEmail}
	e.Subject = subject
	return e
}

// SendContactNotification tells the advisory desk about a new consultation request
func (s *Sender) SendContactNotification(req *models.ContactRequest) error {
	e := s.newEmail(fmt.Sprintf("New Consultation Request from %s", req.Name))
	if req.Email != "" {
		e.ReplyTo = []string{req.Email}
	}

	phone := req.Phone
	if phone == "" {
		phone = "N/A"
	}
	e.Text = []byte(fmt.Sprintf(
		"Name: %s\nEmail: %s\nPhone: %s\nMessage: %s\n",
		req.Name, req.Email, phone, req.Message,
	))
	e.HTML = []byte(fmt.Sprintf(
		"<h3>New Consultation Request</h3>"+
			"<p><strong>Name:</strong> %s</p>"+
			"<p><strong>Email:</strong> %s</p>"+
			"<p><strong>Phone:</strong> %s</p>"+
			"<p><strong>Message:</strong> %s</p>",
		html.EscapeString(req.Name), html.EscapeString(req.Email), html.EscapeString(phone), html.EscapeString(req.Message),
	))

	if err := s.send(e); err != nil {
		s.logger.Errorf("Failed to send contact notification for request %d: %v", req.ID, err)
		return fmt.Errorf("failed to send contact notification: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", s.cfg.NotifyEmail, e.Subject)
	return nil
}

// SendUnreadDigest mails one summary of every unread request
func (s *Sender) SendUnreadDigest(reqs []models.ContactRequest) error {
	if len(reqs) == 0 {
		return nil
	}
	e := s.newEmail(fmt.Sprintf("%d Unread Consultation Request(s)", len(reqs)))

	var body strings.Builder
	body.WriteString("The following consultation requests have not been read yet:\n\n")
	for _, r := range reqs {
		fmt.Fprintf(&body, "#%d  %s  %s <%s>\n", r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Name, r.Email)
		if r.Phone != "" {
			fmt.Fprintf(&body, "    Phone: %s\n", r.Phone)
		}
		fmt.Fprintf(&body, "    %s\n\n", r.Message)
	}
	body.WriteString("Best regards,\nAdvisory Service")
	e.Text = []byte(body.String())

	if err := s.send(e); err != nil {
		s.logger.Errorf("Failed to send unread digest to %s: %v", s.cfg.NotifyEmail, err)
		return fmt.Errorf("failed to send unread digest: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", s.cfg.NotifyEmail, e.Subject)
	return nil
}
