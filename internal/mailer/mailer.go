package mailer

import (
	"fmt"
	"log"

	"campus-clinic-backend/config"
	"campus-clinic-backend/internal/model"

	gomail "gopkg.in/gomail.v2"
)

// Mailer sends best-effort notification emails. It is disabled unless
// SMTP_HOST is configured; a send failure is logged, never surfaced.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewFromEnv() *Mailer {
	host := config.GetEnv("SMTP_HOST", "")
	if host == "" {
		return &Mailer{}
	}
	return &Mailer{
		dialer: gomail.NewDialer(
			host,
			config.GetEnvAsInt("SMTP_PORT", 587),
			config.GetEnv("SMTP_USER", ""),
			config.GetEnv("SMTP_PASSWORD", ""),
		),
		from: config.GetEnv("SMTP_FROM", "clinic@klh.edu.in"),
	}
}

func (m *Mailer) Enabled() bool {
	return m != nil && m.dialer != nil
}

// NotifyGatePassDecision emails the student after an approve/decline. Callers
// run this in a goroutine so the response is not held up by SMTP.
func (m *Mailer) NotifyGatePassDecision(gp *model.GatePass) {
	if !m.Enabled() || gp.StudentEmail == "" {
		return
	}
	subject := fmt.Sprintf("Gate pass %s", gp.Status)
	body := fmt.Sprintf("Hi %s,\n\nYour gate pass request (reason: %s, time out: %s) is now %s.",
		gp.StudentName, gp.Reason, gp.TimeOut, gp.Status)
	if gp.Status == model.StatusDeclined && gp.DeclineReason != "" {
		body += "\nReason: " + gp.DeclineReason
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", gp.StudentEmail)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		log.Printf("gate pass decision mail to %s failed: %v", gp.StudentEmail, err)
	}
}
