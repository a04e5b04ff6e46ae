package email

import (
	"context"
	"fmt"
	"net/smtp"
)

// RecoveryEmail carries everything the password-recovery message
// needs. Link is absolute; the mailer does not know the public URL.
type RecoveryEmail struct {
	To           string
	Link         string
	ValidMinutes int
}

// Mailer sends transactional mail. The only message the system sends
// today is the password-recovery link.
type Mailer interface {
	SendRecoveryEmail(ctx context.Context, msg RecoveryEmail) error
}

type smtpMailer struct {
	addr string
	from string
}

// NewSMTPMailer talks plain SMTP without auth, which is what the local
// relay (mailhog in development) expects.
func NewSMTPMailer(host, port, from string) Mailer {
	return &smtpMailer{addr: host + ":" + port, from: from}
}

func (m *smtpMailer) SendRecoveryEmail(ctx context.Context, msg RecoveryEmail) error {
	subject := "Recuperação de senha - Biblioteca Virtual"
	body := fmt.Sprintf(`Olá,

Recebemos um pedido de recuperação de senha para a sua conta.
Acesse o link abaixo para definir uma nova senha:

%s

O link é válido por %d minutos. Se você não solicitou a recuperação,
ignore este email.`, msg.Link, msg.ValidMinutes)

	raw := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		m.from, msg.To, subject, body))

	if err := smtp.SendMail(m.addr, nil, m.from, []string{msg.To}, raw); err != nil {
		return fmt.Errorf("send recovery email: %w", err)
	}
	return nil
}
