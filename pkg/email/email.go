// Package email, health alert'leri için email gönderim soyutlaması sağlar.
//
// AlertSender interface'i ile gönderim detayları soyutlanır — şu anki
// implementasyon Resend API kullanır. RESEND_API_KEY verilmediğinde
// main.go log-only sender'ı wire eder; monitor kodu farkı bilmez.
package email

import (
	"context"
	"fmt"
	"log"

	"github.com/resend/resend-go/v3"
)

// AlertSender, operatöre kritik fleet olayları için email gönderir.
type AlertSender interface {
	// SendContainerAlert, bir client container'ı restart edilemediğinde
	// operatöre uyarı gönderir.
	SendContainerAlert(ctx context.Context, clientID, containerName, reason string) error
}

// resendSender, Resend API ile gönderen AlertSender implementasyonu.
type resendSender struct {
	client    *resend.Client
	fromEmail string
	toEmail   string
}

// NewResendSender, Resend API client'ı ile AlertSender oluşturur.
// fromEmail, Resend'de doğrulanmış domain altında olmalı.
func NewResendSender(apiKey, fromEmail, toEmail string) AlertSender {
	return &resendSender{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
		toEmail:   toEmail,
	}
}

func (s *resendSender) SendContainerAlert(ctx context.Context, clientID, containerName, reason string) error {
	html := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:24px;background-color:#0f172a;font-family:Arial,Helvetica,sans-serif;">
  <table width="480" cellpadding="0" cellspacing="0" style="background-color:#1e293b;border-radius:8px;padding:32px;">
    <tr>
      <td>
        <h1 style="color:#e2e8f0;font-size:20px;margin:0 0 16px 0;">filo — container alert</h1>
        <p style="color:#f87171;font-size:15px;margin:0 0 16px 0;">
          Container <strong>%s</strong> (client %s) is unhealthy and could not be restarted.
        </p>
        <p style="color:#94a3b8;font-size:14px;line-height:1.5;margin:0;">%s</p>
      </td>
    </tr>
  </table>
</body>
</html>`, containerName, clientID, reason)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("filo <%s>", s.fromEmail),
		To:      []string{s.toEmail},
		Subject: fmt.Sprintf("[filo] container %s needs attention", containerName),
		Html:    html,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send container alert: %w", err)
	}
	return nil
}

// logSender, email yapılandırılmadığında alert'leri log'a düşüren fallback.
type logSender struct{}

// NewLogSender, log-only AlertSender döner.
func NewLogSender() AlertSender {
	return &logSender{}
}

func (s *logSender) SendContainerAlert(_ context.Context, clientID, containerName, reason string) error {
	log.Printf("[alert] container %s (client %s): %s", containerName, clientID, reason)
	return nil
}
