package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// ReminderInvoice is one open invoice listed in a payment reminder
type ReminderInvoice struct {
	Number      string
	DueDate     string
	TotalAmount float64
	OverdueDays int
}

// ReminderData is the payload of a payment reminder email
type ReminderData struct {
	MemberName string
	Invoices   []ReminderInvoice
	TotalDue   float64
	ClubName   string
}

// SendPaymentReminder sends a soci-morosi payment reminder listing the
// member's open invoices
func (s *EmailService) SendPaymentReminder(toEmail string, data ReminderData) error {
	if data.ClubName == "" {
		data.ClubName = "UMAMI ASD"
	}

	htmlContent, err := s.renderPaymentReminder(data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Sollecito di pagamento - %s", data.ClubName)
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

// renderPaymentReminder renders the payment reminder email template
func (s *EmailService) renderPaymentReminder(data ReminderData) (string, error) {
	tmpl, err := template.New("payment_reminder").Parse(paymentReminderTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// paymentReminderTemplate is the HTML template for payment reminder emails
const paymentReminderTemplate = `
<!DOCTYPE html>
<html lang="it">
<head>
    <meta charset="UTF-8">
    <title>Sollecito di pagamento</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="width: 100%; border-collapse: collapse;">
        <tr>
            <td style="padding: 40px 0;">
                <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; overflow: hidden;">
                    <tr>
                        <td style="background-color: #1a3c6e; padding: 30px; text-align: center;">
                            <h1 style="color: #ffffff; margin: 0; font-size: 24px;">{{.ClubName}}</h1>
                        </td>
                    </tr>
                    <tr>
                        <td style="padding: 30px;">
                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6;">
                                Gentile <strong>{{.MemberName}}</strong>,
                            </p>
                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6;">
                                dalle nostre registrazioni risultano le seguenti fatture non ancora saldate:
                            </p>
                            <table style="width: 100%; border-collapse: collapse; margin: 20px 0;">
                                <tr style="background-color: #f8fafc;">
                                    <th style="text-align: left; padding: 8px; border-bottom: 1px solid #e2e8f0;">Fattura</th>
                                    <th style="text-align: left; padding: 8px; border-bottom: 1px solid #e2e8f0;">Scadenza</th>
                                    <th style="text-align: right; padding: 8px; border-bottom: 1px solid #e2e8f0;">Importo</th>
                                </tr>
                                {{range .Invoices}}
                                <tr>
                                    <td style="padding: 8px; border-bottom: 1px solid #e2e8f0;">{{.Number}}</td>
                                    <td style="padding: 8px; border-bottom: 1px solid #e2e8f0;">{{.DueDate}}</td>
                                    <td style="text-align: right; padding: 8px; border-bottom: 1px solid #e2e8f0;">&euro; {{printf "%.2f" .TotalAmount}}</td>
                                </tr>
                                {{end}}
                            </table>
                            <p style="color: #1a3c6e; font-size: 18px; font-weight: 600;">
                                Totale dovuto: &euro; {{printf "%.2f" .TotalDue}}
                            </p>
                            <p style="color: #718096; font-size: 14px; line-height: 1.6;">
                                La preghiamo di regolarizzare la posizione presso la segreteria.
                                Se il pagamento &egrave; gi&agrave; stato effettuato, ignori questa comunicazione.
                            </p>
                        </td>
                    </tr>
                    <tr>
                        <td style="background-color: #f8fafc; padding: 20px; text-align: center; border-top: 1px solid #e2e8f0;">
                            <p style="color: #a0aec0; font-size: 12px; margin: 0;">
                                Questa email &egrave; stata inviata dalla segreteria di {{.ClubName}}.
                            </p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`
