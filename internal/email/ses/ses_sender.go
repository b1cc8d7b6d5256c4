package ses

import (
	"context"
	"fmt"
	"html"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"storefront/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed InvoiceMailer.
func NewSESSender(region, fromAddress, fromName string) (port.InvoiceMailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendInvoiceEmail(ctx context.Context, msg port.InvoiceEmail) error {
	subject := Subject(s.fromName, msg.InvoiceNumber)
	htmlBody := BuildInvoiceHTML(s.fromName, msg)
	textBody := BuildInvoiceText(s.fromName, msg)
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	input := &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{msg.ToEmail},
		},
	}

	if msg.Attachment != nil {
		raw, err := BuildRawMessage(from, msg.ToEmail, subject, textBody, htmlBody, msg.Attachment)
		if err != nil {
			return fmt.Errorf("SES raw message: %w", err)
		}
		input.Content = &types.EmailContent{Raw: &types.RawMessage{Data: raw}}
	} else {
		input.Content = &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		}
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

// Subject is the invoice mail subject line.
func Subject(brand, invoiceNumber string) string {
	return fmt.Sprintf("Your %s invoice %s", brand, invoiceNumber)
}

// BuildInvoiceText renders the plain-text body.
func BuildInvoiceText(brand string, msg port.InvoiceEmail) string {
	body := fmt.Sprintf("Hi %s,\n\nThank you for shopping with %s. Your tax invoice %s for %s is ready.\n",
		greetingName(msg.ToName), brand, msg.InvoiceNumber, msg.GrandTotal)
	if msg.DownloadURL != "" {
		body += fmt.Sprintf("\nDownload it here:\n%s\n\nThis link expires in a few days.\n", msg.DownloadURL)
	}
	if msg.Attachment != nil {
		body += "\nA copy is attached to this email.\n"
	}
	return body + fmt.Sprintf("\n%s Team", brand)
}

// BuildInvoiceHTML renders the HTML body.
func BuildInvoiceHTML(brand string, msg port.InvoiceEmail) string {
	link := ""
	if msg.DownloadURL != "" {
		u := html.EscapeString(msg.DownloadURL)
		link = fmt.Sprintf(`  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Download Invoice</a>
  </p>
  <p style="word-break: break-all; color: #666;">%s</p>
`, u, u)
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Your invoice is ready</h2>
  <p>Hi %s,</p>
  <p>Thank you for shopping with %s. Your tax invoice <strong>%s</strong> for <strong>%s</strong> is ready.</p>
%s  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">%s</p>
</body>
</html>`,
		html.EscapeString(greetingName(msg.ToName)), html.EscapeString(brand),
		html.EscapeString(msg.InvoiceNumber), html.EscapeString(msg.GrandTotal),
		link, html.EscapeString(brand))
}

func greetingName(name string) string {
	if name == "" {
		return "there"
	}
	return name
}
