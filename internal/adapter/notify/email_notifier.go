package notify

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/ombhayde/tensorg-payment-system/internal/usecase"
	gomail "gopkg.in/gomail.v2"
)

var bodyTmpl = template.Must(template.New("payment").Parse(`<h1>Payment Notification</h1>
<p>A payment has been successfully processed.</p>
<h3>Details:</h3>
<ul>
    <li><strong>User:</strong> {{.UserEmail}}</li>
    <li><strong>Product:</strong> {{.ProductName}}</li>
    <li><strong>Amount:</strong> ₹{{.Amount}}</li>
    <li><strong>Date:</strong> {{.Date}}</li>
</ul>
`))

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailNotifier sends a fixed-shape message to the configured operator
// address on each recorded order. One attempt per order; the caller treats
// failure as non-fatal.
type EmailNotifier struct {
	sender sender
	from   string
	to     string
}

func NewEmailNotifier(host string, port int, username, password, from, to string) *EmailNotifier {
	return &EmailNotifier{
		sender: gomail.NewDialer(host, port, username, password),
		from:   from,
		to:     to,
	}
}

func (n *EmailNotifier) OrderRecorded(_ context.Context, o usecase.OrderRecord) error {
	var body strings.Builder
	err := bodyTmpl.Execute(&body, map[string]string{
		"UserEmail":   o.UserEmail,
		"ProductName": o.ProductName,
		"Amount":      fmt.Sprintf("%.2f", float64(o.Amount)/100),
		"Date":        o.Date.Format("02 Jan 2006 15:04:05 MST"),
	})
	if err != nil {
		return fmt.Errorf("render notification: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.to)
	m.SetHeader("Subject", fmt.Sprintf("New payment received for %s", o.ProductName))
	m.SetBody("text/html", body.String())

	if err := n.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}

var _ usecase.Notifier = (*EmailNotifier)(nil)
