package libs

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

type EmailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(host string, port int, user, pass, from string) (*EmailService, error) {
	if host == "" || user == "" || pass == "" {
		return nil, errors.New("SMTP configuration missing")
	}
	if from == "" {
		from = user
	}
	return &EmailService{
		dialer: gomail.NewDialer(host, port, user, pass),
		from:   from,
	}, nil
}

type InvoiceLine struct {
	Title    string
	Quantity int
	Subtotal int64
}

func (s *EmailService) SendInvoiceEmail(toEmail, invoiceID string, total int64, lines []InvoiceLine) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Invoice %s - Travel Booking", invoiceID))
	m.SetBody("text/html", invoiceBody(invoiceID, total, lines))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func invoiceBody(invoiceID string, total int64, lines []InvoiceLine) string {
	var rows strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&rows, "<tr><td>%s</td><td>%d</td><td>IDR %s</td></tr>", l.Title, l.Quantity, FormatRupiah(l.Subtotal))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
    <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px;">
        <h2 style="color: #333;">Thank you for your booking!</h2>
        <p><strong>Invoice:</strong> %s</p>
        <table style="width: 100%%; border-collapse: collapse;">
            <tr><th align="left">Activity</th><th align="left">Qty</th><th align="left">Subtotal</th></tr>
            %s
        </table>
        <p><strong>Total Amount:</strong> IDR %s</p>
        <p>Please upload your proof of payment before the invoice expires.</p>
    </div>
</body>
</html>
`, invoiceID, rows.String(), FormatRupiah(total))
}

// FormatRupiah groups thousands with dots, e.g. 1500000 -> "1.500.000".
func FormatRupiah(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	str := fmt.Sprintf("%d", amount)
	n := len(str)
	if n <= 3 {
		return sign + str
	}

	var b strings.Builder
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}
	return sign + b.String()
}
