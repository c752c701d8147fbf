package mail

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/resend/resend-go/v2"
)

// ResendMailer sends the customer confirmation and the operator alert
// through the Resend transactional email API.
type ResendMailer struct {
	client   *resend.Client
	from     string
	operator string
}

func NewResendMailer(apiKey, from, operator string) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey), from: from, operator: operator}
}

var customerTmpl = template.Must(template.New("customer").Parse(`
<div>
  <h1>Thank you, {{.CustomerName}}!</h1>
  <p>Your order was recorded successfully.</p>
  <h3>Summary (#{{.ShortID}})</h3>
  <ul>
  {{- range .Items}}
    <li><strong>{{.Name}}</strong> &mdash; qty {{.Qty}} x {{printf "%.2f" .UnitPrice}}&euro;</li>
  {{- end}}
  </ul>
  <p><strong>Total: {{printf "%.2f" .Total}}&euro;</strong></p>
  <p><strong>Shipping address:</strong><br/>{{.Address}}</p>
  <p>One of our agents will contact you shortly to confirm the order and
  provide payment details.</p>
  <p>Keep this tracking code: <code>{{.OrderID}}</code></p>
</div>`))

var operatorTmpl = template.Must(template.New("operator").Parse(`
<div>
  <h2>New order #{{.ShortID}}</h2>
  <p><strong>Customer:</strong> {{.CustomerName}} ({{.CustomerEmail}})</p>
  <p><strong>Address:</strong> {{.Address}}</p>
  <p><strong>Total to invoice:</strong> {{printf "%.2f" .Total}}&euro;</p>
  <h3>Items</h3>
  <ul>
  {{- range .Items}}
    <li>{{.Name}} &mdash; qty {{.Qty}} x {{printf "%.2f" .UnitPrice}}&euro;</li>
  {{- end}}
  </ul>
  <p>Action needed: contact the customer to arrange payment.</p>
</div>`))

type mailData struct {
	OrderEmail
	ShortID string
}

// SendOrderEmails produces both outbound messages. The operator alert is
// the one that matters operationally, so its error wins if both fail.
func (m *ResendMailer) SendOrderEmails(o OrderEmail) error {
	data := mailData{OrderEmail: o, ShortID: shortID(o.OrderID)}

	var custErr error
	if body, err := renderTmpl(customerTmpl, data); err != nil {
		custErr = err
	} else {
		_, custErr = m.client.Emails.Send(&resend.SendEmailRequest{
			From:    m.from,
			To:      []string{o.CustomerEmail},
			Subject: fmt.Sprintf("Order received #%s", data.ShortID),
			Html:    body,
		})
	}

	body, err := renderTmpl(operatorTmpl, data)
	if err != nil {
		return err
	}
	if _, err := m.client.Emails.Send(&resend.SendEmailRequest{
		From:    m.from,
		To:      []string{m.operator},
		Subject: fmt.Sprintf("NEW SALE: %.2f EUR (%s)", o.Total, o.CustomerName),
		Html:    body,
	}); err != nil {
		return err
	}
	return custErr
}

func renderTmpl(t *template.Template, data mailData) (string, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
