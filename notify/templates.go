package notify

import (
	"bytes"
	"fmt"
	"html/template"
)

// ReservationAdvance is the deposit quoted in reservation confirmations.
const ReservationAdvance = 100.0

const contactPhone = "+91 99866 45103"

var emailFuncs = template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("₹%.2f", v) },
	"lineTotal": func(l LineNotice) string {
		return fmt.Sprintf("₹%.2f", l.Price*float64(l.Quantity))
	},
}

var orderEmailTmpl = template.Must(template.New("order").Funcs(emailFuncs).Parse(`<!DOCTYPE html>
<html>
<head>
  <style>
    body { font-family: Arial, sans-serif; color: #333; }
    .container { max-width: 500px; margin: 0 auto; padding: 20px; background: #f9f9f9; border-radius: 8px; }
    .header { background: #c0392b; color: #fff; padding: 20px; border-radius: 8px 8px 0 0; text-align: center; }
    .header h2 { margin: 0; }
    .content { background: #fff; padding: 20px; border-radius: 0 0 8px 8px; }
    .info-label { font-weight: bold; color: #555; }
    table { width: 100%; border-collapse: collapse; margin: 16px 0; }
    td { padding: 8px; border-bottom: 1px solid #eee; }
    .total-row { background: #f0f0f0; font-size: 1.1em; font-weight: bold; }
    .footer { margin-top: 20px; color: #999; font-size: 0.9em; text-align: center; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header"><h2>Order Confirmed!</h2></div>
    <div class="content">
      <p>Hi {{.CustomerName}},</p>
      <p>Thank you for your order! Your delicious meal is being prepared.</p>
      <p><span class="info-label">Order ID:</span> #{{.OrderID}}</p>
      <h3>Order Details:</h3>
      <table>
        <thead>
          <tr style="background:#f0f0f0;font-weight:bold">
            <td>Item</td><td style="text-align:center">Qty</td><td style="text-align:right">Price</td><td style="text-align:right">Total</td>
          </tr>
        </thead>
        <tbody>
          {{- range .Items}}
          <tr>
            <td>{{.Name}}</td>
            <td style="text-align:center">&times;{{.Quantity}}</td>
            <td style="text-align:right">{{money .Price}}</td>
            <td style="text-align:right;font-weight:bold">{{lineTotal .}}</td>
          </tr>
          {{- end}}
          <tr class="total-row">
            <td colspan="3" style="text-align:right">Grand Total:</td>
            <td style="text-align:right">{{money .Total}}</td>
          </tr>
        </tbody>
      </table>
      <p style="color:#666">Your order will be ready shortly. If you have any questions, please contact us at <strong>{{.Contact}}</strong>.</p>
      <div class="footer"><p>Thank you for choosing La Bella!</p></div>
    </div>
  </div>
</body>
</html>
`))

var reservationEmailTmpl = template.Must(template.New("reservation").Funcs(emailFuncs).Parse(`<h2>Reservation Confirmed!</h2>
<p>Hi {{.Name}},</p>
<p>Your table reservation has been confirmed.</p>
<p><strong>Reservation ID:</strong> {{.ReservationID}}</p>
<p><strong>Date:</strong> {{.Date}}</p>
<p><strong>Time:</strong> {{.Time}}</p>
<p><strong>Party Size:</strong> {{.PartySize}} people</p>
<p><strong>Advance Payment:</strong> {{money .Advance}} (confirmed)</p>
<p>We look forward to welcoming you! If you have any questions, please contact us at <strong>{{.Contact}}</strong>.</p>
`))

func renderOrderEmail(o OrderNotice) (subject, html string, err error) {
	name := o.CustomerName
	if name == "" {
		name = "Customer"
	}
	var buf bytes.Buffer
	err = orderEmailTmpl.Execute(&buf, struct {
		OrderNotice
		CustomerName string
		Contact      string
	}{OrderNotice: o, CustomerName: name, Contact: contactPhone})
	if err != nil {
		return "", "", fmt.Errorf("render order email: %w", err)
	}
	return fmt.Sprintf("Order Confirmation #%d", o.OrderID), buf.String(), nil
}

func renderReservationEmail(r ReservationNotice) (subject, html string, err error) {
	var buf bytes.Buffer
	err = reservationEmailTmpl.Execute(&buf, struct {
		ReservationNotice
		Advance float64
		Contact string
	}{ReservationNotice: r, Advance: ReservationAdvance, Contact: contactPhone})
	if err != nil {
		return "", "", fmt.Errorf("render reservation email: %w", err)
	}
	return fmt.Sprintf("Reservation Confirmation #%d", r.ReservationID), buf.String(), nil
}
