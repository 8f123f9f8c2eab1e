package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	texttemplate "text/template"
)

const ConfirmationSubject = "Welcome to Super Mega!"

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<head>
  <style>
    body { font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 20px; }
    .container { max-width: 600px; margin: 0 auto; background-color: white; border-radius: 10px; padding: 30px; }
    .logo { font-size: 24px; font-weight: bold; color: #8B5CF6; }
    .cta-button { display: inline-block; background: linear-gradient(135deg, #8B5CF6, #EC4899);
                  color: white; padding: 12px 24px; text-decoration: none; border-radius: 8px;
                  font-weight: bold; margin: 20px 0; }
    .footer { margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee;
              text-align: center; font-size: 12px; color: #666; }
  </style>
</head>
<body>
  <div class="container">
    <div class="logo">🚀 SUPER MEGA</div>
    <h1>Welcome to the Future of AI Automation!</h1>
    <p>Hi {{.Name}},</p>
    <p>Thank you for reaching out to Super Mega! We're excited to help you revolutionize your business with our AI agent platform.</p>
    <p><strong>What happens next?</strong></p>
    <ul>
      <li>Our team will review your requirements within 24 hours</li>
      <li>We'll send you a customized proposal based on your needs</li>
      <li>Schedule a strategy call to discuss implementation</li>
      <li>Get started with your AI agents immediately</li>
    </ul>
    <a href="https://supermega.dev" class="cta-button">Explore Platform</a>
    <p>Need immediate assistance? Reply to this email or reach us at <a href="mailto:contact@supermega.dev">contact@supermega.dev</a></p>
    <p>Best regards,<br><strong>The Super Mega Team</strong></p>
    <div class="footer">
      <p>Super Mega AI Platform | Autonomous AI Agents for Business Automation</p>
    </div>
  </div>
</body>
</html>
`))

const CalendarLinkSubject = "Schedule your Super Mega strategy call"

var calendarLinkTmpl = texttemplate.Must(texttemplate.New("calendar-link").Parse(`Hi {{.Name}},

Thanks for requesting a strategy call!

Click here to schedule your 30-minute consultation:
{{.BookingURL}}

Available times:
- Monday-Friday, 9 AM - 6 PM PST
- Custom times available for international clients

See you soon!
Super Mega Team
`))

// RenderConfirmation builds the HTML confirmation mail body.
func RenderConfirmation(name string) (string, error) {
	var buf bytes.Buffer
	if err := confirmationTmpl.Execute(&buf, struct{ Name string }{Name: name}); err != nil {
		return "", fmt.Errorf("render confirmation template: %w", err)
	}
	return buf.String(), nil
}

// RenderCalendarLink builds the plain-text booking-link mail body.
func RenderCalendarLink(name, bookingURL string) (string, error) {
	var buf bytes.Buffer
	err := calendarLinkTmpl.Execute(&buf, struct{ Name, BookingURL string }{Name: name, BookingURL: bookingURL})
	if err != nil {
		return "", fmt.Errorf("render calendar-link template: %w", err)
	}
	return buf.String(), nil
}
