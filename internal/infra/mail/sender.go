package mail

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"
)

//go:embed templates/outreach.html
var outreachTemplate string

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

func (s *EmailSender) SendOutreach(to, businessName, industry, contactName string, fundingAmount float64) error {
	if contactName == "" {
		contactName = "there"
	}
	if industry == "" {
		industry = "business"
	}

	data := OutreachEmailData{
		BusinessName:  businessName,
		Industry:      industry,
		FundingAmount: fundingAmount,
		ContactName:   contactName,
	}

	t, err := template.New("outreach").Parse(outreachTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse outreach template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render outreach template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Funding opportunity for %s", businessName))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send outreach email: %w", err)
	}

	return nil
}
