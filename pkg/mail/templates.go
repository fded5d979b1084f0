package mail

import (
	"bytes"
	"fmt"
	"html/template"
)

const brand = "Crystal Ices"

var verificationTmpl = template.Must(template.New("verification").Parse(`
<div style="width: 100%; max-width: 600px; margin: auto; font-family: sans-serif; border: 1px solid #e2e8f0; border-radius: 20px; overflow: hidden;">
  <div style="background-color: #0B2A4A; padding: 40px; text-align: center;">
    <h1 style="color: #ffffff; margin: 0;">{{.Brand}}</h1>
  </div>
  <div style="padding: 40px; color: #1e293b; text-align: center;">
    <h2 style="margin-bottom: 20px;">Confirm your email address</h2>
    <p style="color: #64748b; line-height: 1.6;">Thank you for registering. Please click the button below to verify your account.</p>
    <div style="margin: 30px 0;">
      <a href="{{.Link}}" style="background-color: #0B2A4A; color: #ffffff; padding: 15px 30px; text-decoration: none; border-radius: 10px; font-weight: bold; display: inline-block;">Verify My Account</a>
    </div>
    <p style="font-size: 12px; color: #94a3b8;">This link expires in {{.ExpiresIn}}.</p>
  </div>
</div>`))

var inquiryReceiptTmpl = template.Must(template.New("inquiry").Parse(
	`<h3>Hello {{.Name}},</h3><p>We have received your request{{if .Service}} for <b>{{.Service}}</b>{{end}}. Our team will contact you shortly.</p>`))

// VerificationMessage renders the account verification email.
func VerificationMessage(to, link, expiresIn string) (Message, error) {
	var buf bytes.Buffer
	err := verificationTmpl.Execute(&buf, struct {
		Brand, Link, ExpiresIn string
	}{brand, link, expiresIn})
	if err != nil {
		return Message{}, fmt.Errorf("render verification email: %w", err)
	}
	return Message{
		To:      []string{to},
		Subject: "Verify Your Account - " + brand,
		HTML:    buf.String(),
	}, nil
}

// InquiryReceiptMessage renders the acknowledgement sent after an inquiry is filed.
func InquiryReceiptMessage(to, fullName, service string) (Message, error) {
	var buf bytes.Buffer
	err := inquiryReceiptTmpl.Execute(&buf, struct {
		Name, Service string
	}{fullName, service})
	if err != nil {
		return Message{}, fmt.Errorf("render inquiry receipt: %w", err)
	}
	return Message{
		To:      []string{to},
		Subject: "Inquiry Received - " + brand,
		HTML:    buf.String(),
	}, nil
}
