package notify

import (
	"bytes"
	"html/template"
	"time"
)

const phoneNotProvided = "Not provided"

var contactTemplate = template.Must(template.New("contact").Parse(`
<html>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <h2 style="color: #ff5722;">New Contact Form Submission</h2>
    <table style="width: 100%; border-collapse: collapse;">
      <tr>
        <td style="padding: 10px; background-color: #f5f5f5; font-weight: bold; width: 120px;">Name:</td>
        <td style="padding: 10px;">{{.Name}}</td>
      </tr>
      <tr>
        <td style="padding: 10px; background-color: #f5f5f5; font-weight: bold;">Email:</td>
        <td style="padding: 10px;"><a href="mailto:{{.Email}}">{{.Email}}</a></td>
      </tr>
      <tr>
        <td style="padding: 10px; background-color: #f5f5f5; font-weight: bold;">Phone:</td>
        <td style="padding: 10px;">{{.Phone}}</td>
      </tr>
      <tr>
        <td style="padding: 10px; background-color: #f5f5f5; font-weight: bold; vertical-align: top;">Message:</td>
        <td style="padding: 10px;">{{.Message}}</td>
      </tr>
    </table>
    <p style="margin-top: 20px; color: #666; font-size: 12px;">
      Submitted at: {{.SubmittedAt}}
    </p>
  </body>
</html>
`))

type templateData struct {
	Name        string
	Email       string
	Phone       string
	Message     string
	SubmittedAt string
}

// renderContactHTML builds the notification body. All fields are HTML-escaped.
func renderContactHTML(p ContactPayload) (string, error) {
	phone := phoneNotProvided
	if p.Phone != nil && *p.Phone != "" {
		phone = *p.Phone
	}
	var buf bytes.Buffer
	err := contactTemplate.Execute(&buf, templateData{
		Name:        p.Name,
		Email:       p.Email,
		Phone:       phone,
		Message:     p.Message,
		SubmittedAt: p.SubmittedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
