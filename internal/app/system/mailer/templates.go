// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"html/template"
	"strconv"
)

// LoginCodeEmailData contains the data for an OTP login email.
type LoginCodeEmailData struct {
	ConferenceName string // Display name of the conference the account belongs to
	Code           string // Six digit one-time code
	ExpiryMin      int    // Minutes until the code expires
}

var loginCodeHTML = template.Must(template.New("login_code").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>{{.ConferenceName}} admin login</h2>
  <p>Your one-time login code is:</p>
  <p style="font-size: 28px; font-weight: bold; letter-spacing: 6px;">{{.Code}}</p>
  <p>The code expires in {{.ExpiryMin}} minutes and can be used once.</p>
  <p>If you did not request this code, you can safely ignore this email.</p>
</body>
</html>`))

// LoginCodeEmail generates both plain text and HTML versions of the OTP
// login email.
func LoginCodeEmail(data LoginCodeEmailData) (textBody, htmlBody string) {
	textBody = "Your one-time login code for the " + data.ConferenceName + " admin dashboard is:\n\n" +
		data.Code + "\n\n" +
		"The code expires in " + strconv.Itoa(data.ExpiryMin) + " minutes and can be used once.\n\n" +
		"If you did not request this code, you can safely ignore this email."

	var buf bytes.Buffer
	loginCodeHTML.Execute(&buf, data)
	htmlBody = buf.String()

	return textBody, htmlBody
}
