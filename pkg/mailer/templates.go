package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

const TemplateWelcome = "welcome"

var welcomeHTML = template.Must(template.New(TemplateWelcome).Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Bienvenido, {{.Name}}</h2>
    <p>Tu registro fue exitoso. Ya puedes iniciar sesión con tu número de documento.</p>
    <p style="color:#777;font-size:12px">Este mensaje fue enviado a {{.Email}}.</p>
  </body>
</html>`))

// Render produces subject, text and html bodies for a templated job.
func Render(job EmailJob) (subject, text, html string, err error) {
	switch job.Template {
	case TemplateWelcome:
		var buf bytes.Buffer
		if err := welcomeHTML.Execute(&buf, job.Data); err != nil {
			return "", "", "", err
		}
		return "Registro exitoso",
			fmt.Sprintf("Bienvenido, %v. Tu registro fue exitoso.", job.Data["Name"]),
			buf.String(), nil
	default:
		return "", "", "", fmt.Errorf("unknown template %q", job.Template)
	}
}
