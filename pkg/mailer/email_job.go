package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// When Template is set the worker renders subject/text/html itself; otherwise
// the raw Subject/Text/HTML fields are sent as-is.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // currently only "welcome"
	Data     map[string]any `json:"data,omitempty"`
}

// NewWelcomeJob builds the job enqueued after a successful registration.
func NewWelcomeJob(name, email string) EmailJob {
	return EmailJob{
		To:       email,
		Template: TemplateWelcome,
		Data: map[string]any{
			"Name":  name,
			"Email": email,
		},
	}
}
