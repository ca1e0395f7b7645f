package email

import (
	"bytes"
	"context"
	"html/template"
	"log"
)

// ConfirmationSubject is the subject of the payment confirmation email
const ConfirmationSubject = "Вы записаны на интенсив — Cursor для менеджеров"

// Sender delivers a single HTML email
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

var confirmationTpl = template.Must(template.New("confirmation").Parse(`
<p>Здравствуйте{{if .Name}}, {{.Name}}{{end}}!</p>
<p>Оплата прошла успешно. Вы записаны на интенсив по Cursor для менеджеров.</p>
{{if .ChatLink}}<p>Ссылка на чат интенсива в Telegram: <a href="{{.ChatLink}}">{{.ChatLink}}</a></p>
{{end}}<p>До встречи на интенсиве!</p>
`))

// RenderConfirmationEmail builds the confirmation body; the chat paragraph is
// omitted when no invite link is configured
func RenderConfirmationEmail(name, chatLink string) string {
	var buf bytes.Buffer
	_ = confirmationTpl.Execute(&buf, map[string]any{
		"Name":     name,
		"ChatLink": chatLink,
	})
	return buf.String()
}

// Fallback logger sender (useful for dev without a mail provider)
type LogSender struct{}

func (LogSender) Send(_ context.Context, to, subject, htmlBody string) error {
	log.Printf("[Email] to=%s subject=%q bytes=%d", to, subject, len(htmlBody))
	return nil
}
