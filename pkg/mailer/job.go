package mailer

import (
	"context"
	"errors"

	"github.com/karanshah229/taskapp/pkg/mailer/templates"
)

var ErrEmptyJob = errors.New("email job has neither template nor subject")

// Deliver renders job (when it names a template) and hands it to s.
func Deliver(ctx context.Context, s Sender, job EmailJob) error {
	if job.To == "" {
		return errors.New("email job has no recipient")
	}
	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		if job.Data == nil {
			job.Data = map[string]any{}
		}
		if _, ok := job.Data["Email"]; !ok {
			job.Data["Email"] = job.To
		}
		var err error
		subject, text, html, err = templates.Render(job.Template, job.Data)
		if err != nil {
			return err
		}
	}
	if subject == "" || (text == "" && html == "") {
		return ErrEmptyJob
	}
	return s.Send(ctx, job.To, subject, text, html)
}
