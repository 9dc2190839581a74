package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karanshah229/taskapp/pkg/mailer/templates"
)

type sent struct {
	to, subject, text, html string
}

type fakeSender struct {
	got []sent
	err error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	f.got = append(f.got, sent{to, subject, text, html})
	return f.err
}

func TestDeliver_Template(t *testing.T) {
	s := &fakeSender{}
	job := EmailJob{
		To:       "ada@example.com",
		Template: templates.Welcome,
		Data:     templates.ToMap(templates.NewEmailData(templates.Welcome, "Ada", "ada@example.com", templates.Brand{CompanyName: "Task App"})),
	}
	require.NoError(t, Deliver(context.Background(), s, job))
	require.Len(t, s.got, 1)
	assert.Equal(t, "ada@example.com", s.got[0].to)
	assert.Contains(t, s.got[0].subject, "Task App")
	assert.Contains(t, s.got[0].text, "Ada")
	assert.Contains(t, s.got[0].html, "Ada")
}

func TestDeliver_Raw(t *testing.T) {
	s := &fakeSender{}
	require.NoError(t, Deliver(context.Background(), s, EmailJob{To: "a@b.co", Subject: "hi", Text: "body"}))
	assert.Equal(t, "hi", s.got[0].subject)
}

func TestDeliver_Errors(t *testing.T) {
	s := &fakeSender{}
	assert.Error(t, Deliver(context.Background(), s, EmailJob{Subject: "x", Text: "y"}))
	assert.ErrorIs(t, Deliver(context.Background(), s, EmailJob{To: "a@b.co"}), ErrEmptyJob)
	assert.Error(t, Deliver(context.Background(), s, EmailJob{To: "a@b.co", Template: "nope"}))

	s.err = errors.New("mailgun down")
	assert.EqualError(t, Deliver(context.Background(), s, EmailJob{To: "a@b.co", Subject: "x", Text: "y"}), "mailgun down")
}
