package queue

import (
	"context"
	"time"

	"github.com/karanshah229/taskapp/internal/domain/entity"
	"github.com/karanshah229/taskapp/pkg/mailer"
	"github.com/karanshah229/taskapp/pkg/mailer/templates"
)

// Publisher is the part of helpers.RabbitPublisher the notifier needs.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// EmailNotifier turns account lifecycle events into email jobs for the worker.
type EmailNotifier struct {
	pub   Publisher
	brand templates.Brand
	now   func() time.Time
}

func NewEmailNotifier(pub Publisher, brand templates.Brand) *EmailNotifier {
	return &EmailNotifier{pub: pub, brand: brand, now: time.Now}
}

func (n *EmailNotifier) Welcome(ctx context.Context, u *entity.User) error {
	return n.publish(ctx, templates.Welcome, u)
}

func (n *EmailNotifier) Farewell(ctx context.Context, u *entity.User) error {
	return n.publish(ctx, templates.Farewell, u)
}

func (n *EmailNotifier) publish(ctx context.Context, tmpl string, u *entity.User) error {
	data := templates.NewEmailData(tmpl, u.Name, u.Email, n.brand, templates.WithTime(n.now()))
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return n.pub.PublishJSON(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: tmpl,
		Data:     templates.ToMap(data),
	})
}
