package router

import (
	"github.com/karanshah229/taskapp/internal/application"
	"github.com/karanshah229/taskapp/internal/container"
	repo "github.com/karanshah229/taskapp/internal/domain/repository"
	gcsinfra "github.com/karanshah229/taskapp/internal/infrastructure/gcs"
	pginfra "github.com/karanshah229/taskapp/internal/infrastructure/postgres"
	"github.com/karanshah229/taskapp/internal/infrastructure/queue"
	handlers "github.com/karanshah229/taskapp/internal/interface/http"
	"github.com/karanshah229/taskapp/internal/router/modules"
	"github.com/karanshah229/taskapp/pkg/mailer/templates"
)

type storageDeps struct {
	Users   repo.UserRepository
	Tasks   repo.TaskRepository
	Avatars repo.AvatarStore
	Tx      repo.TxManager
}

func buildStorage() storageDeps {
	cfg := container.GetConfig()

	var deps storageDeps
	if cfg.StorageDriver == "memory" {
		s := container.GetMemoryStore()
		deps = storageDeps{Users: s.Users(), Tasks: s.Tasks(), Avatars: s.Avatars(), Tx: s.TxManager()}
	} else {
		pool := container.GetPGPool()
		deps = storageDeps{
			Users:   pginfra.NewUserRepository(pool),
			Tasks:   pginfra.NewTaskRepository(pool),
			Avatars: pginfra.NewAvatarStore(pool),
			Tx:      pginfra.NewTxManager(pool),
		}
	}
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		deps.Avatars = gcsinfra.NewAvatarStore(gcs, cfg.GCSBucket)
	}
	return deps
}

// Optional collaborators stay nil interfaces when their backend is absent.
func buildNotifier() application.Notifier {
	cfg := container.GetConfig()
	pub := container.GetRabbitPub()
	if pub == nil || !cfg.MailSendEnabled {
		return nil
	}
	return queue.NewEmailNotifier(pub, templates.Brand{
		CompanyName: cfg.CompanyName,
		AppName:     cfg.AppName,
		SupportURL:  cfg.SupportURL,
	})
}

func buildIndexer() application.TaskIndexer {
	if x := container.GetTaskIndex(); x != nil {
		return x
	}
	return nil
}

type AppDeps struct {
	Users       *application.UserService
	Tokens      *application.TokenService
	Tasks       *application.TaskService
	UserHandler *handlers.UserHandler
	TaskHandler *handlers.TaskHandler
}

func BuildApp() AppDeps {
	st := buildStorage()
	logger := container.GetLogger()
	notifier := buildNotifier()
	indexer := buildIndexer()

	users := application.NewUserService(st.Users, st.Tx, st.Avatars, notifier, indexer, logger)
	tokens := application.NewTokenService(st.Users, container.GetJWT(), logger)
	tasks := application.NewTaskService(st.Tasks, indexer, logger)

	return AppDeps{
		Users:       users,
		Tokens:      tokens,
		Tasks:       tasks,
		UserHandler: handlers.NewUserHandler(users, tokens, logger),
		TaskHandler: handlers.NewTaskHandler(tasks, logger),
	}
}

// InitModules wires every feature module from the container and adds it to r.
// Call once during startup, after the container is populated.
func InitModules(r *Registry) {
	app := BuildApp()
	r.Add(modules.NewUserModule(app.UserHandler, app.Tokens))
	r.Add(modules.NewTaskModule(app.TaskHandler, app.Tokens))
	if cfg := container.GetConfig(); cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
