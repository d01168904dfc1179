package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/terraincognita07/coachdesk/internal/client"
	"github.com/terraincognita07/coachdesk/internal/config"
	"github.com/terraincognita07/coachdesk/internal/db"
	"github.com/terraincognita07/coachdesk/internal/logging"
	"github.com/terraincognita07/coachdesk/internal/services"
	"github.com/terraincognita07/coachdesk/internal/session"
	"gorm.io/gorm"
)

var errNotSignedIn = errors.New(`not signed in: run "coachdesk login" first`)

// commandEnv is what every backend-facing command needs: configuration, the
// local credential store and the service facade.
type commandEnv struct {
	cfg      *config.Config
	database *gorm.DB
	store    *db.CredentialRepository
	services *services.Services
	now      func() time.Time
}

func openCommandEnv(options *rootOptions) (*commandEnv, error) {
	cfg, err := config.Load(options.overrides())
	if err != nil {
		return nil, err
	}
	logging.Configure(cfg.LogLevel, cfg.LogFormat)

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}
	backend, err := client.New(client.Config{
		BaseURL:        cfg.BackendURL,
		Timeout:        cfg.RequestTimeout,
		UserAgent:      "coachdesk-cli/" + Version,
		OnUnauthorized: session.InvalidateFromContext,
	})
	if err != nil {
		_ = db.Close(database)
		return nil, err
	}

	return &commandEnv{
		cfg:      cfg,
		database: database,
		store:    db.NewCredentialRepository(database, cfg.BackendURL),
		services: services.NewServices(backend),
		now:      time.Now,
	}, nil
}

func (env *commandEnv) Close() {
	_ = db.Close(env.database)
}

// authenticate runs the session guard against the stored credential. The
// returned context carries a Provider; a 401 from any later call clears the
// stored credential and tells the user once.
func (env *commandEnv) authenticate(ctx context.Context, stderr io.Writer) (context.Context, session.Session, error) {
	notifier := session.NotifierFunc(func(notification session.Notification) {
		fmt.Fprintln(stderr, notification.Message)
	})
	current, err := session.NewGuard(env.store, notifier).WithClock(env.now).Check(ctx)
	if errors.Is(err, session.ErrRedirectToLogin) {
		return ctx, current, errNotSignedIn
	}
	if err != nil {
		return ctx, current, err
	}

	provider := session.NewProvider(current)
	provider.Subscribe(func(next session.Session) {
		if next.IsAuthenticated() {
			return
		}
		_ = env.store.Clear(context.WithoutCancel(ctx))
		fmt.Fprintln(stderr, session.MessageSessionExpired)
	})
	return session.WithProvider(ctx, provider), current, nil
}

// withAuthenticatedEnv opens the environment, guards the session and runs fn.
func withAuthenticatedEnv(ctx context.Context, options *rootOptions, stderr io.Writer, fn func(ctx context.Context, env *commandEnv, current session.Session) error) error {
	env, err := openCommandEnv(options)
	if err != nil {
		return err
	}
	defer env.Close()

	ctx, current, err := env.authenticate(ctx, stderr)
	if err != nil {
		return err
	}
	err = fn(ctx, env, current)
	if client.KindOf(err) == client.KindUnauthorized {
		return errNotSignedIn
	}
	return err
}
