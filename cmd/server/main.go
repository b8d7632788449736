package main

import (
	"context"
	"database/sql"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-persistence-bun"
	"github.com/goliatone/go-router"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	auth "github.com/iam-mahendravarma/MCP-XGeneOps"
)

// PersistenceConfig carries database settings for the persistence client.
type PersistenceConfig struct {
	DSN                   string
	Debug                 bool
	PingTimeoutExpression string
}

func (p PersistenceConfig) GetDSN() string {
	return p.DSN
}

func (p PersistenceConfig) GetDebug() bool {
	return p.Debug
}

func (p PersistenceConfig) GetPingTimeout() time.Duration {
	dur, err := time.ParseDuration(p.PingTimeoutExpression)
	if err != nil {
		return 5 * time.Second
	}
	return dur
}

type App struct {
	cfg       *auth.SimpleConfig
	bunDB     *bun.DB
	auth      auth.Authenticator
	auther    auth.HTTPAuthenticator
	repo      auth.RepositoryManager
	processor auth.TextProcessor
	srv       router.Server[*fiber.App]
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	cfg, err := auth.NewConfigFromEnv()
	if err != nil {
		log.Fatal(err)
	}

	app := &App{cfg: cfg}

	ctx := context.Background()

	if err := WithPersistence(ctx, app); err != nil {
		log.Fatal(err)
	}

	if err := WithHTTPServer(app); err != nil {
		log.Fatal(err)
	}

	if err := WithAuth(app); err != nil {
		log.Fatal(err)
	}

	WithProcessor(app)

	MountRoutes(app)

	app.srv.Serve(listenAddr())

	WaitExitSignal()
}

func listenAddr() string {
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":3001"
}

func WithPersistence(ctx context.Context, app *App) error {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = "file:app.db?cache=shared&mode=rwc"
	}

	db, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return err
	}

	persistence.RegisterModel((*auth.User)(nil))
	persistence.RegisterModel((*auth.Content)(nil))

	cfg := PersistenceConfig{
		DSN:                   dsn,
		Debug:                 os.Getenv("DATABASE_DEBUG") == "true",
		PingTimeoutExpression: "5s",
	}

	client, err := persistence.New(cfg, db, sqlitedialect.New())
	if err != nil {
		return err
	}

	migrationsFS, err := fs.Sub(auth.GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return err
	}
	client.RegisterDialectMigrations(
		migrationsFS,
		persistence.WithDialectSourceLabel("data/sql/migrations"),
		persistence.WithValidationTargets("postgres", "sqlite"),
	)

	if err := client.Migrate(ctx); err != nil {
		return err
	}

	app.bunDB = client.DB()
	app.repo = auth.NewRepositoryManager(client.DB())

	return nil
}

func WithHTTPServer(app *App) error {
	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			UnescapePath:  true,
			StrictRouting: false,
		}))
	})

	srv.Router().Get("/health", func(ctx router.Context) error {
		status := map[string]any{
			"status":    "ok",
			"service":   "backend",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}

		if app.processor != nil {
			status["processor"] = app.processor.Healthy(ctx.Context())
		}

		return ctx.JSON(http.StatusOK, status)
	})

	app.srv = srv
	return nil
}

func WithAuth(app *App) error {
	if err := app.repo.Validate(); err != nil {
		return err
	}

	userProvider := auth.NewUserProvider(auth.NewUserStore(app.repo.Users()))
	authenticator := auth.NewAuthenticator(userProvider, app.cfg)

	httpAuth, err := auth.NewHTTPAuthenticator(authenticator, app.cfg)
	if err != nil {
		return err
	}

	app.auth = authenticator
	app.auther = httpAuth

	return nil
}

func WithProcessor(app *App) {
	baseURL := os.Getenv("AI_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}
	app.processor = auth.NewProcessorClient(baseURL)
}

func MountRoutes(app *App) {
	auth.RegisterAuthRoutes(app.srv.Router().Group("/"),
		func(ac *auth.AuthController) *auth.AuthController {
			ac.Auther = app.auther
			ac.Auth = app.auth
			ac.Repo = app.repo
			ac.Cfg = app.cfg
			return ac
		})

	auth.RegisterContentRoutes(app.srv.Router().Group("/"),
		func(cc *auth.ContentController) *auth.ContentController {
			cc.Auther = app.auther
			cc.Repo = app.repo
			cc.Cfg = app.cfg
			cc.Processor = app.processor
			return cc
		})
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
