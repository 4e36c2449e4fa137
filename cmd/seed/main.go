package main

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"showcase/internal/auth"
	"showcase/internal/config"
	"showcase/internal/db"
	apperrors "showcase/internal/errors"
	"showcase/internal/logger"
	"showcase/internal/model"
	"showcase/internal/repository"
	"showcase/internal/service"
)

const (
	demoUsername = "demo"
	demoEmail    = "demo@example.com"
	demoPassword = "demo1234"
)

var demoProjects = []model.Project{
	{Title: "Weather Dashboard", Description: "A small dashboard that charts local forecasts.", Category: "Web"},
	{Title: "Pixel Art Editor", Description: "Browser based editor for sprite sheets.", Category: "Art"},
	{Title: "Reading List", Description: "Track books, notes and highlights."},
}

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogPretty)
	log.Info().Msg("starting seed")

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	userRepo := repository.NewUserRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)
	authService := service.NewAuthService(userRepo, auth.NewJWTService(cfg.JWTSecret))

	ctx := context.Background()
	user, err := demoUser(ctx, authService, userRepo)
	if err != nil {
		log.Fatal().Err(err).Msg("seed demo user")
	}

	created, err := seedProjects(ctx, projectRepo, user, log)
	if err != nil {
		log.Fatal().Err(err).Msg("seed projects")
	}

	logCompleted(log, created)
}

func logCompleted(log zerolog.Logger, created int) {
	log.Info().
		Str("username", demoUsername).
		Int("projects_created", created).
		Msg("seed completed")
}

// demoUser registers the demo account, or returns it when it already exists.
func demoUser(ctx context.Context, authService service.AuthService, repo repository.UserRepository) (*model.User, error) {
	user, err := authService.Register(ctx, service.RegisterInput{
		Username: demoUsername,
		Email:    demoEmail,
		Password: demoPassword,
	})
	if errors.Is(err, apperrors.ErrDuplicate) {
		return repo.FindByUsernameOrEmail(ctx, demoUsername, demoEmail)
	}
	return user, err
}

// seedProjects creates the demo projects unless the user already has some.
// They use the placeholder image, so no asset storage is needed.
func seedProjects(ctx context.Context, repo repository.ProjectRepository, owner *model.User, log zerolog.Logger) (int, error) {
	existing, err := repo.ListByUser(ctx, owner.ID)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		log.Info().Int("projects", len(existing)).Msg("demo user already has projects, skipping")
		return 0, nil
	}

	for _, p := range demoProjects {
		project := p
		project.UserID = owner.ID
		project.ImageURL = model.PlaceholderImageURL
		if err := repo.Create(ctx, &project); err != nil {
			return 0, err
		}
		log.Debug().Str("title", project.Title).Msg("project created")
	}
	return len(demoProjects), nil
}
