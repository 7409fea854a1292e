package main

import (
	"context"
	"log/slog"
	"os"

	"taskdeck/config"
	"taskdeck/internal/delivery"
	"taskdeck/internal/delivery/http"
	"taskdeck/internal/delivery/http/middleware"
	"taskdeck/internal/delivery/http/router/handler"
	"taskdeck/internal/domain/service"
	"taskdeck/internal/infra/auth/firebase"
	logs "taskdeck/internal/infra/log"
	"taskdeck/internal/infra/persistence/postgres"
	"taskdeck/internal/infra/pubsub"
	"taskdeck/internal/infra/storage"
	"taskdeck/internal/usecase/impl"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewTaskRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newIdentityProvider,
			storage.NewProfilePictureStore,
			pubsub.NewEventPublisher,
		),
	)
}

// newIdentityProvider builds the Firebase-backed identity provider. Unlike
// most infra it is not optional: every authenticated route depends on it.
func newIdentityProvider(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.IdentityProvider, error) {
	if cfg.Firebase == nil {
		return nil, errors.New("firebase configuration is required")
	}

	return firebase.NewIdentityProvider(ctx, cfg.Firebase, logger)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAccountService,
			impl.NewTaskService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewRequestIDMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAccountHandler,
			handler.NewTaskHandler,
			handler.NewUploadHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
