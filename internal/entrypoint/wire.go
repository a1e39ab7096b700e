//go:build wireinject
// +build wireinject

package entrypoint

import (
	"context"

	"github.com/google/wire"

	"github.com/Pvt25072004/devops-lab-cicd/internal/config"
	"github.com/Pvt25072004/devops-lab-cicd/internal/database"
	"github.com/Pvt25072004/devops-lab-cicd/internal/database/books"
	http_controllers "github.com/Pvt25072004/devops-lab-cicd/internal/http"
	"github.com/Pvt25072004/devops-lab-cicd/internal/services"
)

var infrastructureSet = wire.NewSet(
	provideLogger,
	provideDatabase,
	wire.Bind(new(books.Store), new(*database.Database)),
)

var bookSet = wire.NewSet(
	books.NewRepository,
	wire.Bind(new(services.BookRepository), new(*books.Repository)),
	provideBookService,
	wire.Bind(new(services.BookManager), new(*services.BookService)),
)

var httpSet = wire.NewSet(
	provideRouterConfig,
	http_controllers.NewHandler,
)

// InitializeApp builds the application graph. The returned cleanup closes
// the database and flushes the logger.
func InitializeApp(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		bookSet,
		httpSet,
		provideStoreRecovery,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}
