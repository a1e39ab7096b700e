package interfaces

import (
	"github.com/Pvt25072004/devops-lab-cicd/internal/database"
	"github.com/Pvt25072004/devops-lab-cicd/internal/database/books"
	"github.com/Pvt25072004/devops-lab-cicd/internal/scheduler"
	"github.com/Pvt25072004/devops-lab-cicd/internal/services"
)

// Storage
var _ books.Store = (*database.Database)(nil)
var _ scheduler.Store = (*database.Database)(nil)

// Books
var _ services.BookRepository = (*books.Repository)(nil)
var _ services.BookManager = (*services.BookService)(nil)
