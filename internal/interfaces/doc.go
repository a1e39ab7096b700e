// Package interfaces holds compile-time assertions that the concrete types
// satisfy the interfaces their consumers declare.
//
// Consumers own their interfaces: the HTTP layer depends on
// services.BookManager, the service on services.BookRepository, the
// repository on books.Store and the recovery job on scheduler.Store.
// The assertions here catch drift between them at build time.
package interfaces
