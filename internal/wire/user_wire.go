package wire

import (
	"users-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser registers the users CRUD routes
func wireUser(r chi.Router, userHandler *adaptor.UserHandler, log *zap.Logger) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", adaptor.Handle(log, "list users", userHandler.ListUsers))
		r.Post("/", adaptor.Handle(log, "create user", userHandler.CreateUser))

		r.Route("/{"+adaptor.UserIDParam+"}", func(r chi.Router) {
			r.Get("/", adaptor.Handle(log, "get user", userHandler.GetUser))
			r.Put("/", adaptor.Handle(log, "update user", userHandler.UpdateUser))
			r.Delete("/", adaptor.Handle(log, "delete user", userHandler.DeleteUser))
		})
	})
}
