package handlers

import (
	"soldown/config"
	"soldown/services"

	"github.com/jaevor/go-nanoid"
)

// Handler carries the backend chosen at process start. Registering a stub
// backend is all it takes to test the HTTP surface.
type Handler struct {
	backend services.Backend
	newID   func() string
}

func New(backend services.Backend) *Handler {
	gen, err := nanoid.Standard(config.RequestIDLength)
	if err != nil {
		panic(err)
	}
	return &Handler{
		backend: backend,
		newID:   gen,
	}
}
