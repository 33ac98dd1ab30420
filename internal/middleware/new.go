package middleware

import (
	"asana-chatbot/pkg/log"
)

// Middleware bundles the cross-cutting gin middlewares.
type Middleware struct {
	l log.Logger
}

func New(l log.Logger) Middleware {
	return Middleware{l: l}
}
