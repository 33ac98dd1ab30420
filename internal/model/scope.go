package model

// Environment names used across the service.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

// Scope carries the identity of the requesting chat user through the call chain.
type Scope struct {
	UserID   string // Chat-platform user id, also the OAuth state value
	Username string // Display name (optional)
}
