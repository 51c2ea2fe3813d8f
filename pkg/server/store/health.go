package store

import "context"

// HealthStore provides health check operations
type HealthStore interface {
	// CheckConnectivity verifies backend connectivity
	CheckConnectivity(ctx context.Context) error
}
