// Package gorm provides GORM-based implementations of the store interfaces
// defined in the parent store package.
//
// This package contains concrete implementations that use GORM with the
// PostgreSQL driver. The interfaces they implement are defined in
// pkg/server/store. Authors are populated with a narrowed Preload so the
// password hash never leaves the users table.
package gorm
