// Package db opens the postgres connection used by the gorm stores.
package db
