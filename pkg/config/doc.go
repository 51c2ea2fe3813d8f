// Package config provides configuration management for folio.
//
// Settings are read from $FOLIO_CONFIG_PATH/folio.yml (default
// /etc/folio/folio.yml) and overridden by environment variables. Every
// attribute remembers whether its value came from the default, the file or
// the environment; folioctl configuration show prints that table.
//
// # Secrets
//
// Secrets are never read from the file:
//
//   - FOLIO_TOKEN_SECRET: token signing secret, at least 32 bytes
//   - FOLIO_AUDIT_DATABASE_URL: optional audit log database
//
// # Key Configuration Options
//
//   - DATABASE_URL: Database connection
//   - FOLIO_PORT or PORT: Server listen port
//   - FOLIO_STORE: postgres or memory
//   - FOLIO_CONCEAL_FORBIDDEN: render forbidden responses as not found
//   - FOLIO_LOG_LEVEL: Logging verbosity
package config
