// Command folioctl runs the folio multi-tenant portfolio API.
//
// # Architecture
//
// The server is organized into several packages:
//
//   - pkg/server: HTTP server, middleware and routing
//   - pkg/server/endpoints: REST API endpoint handlers
//   - pkg/server/store: persistence interfaces with gorm and in-memory backends
//   - pkg/token: HS256 bearer tokens
//   - pkg/identity: the authenticated caller carried on the request context
//   - pkg/authz: ownership policies per resource kind
//   - pkg/account: registration, login and profiles
//   - pkg/content: blogs, projects, skills and contact messages
//   - pkg/config: configuration management
//   - pkg/audit: audit logging
//   - pkg/metrics: Prometheus request metrics
//
// # Quick Start
//
//	# Generate a token signing secret
//	export FOLIO_TOKEN_SECRET="$(folioctl secret generate)"
//
//	# Run database migrations
//	folioctl db migrate
//
//	# Create the first administrator
//	FOLIO_ADMIN_PASSWORD=... folioctl user create-admin --email admin@example.com --name Admin
//
//	# Start the server
//	folioctl server
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - FOLIO_TOKEN_SECRET: token signing secret, at least 32 bytes
//   - FOLIO_STORE: postgres (default) or memory
//   - FOLIO_LOG_LEVEL: Log level (debug, info, warn, error)
//   - FOLIO_PORT or PORT: Server port (default: 8070)
//   - FOLIO_CONFIG_PATH: directory holding folio.yml (default: /etc/folio)
package main
