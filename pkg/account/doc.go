// Package account manages the credential lifecycle: registration, login and
// profile updates. Passwords are stored only as bcrypt hashes and every
// successful operation returns a Session carrying a freshly issued token.
package account
