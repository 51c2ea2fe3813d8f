// Package store provides storage abstractions for the folio server.
//
// This package defines interfaces for persistence, allowing the services and
// endpoints to be decoupled from the specific database implementation. Two
// implementations exist: store/gorm (PostgreSQL) and store/memory.
//
// # Available Stores
//
//   - UsersStore: credential records and profiles
//   - BlogsStore: blogs and their comments
//   - ProjectsStore, SkillsStore: portfolio entries
//   - ContactsStore: messages addressed to a portfolio owner
//   - HealthStore: backend connectivity
//
// Update and Delete are conditional on the owner reference of the resource
// passed in, which callers obtain from a fresh FindByID. When no row matches
// they return ErrNotFound.
//
// # Usage
//
//	blogs := gorm.NewBlogsStore(db, logger)
//	blog, err := blogs.FindByID(ctx, id)
//	if err != nil {
//	    if errors.Is(err, store.ErrNotFound) {
//	        // Handle not found
//	    }
//	}
package store
