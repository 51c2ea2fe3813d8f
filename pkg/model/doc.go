// Package model defines the database models for folio.
//
// This package contains GORM models that map to the folio PostgreSQL schema
// in db/migrations. The same structs are used by the in-memory store.
//
// # Core Models
//
//   - User: Registered principals with a bcrypt password hash and a role
//   - Author: Display projection of a user, used when populating resources
//   - Blog, Comment: Articles and their public comments
//   - Project: Portfolio projects
//   - Skill: Skills with proficiency and ordering
//   - Contact: Inbox messages addressed to a portfolio owner
//
// # Ownership
//
// Every ownable model exposes OwnerRef. Blogs, projects and skills are owned
// by their author; contact messages are owned by their recipient.
package model
