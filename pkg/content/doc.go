// Package content implements the blog, project, skill and contact services.
//
// Every mutation goes through the ownership binder: creates stamp the owner
// reference from the verified identity and never from the request body;
// updates and deletes re-read the resource by id and ask the authz policy
// for its kind before anything is written.
package content
