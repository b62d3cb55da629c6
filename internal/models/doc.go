// Package models defines the data model shared by the catalog client, session store, and UI.
//
// The package contains two categories of types:
//
// 1. Wire types exchanged with the catalog service:
//   - [Music] : A music record; a nil ID marks an unsaved (create-mode) record
//   - [Page] : One fixed-size window into the server-paginated collection
//   - [Credentials] / [User] : Login and sign-up payloads
//
// 2. Client-side state:
//   - [Session] : The authenticated identity held for the running client
//   - [Selection] : Records chosen for bulk recovery in the deleted view
//
// Wire field names follow the service's JSON contract (camelCase).
package models
