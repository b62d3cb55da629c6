// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow over the music catalog:
//  1. [LoginView] : Authenticate against the catalog service
//  2. [ListView] : Browse the paginated catalog
//  3. [FormView] : Add or edit a record with inline validation
//  4. [ConfirmDeleteView] : Confirm a soft delete
//  5. [DeletedListView] : Browse soft-deleted records and build a recovery selection
//  6. [ConfirmRecoverView] : Confirm bulk recovery
//
// The [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Channel notices (list changes, session invalidation) are forwarded into
// the program loop, so a 401 on any request drops the user back to the
// login view with the server's message.
//
// Keyboard navigation uses vim-style bindings (j/k, h/l for pages, enter,
// esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
