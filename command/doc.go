// Package command exposes go-command compatible handlers for every mutation:
// the audit trail append, user create/update/delete and contact
// create/update/delete. Mutating handlers record their outcome through the
// activity engine. Commands are wired by the service layer and can be invoked
// by any transport.
package command
