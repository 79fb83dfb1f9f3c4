// Package directory persists user accounts with go-repository-bun and exposes
// the narrow lookup surface other packages use to resolve users by id.
package directory
