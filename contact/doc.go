// Package contact stores address book entries owned by users. The default
// Repository composes a go-repository-bun repository and can be replaced with
// any types.ContactRepository.
package contact
