// Package types defines the library domain entities (Book, User, Loan),
// the genre vocabulary, the storage Config, and the standard error types
// shared by the core and the persistence backends.
package types
