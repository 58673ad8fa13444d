// Package store provides file-based persistence for the client's local state.
//
// It contains concrete implementations of the domain storage interfaces,
// serialising data as JSON on disk with atomic temp-file + rename writes. All
// methods are concurrency-safe via internal locking. Files live under the
// configured home directory (default ~/.organo).
//
// The package includes stores for:
//   - The signed-in session, plain or passphrase-sealed (SessionFileStore)
//   - The last account used per backend (AccountFileStore)
package store
