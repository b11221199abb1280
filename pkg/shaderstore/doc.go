// Package shaderstore provides saved-shader-graph persistence as an
// interface, per spec.md §1's non-goal on persistence: the compiler core
// never touches storage, and this module ships no production-grade backend.
//
// # Usage
//
//	store := shaderstore.NewInMemoryStore() // reference/test implementation
//	id, err := store.Save("ripple", "animated ripple shader", graphJSON)
//	shader, err := store.Load(id)
//
// A deployment that needs durability implements Store against Postgres,
// SQLite, object storage, or whatever else it already operates. No other
// package in this module, pkg/compileservice included, takes a Store.
package shaderstore
