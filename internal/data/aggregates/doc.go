// Package aggregates implements the write coordinators for composite catalog
// entities. Each coordinator owns its transaction: row writes and association
// syncs run first, blob uploads run last before commit, and a failure anywhere
// rolls the relational state back and deletes the blobs the failed call
// uploaded. Blobs superseded by an update are pruned only after commit.
package aggregates
