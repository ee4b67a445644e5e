// Package aggregates defines the write-side contracts for composite catalog
// entities: input/result types, typed error codes and transaction ownership
// policies. Implementations live under internal/data/aggregates.
package aggregates
