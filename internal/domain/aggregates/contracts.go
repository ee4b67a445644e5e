package aggregates

// WriteTxOwnership defines who owns write transaction boundaries.
type WriteTxOwnership string

const (
	// WriteTxOwnedByAggregate means aggregate write methods start/manage atomic DB transactions internally.
	WriteTxOwnedByAggregate WriteTxOwnership = "aggregate_owned"
)

// BlobOrdering defines when blob-store writes happen relative to the transaction.
type BlobOrdering string

const (
	// BlobsUploadedBeforeCommit: uploads run as the last step inside the write
	// call, after row and association writes, before commit. A failed call
	// compensates by deleting the blobs it uploaded.
	BlobsUploadedBeforeCommit BlobOrdering = "blobs_before_commit"
)

// Contract describes aggregate-level policy expectations.
type Contract struct {
	Name             string
	WriteTxOwnership WriteTxOwnership
	BlobOrdering     BlobOrdering
	Notes            string
}

// Aggregate is the common marker for all aggregate contracts.
type Aggregate interface {
	Contract() Contract
}

// RequiresAggregateOwnedTx returns true when write transaction ownership is aggregate-owned.
func (c Contract) RequiresAggregateOwnedTx() bool {
	return c.WriteTxOwnership == WriteTxOwnedByAggregate
}
