package aggregator

import (
	"builtat/pkg/domain"
	"context"
)

// Aggregator builds the list of live subdomains of the parent domain.
//
//go:generate mockgen -package mockaggregator -source=interface.go -destination=mock/mockaggregator.go *
type Aggregator interface {
	// Subdomains lists every project, looks up each project's domains
	// concurrently and returns the sorted, de-duplicated records. A failed
	// per-project lookup only removes that project's records.
	Subdomains(ctx context.Context) (domain.ResultSet, error)
}
