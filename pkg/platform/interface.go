// Package platform defines the interface used to read projects and their
// domain bindings from the deployment platform that hosts the subdomains.
package platform

import (
	"builtat/pkg/domain"
	"context"
)

// Client is the abstraction for deployment platforms. Implementations list
// the projects owned by a team and the domains bound to each project.
// Implementations must be safe for concurrent use.
//
//go:generate mockgen -package mockplatform -source=interface.go -destination=mock/mockplatform.go *
type Client interface {
	// ListProjects returns every project owned by teamID. A response without a
	// project collection is an error, never an empty success.
	ListProjects(ctx context.Context, teamID string) ([]domain.Project, error)
	// ListDomains returns the domains bound to the given project.
	ListDomains(ctx context.Context, teamID string, project string) ([]domain.Domain, error)
}
