// Package domain contains the core domain entities and types used by the
// application. These types represent the business concepts (upstream projects,
// their domain bindings and the subdomain records shown to users) and are
// intentionally free of infrastructure concerns so they can be shared across
// the aggregator, the HTTP layer and the client.
package domain
