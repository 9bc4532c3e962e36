package domain

// Project is a deployment project owned by a team on the upstream platform.
type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Domain is a hostname bound to a project on the upstream platform.
type Domain struct {
	Name string `json:"name"`
}
