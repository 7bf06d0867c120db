package dto

// PageResponse is what a page route renders: the view to mount, the session it
// was rendered for and where the view loads its data from.
type PageResponse struct {
	View         string            `json:"view"`
	Session      SessionResponse   `json:"session"`
	DataEndpoint string            `json:"data_endpoint,omitempty"`
	Params       map[string]string `json:"params,omitempty"`
	Options      []RoleOption      `json:"options,omitempty"`
}

// RoleOption is one entry of the role selection page.
type RoleOption struct {
	Role  string `json:"role"`
	Label string `json:"label"`
	Home  string `json:"home"`
}
