package domain

// RemoteCategory is one node of the supplier's category tree. Parent links
// come in two shapes: the category listing endpoint nests Children top-down,
// while product payloads carry a Parent chain bottom-up.
type RemoteCategory struct {
	CategoryID uint64           `json:"categoryID"`
	Name       string           `json:"name"`
	Slug       string           `json:"slug,omitempty"`
	Parent     *RemoteCategory  `json:"parent,omitempty"`
	Children   []RemoteCategory `json:"children,omitempty"`
}
