package api

// ShowView describes a catalog show in a transport-friendly format.
type ShowView struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"`
	Title      string `json:"title"`
	ImageURL   string `json:"imageUrl,omitempty"`
	TotalUnits int    `json:"totalUnits"`
}

// EntryView describes a user list entry. Show is populated when the
// referenced show exists in the catalog.
type EntryView struct {
	Kind     string    `json:"kind"`
	ShowID   string    `json:"showId"`
	Status   string    `json:"status"`
	Progress int       `json:"progress"`
	Rating   int       `json:"rating"`
	Show     *ShowView `json:"show,omitempty"`
}

// StatusGroup is one status bucket of a user's list, in the canonical
// status order for the kind.
type StatusGroup struct {
	Status  string      `json:"status"`
	Entries []EntryView `json:"entries"`
}

// ShowListResponse wraps a collection of catalog shows.
type ShowListResponse struct {
	Shows []ShowView `json:"shows"`
}

// ShowResponse wraps a single catalog show.
type ShowResponse struct {
	Show ShowView `json:"show"`
}

// EntryResponse wraps a single list entry.
type EntryResponse struct {
	Entry EntryView `json:"entry"`
}

// StatusGroupsResponse wraps a user's list grouped by status.
type StatusGroupsResponse struct {
	Groups []StatusGroup `json:"groups"`
}
