package ipc

import "bingelog/internal/api"

// PingRequest checks daemon liveness.
type PingRequest struct{}

// PingResponse acknowledges a ping.
type PingResponse struct {
	Message string `json:"message"`
}

// StatusRequest asks for daemon runtime information.
type StatusRequest struct{}

// StatusResponse carries daemon runtime information.
type StatusResponse struct {
	Running      bool   `json:"running"`
	PID          int    `json:"pid"`
	SessionID    string `json:"sessionId"`
	DataDir      string `json:"dataDir"`
	UsersDir     string `json:"usersDir"`
	LockPath     string `json:"lockPath"`
	AnimeShows   int    `json:"animeShows"`
	MangaShows   int    `json:"mangaShows"`
}

// StopRequest asks the daemon process to shut down.
type StopRequest struct{}

// StopResponse acknowledges a shutdown request.
type StopResponse struct {
	Stopped bool `json:"stopped"`
}

// UserCreateRequest registers a new user.
type UserCreateRequest struct {
	Username string `json:"username"`
}

// UserCreateResponse reports whether the user was created.
type UserCreateResponse struct {
	Created bool `json:"created"`
}

// UserExistsRequest checks for a registered user.
type UserExistsRequest struct {
	Username string `json:"username"`
}

// UserExistsResponse reports user existence.
type UserExistsResponse struct {
	Exists bool `json:"exists"`
}

// CatalogAddRequest appends a show to the catalog.
type CatalogAddRequest struct {
	Kind       string `json:"kind"`
	Title      string `json:"title"`
	ImageURL   string `json:"imageUrl"`
	TotalUnits int    `json:"totalUnits"`
}

// CatalogAddResponse returns the stored show with its assigned ID.
type CatalogAddResponse struct {
	api.ShowResponse
}

// CatalogListRequest lists all catalog shows of a kind.
type CatalogListRequest struct {
	Kind string `json:"kind"`
}

// CatalogListResponse carries the catalog contents.
type CatalogListResponse struct {
	api.ShowListResponse
}

// CatalogGetRequest looks up one show by ID.
type CatalogGetRequest struct {
	Kind   string `json:"kind"`
	ShowID string `json:"showId"`
}

// CatalogGetResponse carries the matching show.
type CatalogGetResponse struct {
	api.ShowResponse
}

// ListAddRequest adds a show to a user's list.
type ListAddRequest struct {
	Username string `json:"username"`
	Kind     string `json:"kind"`
	ShowID   string `json:"showId"`
	Status   string `json:"status"`
	Progress int    `json:"progress"`
	Rating   int    `json:"rating"`
}

// ListAddResponse reports whether the entry was added.
type ListAddResponse struct {
	Added bool `json:"added"`
}

// ListUpdateRequest replaces the tracked state of one entry.
type ListUpdateRequest struct {
	Username string `json:"username"`
	Kind     string `json:"kind"`
	ShowID   string `json:"showId"`
	Status   string `json:"status"`
	Progress int    `json:"progress"`
	Rating   int    `json:"rating"`
}

// ListUpdateResponse acknowledges an update.
type ListUpdateResponse struct {
	Updated bool `json:"updated"`
}

// ListRemoveRequest removes one entry from a user's list.
type ListRemoveRequest struct {
	Username string `json:"username"`
	Kind     string `json:"kind"`
	ShowID   string `json:"showId"`
}

// ListRemoveResponse acknowledges a removal.
type ListRemoveResponse struct {
	Removed bool `json:"removed"`
}

// ListGetRequest fetches one entry from a user's list.
type ListGetRequest struct {
	Username string `json:"username"`
	Kind     string `json:"kind"`
	ShowID   string `json:"showId"`
}

// ListGetResponse carries the matching entry.
type ListGetResponse struct {
	api.EntryResponse
}

// ListByStatusRequest fetches a user's list grouped by status.
type ListByStatusRequest struct {
	Username string `json:"username"`
	Kind     string `json:"kind"`
}

// ListByStatusResponse carries the grouped list in canonical status
// order for the kind.
type ListByStatusResponse struct {
	api.StatusGroupsResponse
}
