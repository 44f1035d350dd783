package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func (c *Client) call(method string, req, resp any) error {
	return c.client.Call(ServiceName+"."+method, req, resp)
}

// Ping checks daemon liveness.
func (c *Client) Ping() (*PingResponse, error) {
	var resp PingResponse
	if err := c.call("Ping", PingRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status retrieves the daemon status.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.call("Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stop asks the daemon process to shut down.
func (c *Client) Stop() (*StopResponse, error) {
	var resp StopResponse
	if err := c.call("Stop", StopRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UserCreate registers a new user.
func (c *Client) UserCreate(username string) (*UserCreateResponse, error) {
	var resp UserCreateResponse
	if err := c.call("UserCreate", UserCreateRequest{Username: username}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UserExists checks whether a user is registered.
func (c *Client) UserExists(username string) (*UserExistsResponse, error) {
	var resp UserExistsResponse
	if err := c.call("UserExists", UserExistsRequest{Username: username}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CatalogAdd appends a show to the catalog.
func (c *Client) CatalogAdd(req CatalogAddRequest) (*CatalogAddResponse, error) {
	var resp CatalogAddResponse
	if err := c.call("CatalogAdd", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CatalogList returns every catalog show of a kind.
func (c *Client) CatalogList(kind string) (*CatalogListResponse, error) {
	var resp CatalogListResponse
	if err := c.call("CatalogList", CatalogListRequest{Kind: kind}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CatalogGet looks up one show by ID.
func (c *Client) CatalogGet(kind, showID string) (*CatalogGetResponse, error) {
	var resp CatalogGetResponse
	if err := c.call("CatalogGet", CatalogGetRequest{Kind: kind, ShowID: showID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListAdd adds a show to a user's list.
func (c *Client) ListAdd(req ListAddRequest) (*ListAddResponse, error) {
	var resp ListAddResponse
	if err := c.call("ListAdd", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListUpdate replaces the tracked state of one entry.
func (c *Client) ListUpdate(req ListUpdateRequest) (*ListUpdateResponse, error) {
	var resp ListUpdateResponse
	if err := c.call("ListUpdate", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListRemove removes one entry from a user's list.
func (c *Client) ListRemove(req ListRemoveRequest) (*ListRemoveResponse, error) {
	var resp ListRemoveResponse
	if err := c.call("ListRemove", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListGet fetches one entry from a user's list.
func (c *Client) ListGet(req ListGetRequest) (*ListGetResponse, error) {
	var resp ListGetResponse
	if err := c.call("ListGet", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListByStatus fetches a user's list grouped by status.
func (c *Client) ListByStatus(username, kind string) (*ListByStatusResponse, error) {
	var resp ListByStatusResponse
	if err := c.call("ListByStatus", ListByStatusRequest{Username: username, Kind: kind}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
