package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"

	"log/slog"

	"bingelog/internal/api"
	"bingelog/internal/catalog"
	"bingelog/internal/daemon"
	"bingelog/internal/logging"
	"bingelog/internal/userlist"
)

// ServiceName is the RPC receiver name clients call methods on.
const ServiceName = "Bingelog"

// Server exposes tracking operations via JSON-RPC over a Unix domain
// socket.
type Server struct {
	path      string
	daemon    *daemon.Daemon
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path. The
// shutdown callback runs when a client requests daemon shutdown.
func NewServer(ctx context.Context, path string, d *daemon.Daemon, logger *slog.Logger, shutdown func()) (*Server, error) {
	if d == nil {
		return nil, errors.New("ipc server requires daemon")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	rpcServer := rpc.NewServer()
	srv := &service{
		daemon:   d,
		logger:   logging.NewComponentLogger(logger, "ipc"),
		ctx:      ctx,
		shutdown: shutdown,
	}
	if err := rpcServer.RegisterName(ServiceName, srv); err != nil {
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:      path,
		daemon:    d,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve starts accepting RPC connections until the context is canceled.
func (s *Server) Serve() {
	s.logger.Debug("IPC server listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				s.logger.Warn("accept failed", logging.Error(err))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		s.logger.Warn("failed to remove socket",
			logging.String("socket", s.path),
			logging.Error(err))
	}
}

type service struct {
	daemon   *daemon.Daemon
	logger   *slog.Logger
	ctx      context.Context
	shutdown func()
}

func (s *service) Ping(_ PingRequest, resp *PingResponse) error {
	resp.Message = "pong"
	return nil
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	status := s.daemon.Status(s.ctx)
	resp.Running = status.Running
	resp.PID = status.PID
	resp.SessionID = status.SessionID
	resp.DataDir = status.DataDir
	resp.UsersDir = status.UsersDir
	resp.LockPath = status.LockFilePath
	resp.AnimeShows = status.AnimeShows
	resp.MangaShows = status.MangaShows
	return nil
}

func (s *service) Stop(_ StopRequest, resp *StopResponse) error {
	s.logger.Info("daemon shutdown requested via IPC")
	resp.Stopped = true
	if s.shutdown != nil {
		go s.shutdown()
	}
	return nil
}

func (s *service) UserCreate(req UserCreateRequest, resp *UserCreateResponse) error {
	created, err := s.daemon.CreateUser(s.ctx, req.Username)
	if err != nil {
		return err
	}
	resp.Created = created
	return nil
}

func (s *service) UserExists(req UserExistsRequest, resp *UserExistsResponse) error {
	resp.Exists = s.daemon.UserExists(req.Username)
	return nil
}

func (s *service) CatalogAdd(req CatalogAddRequest, resp *CatalogAddResponse) error {
	kind, err := catalog.ParseKind(req.Kind)
	if err != nil {
		return err
	}
	show, err := s.daemon.AddShow(s.ctx, kind, req.Title, req.ImageURL, req.TotalUnits)
	if err != nil {
		return err
	}
	resp.Show = api.FromShow(show)
	return nil
}

func (s *service) CatalogList(req CatalogListRequest, resp *CatalogListResponse) error {
	kind, err := catalog.ParseKind(req.Kind)
	if err != nil {
		return err
	}
	shows, err := s.daemon.ListShows(s.ctx, kind)
	if err != nil {
		return err
	}
	resp.Shows = api.FromShows(shows)
	return nil
}

func (s *service) CatalogGet(req CatalogGetRequest, resp *CatalogGetResponse) error {
	kind, err := catalog.ParseKind(req.Kind)
	if err != nil {
		return err
	}
	show, err := s.daemon.GetShow(s.ctx, kind, req.ShowID)
	if err != nil {
		return err
	}
	resp.Show = api.FromShow(show)
	return nil
}

func (s *service) ListAdd(req ListAddRequest, resp *ListAddResponse) error {
	kind, err := catalog.ParseKind(req.Kind)
	if err != nil {
		return err
	}
	if !userlist.ValidStatus(kind, req.Status) {
		return fmt.Errorf("invalid %s status %q", kind, req.Status)
	}
	added, err := s.daemon.AddEntry(s.ctx, req.Username, userlist.Entry{
		Kind:     kind,
		ShowID:   req.ShowID,
		Status:   req.Status,
		Progress: req.Progress,
		Rating:   req.Rating,
	})
	if err != nil {
		return err
	}
	resp.Added = added
	return nil
}

func (s *service) ListUpdate(req ListUpdateRequest, resp *ListUpdateResponse) error {
	kind, err := catalog.ParseKind(req.Kind)
	if err != nil {
		return err
	}
	if !userlist.ValidStatus(kind, req.Status) {
		return fmt.Errorf("invalid %s status %q", kind, req.Status)
	}
	if err := s.daemon.UpdateEntry(s.ctx, req.Username, req.ShowID, kind, req.Status, req.Progress, req.Rating); err != nil {
		return err
	}
	resp.Updated = true
	return nil
}

func (s *service) ListRemove(req ListRemoveRequest, resp *ListRemoveResponse) error {
	kind, err := catalog.ParseKind(req.Kind)
	if err != nil {
		return err
	}
	if err := s.daemon.RemoveEntry(s.ctx, req.Username, req.ShowID, kind); err != nil {
		return err
	}
	resp.Removed = true
	return nil
}

func (s *service) ListGet(req ListGetRequest, resp *ListGetResponse) error {
	kind, err := catalog.ParseKind(req.Kind)
	if err != nil {
		return err
	}
	entry, err := s.daemon.GetEntry(s.ctx, req.Username, req.ShowID, kind)
	if err != nil {
		return err
	}
	shows, err := s.daemon.ListShows(s.ctx, kind)
	if err != nil {
		return err
	}
	resp.Entry = api.FromEntry(entry, api.IndexShows(shows))
	return nil
}

func (s *service) ListByStatus(req ListByStatusRequest, resp *ListByStatusResponse) error {
	kind, err := catalog.ParseKind(req.Kind)
	if err != nil {
		return err
	}
	buckets, err := s.daemon.ListByStatus(s.ctx, kind, req.Username)
	if err != nil {
		return err
	}
	shows, err := s.daemon.ListShows(s.ctx, kind)
	if err != nil {
		return err
	}
	resp.Groups = api.GroupsFromBuckets(kind, buckets, api.IndexShows(shows))
	return nil
}
