package monitor

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // local tool, any origin
	},
}

// Server exposes the broadcaster on a websocket endpoint at "/ws".
type Server struct {
	Hub         *Hub
	Broadcaster *Broadcaster
	logger      *slog.Logger
}

func NewServer(clock clockwork.Clock, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	h := NewHub(logger.With("component", "monitor"))
	return &Server{Hub: h, Broadcaster: NewBroadcaster(h, clock), logger: logger}
}

// Start runs the hub and the broadcaster until ctx is done.
func (s *Server) Start(ctx context.Context) {
	go s.Hub.Run(ctx)
	go s.Broadcaster.Run(ctx)
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := NewClient(s.Hub, conn)
	s.Hub.Register(client)
	s.Broadcaster.SendInitialState(client)

	go client.WritePump()
	go client.ReadPump(s.Broadcaster)
}

// ListenAndServe starts the hub and serves addr until ctx is done. It
// returns the bound address and a channel carrying the serve result.
func (s *Server) ListenAndServe(ctx context.Context, addr string) (net.Addr, <-chan error, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, err
	}
	s.Start(ctx)

	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		err := srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	s.logger.Info("monitor listening", "addr", ln.Addr().String())
	return ln.Addr(), errCh, nil
}
