package remote

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

// ErrShellDetached is returned by Push and Replace while no shell is
// connected.
var ErrShellDetached = errors.New("remote: no shell attached")

// Options configures a SocketHost.
type Options struct {
	// CheckOrigin validates upgrade requests. Default: same-origin only
	// (the gorilla default).
	CheckOrigin func(r *http.Request) bool

	// ReadLimit caps incoming frame size in bytes. Default: 4096.
	ReadLimit int64

	// PongTimeout is how long a silent shell is considered alive.
	// Default: 60s.
	PongTimeout time.Duration

	// Logger receives connection diagnostics. Default: slog.Default().
	Logger *slog.Logger
}

// Option configures a SocketHost.
type Option func(*Options)

// WithCheckOrigin sets the upgrade origin check.
func WithCheckOrigin(fn func(r *http.Request) bool) Option {
	return func(o *Options) { o.CheckOrigin = fn }
}

// WithReadLimit sets the incoming frame size cap.
func WithReadLimit(limit int64) Option {
	return func(o *Options) { o.ReadLimit = limit }
}

// WithPongTimeout sets the read deadline window.
func WithPongTimeout(d time.Duration) Option {
	return func(o *Options) { o.PongTimeout = d }
}

// WithLogger sets the diagnostics logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// SocketHost is a history.Host backed by a WebSocket-connected shell.
//
// At most one shell is attached at a time; a new connection displaces
// the previous one. While detached, Address serves the last known value
// and Push/Replace fail with ErrShellDetached.
type SocketHost struct {
	upgrader websocket.Upgrader
	opts     Options
	logger   *slog.Logger

	mu        sync.Mutex
	conn      *websocket.Conn
	address   string
	listeners map[int]func(string)
	nextID    int
}

// NewSocketHost creates a detached host. Mount it on a router and point
// the shell at the endpoint.
func NewSocketHost(opts ...Option) *SocketHost {
	options := Options{
		ReadLimit:   4096,
		PongTimeout: 60 * time.Second,
		Logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(&options)
	}

	return &SocketHost{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     options.CheckOrigin,
		},
		opts:      options,
		logger:    options.Logger,
		address:   "/",
		listeners: make(map[int]func(string)),
	}
}

// Mount registers the shell endpoint on a chi router.
func (h *SocketHost) Mount(r chi.Router, pattern string) {
	r.Get(pattern, h.ServeHTTP)
}

// ServeHTTP upgrades the request and runs the shell connection until it
// closes. Implements http.Handler for routers other than chi.
func (h *SocketHost) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("shell upgrade failed", "error", err)
		return
	}
	conn.SetReadLimit(h.opts.ReadLimit)

	h.attach(conn)
	h.readLoop(conn)
}

// attach installs a new shell connection, displacing any previous one.
func (h *SocketHost) attach(conn *websocket.Conn) {
	h.mu.Lock()
	prev := h.conn
	h.conn = conn
	h.mu.Unlock()

	if prev != nil {
		h.logger.Warn("displacing attached shell")
		prev.Close()
	}
	h.logger.Info("shell attached", "remote", conn.RemoteAddr())
}

// readLoop consumes shell frames until the connection dies.
func (h *SocketHost) readLoop(conn *websocket.Conn) {
	defer h.detach(conn)

	for {
		conn.SetReadDeadline(time.Now().Add(h.opts.PongTimeout))

		var frame Frame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				h.logger.Error("shell read error", "error", err)
			}
			return
		}

		switch frame.Type {
		case FrameAddress:
			h.setAddress(frame.Address)

		case FramePopstate:
			h.setAddress(frame.Address)
			h.notify(frame.Address)

		default:
			h.logger.Warn("unknown shell frame", "type", frame.Type)
		}
	}
}

// detach clears the connection if it is still the active one.
func (h *SocketHost) detach(conn *websocket.Conn) {
	conn.Close()
	h.mu.Lock()
	if h.conn == conn {
		h.conn = nil
	}
	h.mu.Unlock()
	h.logger.Info("shell detached")
}

// Address returns the shell's last reported address.
func (h *SocketHost) Address() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.address
}

// Push sends a nav:push frame to the shell.
func (h *SocketHost) Push(address string) error {
	return h.send(Frame{Type: FramePush, Address: address})
}

// Replace sends a nav:replace frame to the shell.
func (h *SocketHost) Replace(address string) error {
	return h.send(Frame{Type: FrameReplace, Address: address})
}

// Subscribe registers a popstate listener.
func (h *SocketHost) Subscribe(fn func(address string)) (cancel func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.listeners, id)
		h.mu.Unlock()
	}
}

// Attached reports whether a shell is currently connected.
func (h *SocketHost) Attached() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.conn != nil
}

// Close drops the active shell connection, if any.
func (h *SocketHost) Close() {
	h.mu.Lock()
	conn := h.conn
	h.conn = nil
	h.mu.Unlock()
	if conn != nil {
		conn.Close()
	}
}

// send writes a frame under the lock; gorilla connections allow only
// one concurrent writer. The local address mirror is updated inside the
// same critical section so Address never lags a successful write.
func (h *SocketHost) send(frame Frame) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.conn == nil {
		return ErrShellDetached
	}
	if err := h.conn.WriteJSON(frame); err != nil {
		return err
	}
	h.address = frame.Address
	return nil
}

func (h *SocketHost) setAddress(address string) {
	h.mu.Lock()
	h.address = address
	h.mu.Unlock()
}

// notify fans a popstate out to subscribers outside the lock.
func (h *SocketHost) notify(address string) {
	h.mu.Lock()
	fns := make([]func(string), 0, len(h.listeners))
	for _, fn := range h.listeners {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(address)
	}
}
