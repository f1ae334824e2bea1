package remote

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

// dialShell starts a mounted host and connects a fake shell to it.
func dialShell(t *testing.T, host *SocketHost) *websocket.Conn {
	t.Helper()

	r := chi.NewRouter()
	host.Mount(r, "/_pagio/shell")
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	url := strings.Replace(srv.URL, "http", "ws", 1) + "/_pagio/shell"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// waitFor polls a condition with a deadline; the read loop runs on its
// own goroutine.
func waitFor(t *testing.T, desc string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", desc)
}

func TestSocketHostAttach(t *testing.T) {
	host := NewSocketHost()
	if host.Attached() {
		t.Fatal("host should start detached")
	}

	conn := dialShell(t, host)
	waitFor(t, "attach", host.Attached)

	if err := conn.WriteJSON(Frame{Type: FrameAddress, Address: "/start"}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	waitFor(t, "address sync", func() bool { return host.Address() == "/start" })
}

func TestSocketHostPushReachesShell(t *testing.T) {
	host := NewSocketHost()
	conn := dialShell(t, host)
	waitFor(t, "attach", host.Attached)

	if err := host.Push("/user/42"); err != nil {
		t.Fatalf("Push failed: %v", err)
	}

	var frame Frame
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if frame.Type != FramePush || frame.Address != "/user/42" {
		t.Errorf("frame = %+v", frame)
	}
	if host.Address() != "/user/42" {
		t.Errorf("Address = %q", host.Address())
	}

	if err := host.Replace("/user/43"); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if frame.Type != FrameReplace || frame.Address != "/user/43" {
		t.Errorf("frame = %+v", frame)
	}
}

func TestSocketHostPopstate(t *testing.T) {
	host := NewSocketHost()
	conn := dialShell(t, host)
	waitFor(t, "attach", host.Attached)

	got := make(chan string, 1)
	cancel := host.Subscribe(func(address string) { got <- address })
	defer cancel()

	if err := conn.WriteJSON(Frame{Type: FramePopstate, Address: "/back-target"}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	select {
	case address := <-got:
		if address != "/back-target" {
			t.Errorf("address = %q", address)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("popstate never delivered")
	}
	if host.Address() != "/back-target" {
		t.Errorf("Address = %q", host.Address())
	}
}

func TestSocketHostSubscribeCancel(t *testing.T) {
	host := NewSocketHost()
	conn := dialShell(t, host)
	waitFor(t, "attach", host.Attached)

	got := make(chan string, 1)
	cancel := host.Subscribe(func(address string) { got <- address })
	cancel()

	if err := conn.WriteJSON(Frame{Type: FramePopstate, Address: "/x"}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	waitFor(t, "address sync", func() bool { return host.Address() == "/x" })

	select {
	case address := <-got:
		t.Errorf("cancelled listener fired with %q", address)
	default:
	}
}

func TestSocketHostDetached(t *testing.T) {
	host := NewSocketHost()
	if err := host.Push("/a"); err != ErrShellDetached {
		t.Errorf("Push while detached = %v, want ErrShellDetached", err)
	}

	dialShell(t, host)
	waitFor(t, "attach", host.Attached)

	host.Close()
	if host.Attached() {
		t.Error("host should be detached after Close")
	}
	if err := host.Replace("/b"); err != ErrShellDetached {
		t.Errorf("Replace after Close = %v, want ErrShellDetached", err)
	}
}
