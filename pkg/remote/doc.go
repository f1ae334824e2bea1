// Package remote connects a pagio application to an out-of-process
// shell over WebSocket.
//
// The shell is whatever owns the real address bar: a thin browser
// client, a webview wrapper, or a test harness. SocketHost implements
// history.Host over the connection, so the navigation core treats a
// remote shell exactly like the in-process MemoryHost:
//
//	host := remote.NewSocketHost()
//	r := chi.NewRouter()
//	host.Mount(r, "/_pagio/shell")
//
//	sync := history.NewSynchronizer(host, history.Config{})
//
// Wire protocol: JSON text frames. The core sends nav:push and
// nav:replace; the shell sends address (on attach) and popstate (on
// back/forward).
package remote
