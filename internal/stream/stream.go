// Package stream serves live pattern previews over WebSocket and
// announces the service on the local network with mDNS, so preview
// clients on the same LAN can find a running instance without
// configuration.
package stream

import (
	"context"
	"encoding/binary"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hashicorp/mdns"
	"github.com/pkg/errors"

	"github.com/lumatrix/lmx"
)

const serviceType = "_lmx._tcp"

// Server broadcasts rendered frames to all connected WebSocket clients
// at a fixed rate, looping over the pattern's timeline.
//
// Wire format per message (binary): a 12-byte header of three uint32
// big-endian values (frame index, width, height) followed by
// width*height*3 bytes of RGB data.
type Server struct {
	pat      *lmx.Pattern
	interval time.Duration
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}

	mdnsServer *mdns.Server
}

// NewServer creates a preview server for pat running at fps frames per
// second. Values below 1 are treated as 1.
func NewServer(pat *lmx.Pattern, fps int) *Server {
	if fps < 1 {
		fps = 1
	}
	return &Server{
		pat:      pat,
		interval: time.Second / time.Duration(fps),
		upgrader: websocket.Upgrader{
			// Preview is LAN-local tooling; any origin may connect.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// ServeHTTP upgrades the request to a WebSocket and registers the
// client for frame broadcasts. The connection stays open until the
// client disconnects or the server shuts down.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		lmx.Logger().Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	s.mu.Lock()
	s.clients[conn] = struct{}{}
	n := len(s.clients)
	s.mu.Unlock()
	lmx.Logger().Info("preview client connected", "remote", r.RemoteAddr, "clients", n)

	// Drain (and discard) client messages so pings are answered and
	// closes are noticed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.drop(conn)
				return
			}
		}
	}()
}

func (s *Server) drop(conn *websocket.Conn) {
	s.mu.Lock()
	_, ok := s.clients[conn]
	delete(s.clients, conn)
	s.mu.Unlock()
	if ok {
		conn.Close()
		lmx.Logger().Info("preview client disconnected", "remote", conn.RemoteAddr().String())
	}
}

// Run renders and broadcasts frames until ctx is cancelled, cycling
// through [0, FrameCount) forever. It closes all client connections on
// the way out.
func (s *Server) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	frame := 0
	for {
		select {
		case <-ctx.Done():
			s.closeAll()
			return ctx.Err()
		case <-ticker.C:
			s.broadcast(frame)
			frame++
			if frame >= s.pat.FrameCount() {
				frame = 0
			}
		}
	}
}

// broadcast renders one frame and writes it to every client. Clients
// whose write fails are dropped; a slow consumer must not stall the
// preview for everyone else.
func (s *Server) broadcast(frame int) {
	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for c := range s.clients {
		conns = append(conns, c)
	}
	s.mu.Unlock()
	if len(conns) == 0 {
		return
	}

	msg := s.encodeFrame(frame)
	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(s.interval))
		if err := conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
			s.drop(conn)
		}
	}
}

// encodeFrame produces the binary wire message for one frame.
func (s *Server) encodeFrame(frame int) []byte {
	width, height := s.pat.Width(), s.pat.Height()
	pixels := s.pat.Render(frame)

	msg := make([]byte, 12+len(pixels)*3)
	binary.BigEndian.PutUint32(msg[0:4], uint32(frame))
	binary.BigEndian.PutUint32(msg[4:8], uint32(width))
	binary.BigEndian.PutUint32(msg[8:12], uint32(height))
	for i, px := range pixels {
		off := 12 + i*3
		msg[off] = px.R
		msg[off+1] = px.G
		msg[off+2] = px.B
	}
	return msg
}

func (s *Server) closeAll() {
	s.mu.Lock()
	for conn := range s.clients {
		conn.Close()
	}
	s.clients = make(map[*websocket.Conn]struct{})
	s.mu.Unlock()
}

// Advertise announces the preview service on the local network via
// mDNS. Call Shutdown to withdraw the announcement.
func (s *Server) Advertise(port int) error {
	host, err := os.Hostname()
	if err != nil {
		return errors.Wrap(err, "resolving hostname")
	}
	service, err := mdns.NewMDNSService(
		host, serviceType, "", "", port, nil,
		[]string{"lmx matrix preview"},
	)
	if err != nil {
		return errors.Wrap(err, "creating mdns service")
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return errors.Wrap(err, "starting mdns server")
	}
	s.mdnsServer = server
	lmx.Logger().Info("advertising preview service", "type", serviceType, "port", port)
	return nil
}

// Shutdown withdraws the mDNS announcement, if any.
func (s *Server) Shutdown() {
	if s.mdnsServer != nil {
		s.mdnsServer.Shutdown()
		s.mdnsServer = nil
	}
}

// Browse looks the local network up for running preview services and
// calls found with each host:port discovered.
func Browse(found func(addr string)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	done := collectEntries(entries, found)
	// Lookup never closes the channel itself; close it once the query
	// completes so the collector goroutine terminates.
	err := mdns.Lookup(serviceType, entries)
	close(entries)
	<-done
	return err
}

// collectEntries forwards usable service entries to found until entries
// closes, then closes the returned channel.
func collectEntries(entries <-chan *mdns.ServiceEntry, found func(addr string)) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			found(net.JoinHostPort(e.AddrV4.String(), strconv.Itoa(e.Port)))
		}
	}()
	return done
}
