// Package api exposes session control over a UNIX socket speaking JSON
// request/response frames.
package api

import (
	"encoding/json"
	"log"
	"net"
	"os"

	"github.com/PiranhaCodes/forkpty/internal/session"
)

// Server handles UNIX socket connections and drives the session layer.
type Server struct {
	socketPath string
	defaults   session.Options
	listener   net.Listener
	stopChan   chan struct{}
}

// NewServer creates a new server. The defaults are used for spawns that do
// not override them.
func NewServer(socketPath string, defaults session.Options) *Server {
	return &Server{
		socketPath: socketPath,
		defaults:   defaults,
		stopChan:   make(chan struct{}),
	}
}

// Start starts the server and accepts connections until Stop is called.
func (s *Server) Start() error {
	if err := os.Remove(s.socketPath); err != nil && !os.IsNotExist(err) {
		return err
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return err
	}

	s.listener = listener
	log.Printf("[PTY] Server listening on %s", s.socketPath)

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.stopChan:
				return nil
			default:
				return err
			}
		}
		go s.handleConn(conn)
	}
}

// Stop stops the server and closes the listener.
func (s *Server) Stop() {
	close(s.stopChan)
	if s.listener != nil {
		s.listener.Close()
	}
	log.Println("[PTY] Server stopped")
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	decoder := json.NewDecoder(conn)
	encoder := json.NewEncoder(conn)

	var req Request
	if err := decoder.Decode(&req); err != nil {
		encoder.Encode(Response{Ok: false, Err: "invalid request: " + err.Error()})
		return
	}

	switch req.Action {
	case "spawn":
		s.handleSpawn(req.Data, encoder)
	case "write":
		s.handleWrite(req.Data, encoder)
	case "resize":
		s.handleResize(req.Data, encoder)
	case "kill":
		s.handleKill(req.Data, encoder)
	case "list":
		s.handleList(encoder)
	default:
		encoder.Encode(Response{Ok: false, Err: "unknown action: " + req.Action})
	}
}

func (s *Server) handleSpawn(data json.RawMessage, encoder *json.Encoder) {
	var req SpawnRequest
	if len(data) > 0 {
		if err := json.Unmarshal(data, &req); err != nil {
			encoder.Encode(Response{Ok: false, Err: "invalid spawn request: " + err.Error()})
			return
		}
	}

	opts := s.defaults
	if req.Shell != "" {
		opts.Shell = req.Shell
	}
	if req.Ptmx != "" {
		opts.PtmxPath = req.Ptmx
	}

	sess, err := session.Spawn(opts)
	if err != nil {
		encoder.Encode(Response{Ok: false, Err: err.Error()})
		return
	}

	encoder.Encode(Response{
		Ok: true,
		Data: SpawnResponse{
			ID:  sess.ID,
			TTY: sess.TTY,
			Pid: sess.Pid(),
		},
	})
}

func (s *Server) handleWrite(data json.RawMessage, encoder *json.Encoder) {
	var req WriteRequest
	if err := json.Unmarshal(data, &req); err != nil {
		encoder.Encode(Response{Ok: false, Err: "invalid write request: " + err.Error()})
		return
	}

	sess, ok := s.lookup(req.ID, encoder)
	if !ok {
		return
	}

	if _, err := sess.Write([]byte(req.Data)); err != nil {
		encoder.Encode(Response{Ok: false, Err: err.Error()})
		return
	}

	encoder.Encode(Response{Ok: true})
}

func (s *Server) handleResize(data json.RawMessage, encoder *json.Encoder) {
	var req ResizeRequest
	if err := json.Unmarshal(data, &req); err != nil {
		encoder.Encode(Response{Ok: false, Err: "invalid resize request: " + err.Error()})
		return
	}

	if req.Cols <= 0 || req.Rows <= 0 {
		encoder.Encode(Response{Ok: false, Err: "cols and rows must be positive"})
		return
	}

	sess, ok := s.lookup(req.ID, encoder)
	if !ok {
		return
	}

	if err := sess.Resize(req.Cols, req.Rows); err != nil {
		encoder.Encode(Response{Ok: false, Err: err.Error()})
		return
	}

	encoder.Encode(Response{Ok: true})
}

func (s *Server) handleKill(data json.RawMessage, encoder *json.Encoder) {
	var req KillRequest
	if err := json.Unmarshal(data, &req); err != nil {
		encoder.Encode(Response{Ok: false, Err: "invalid kill request: " + err.Error()})
		return
	}

	sess, ok := s.lookup(req.ID, encoder)
	if !ok {
		return
	}

	session.Cleanup(sess)
	encoder.Encode(Response{Ok: true})
}

func (s *Server) handleList(encoder *json.Encoder) {
	sessions := session.DefaultManager.List()
	infos := make([]SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		status := "active"
		if !sess.Alive() {
			status = "exiting"
		}
		infos = append(infos, SessionInfo{
			ID:     sess.ID,
			Status: status,
			TTY:    sess.TTY,
			Pid:    sess.Pid(),
		})
	}

	encoder.Encode(Response{
		Ok: true,
		Data: ListResponse{
			Sessions: infos,
			Count:    len(infos),
		},
	})
}

// lookup resolves a session by ID, writing the error response itself when
// the ID is missing or unknown.
func (s *Server) lookup(id string, encoder *json.Encoder) (*session.Session, bool) {
	if id == "" {
		encoder.Encode(Response{Ok: false, Err: "session ID is required"})
		return nil, false
	}
	sess := session.DefaultManager.Get(id)
	if sess == nil {
		encoder.Encode(Response{Ok: false, Err: "session not found"})
		return nil, false
	}
	return sess, true
}
