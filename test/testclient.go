// Manual smoke-test client for a running forkptyd: spawns a shell session,
// types a few commands into it, tails its FIFO, lists sessions and kills the
// session again. Not part of the automated tests.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

type request struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data,omitempty"`
}

type response struct {
	Ok   bool            `json:"ok"`
	Err  string          `json:"err,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

type spawnResponse struct {
	ID  string `json:"id"`
	TTY string `json:"tty"`
	Pid int    `json:"pid"`
}

type sessionInfo struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	TTY    string `json:"tty"`
	Pid    int    `json:"pid"`
}

type listResponse struct {
	Sessions []sessionInfo `json:"sessions"`
	Count    int           `json:"count"`
}

// call dials the daemon, sends one request and decodes the response. The
// server serves one request per connection.
func call(socketPath, action string, data interface{}) (*response, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close()

	var raw json.RawMessage
	if data != nil {
		raw, err = json.Marshal(data)
		if err != nil {
			return nil, err
		}
	}

	if err := json.NewEncoder(conn).Encode(request{Action: action, Data: raw}); err != nil {
		return nil, err
	}

	var resp response
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		return nil, err
	}
	if !resp.Ok {
		return &resp, fmt.Errorf("server error: %s", resp.Err)
	}
	return &resp, nil
}

func expandPath(path string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func main() {
	socketRaw := flag.String("socket", "~/.forkptyd/pty.sock", "Path to daemon socket")
	sessionsRaw := flag.String("sessions", "~/.forkptyd/sessions", "Directory holding session FIFOs")
	flag.Parse()

	socketPath := expandPath(*socketRaw)
	sessionsDir := expandPath(*sessionsRaw)

	log.Println("[TestClient] Spawning session...")
	resp, err := call(socketPath, "spawn", nil)
	if err != nil {
		log.Fatalf("[TestClient] Spawn failed: %v", err)
	}
	var spawned spawnResponse
	if err := json.Unmarshal(resp.Data, &spawned); err != nil {
		log.Fatalf("[TestClient] Bad spawn response: %v", err)
	}
	log.Printf("[TestClient] Session %s on %s (pid %d)", spawned.ID, spawned.TTY, spawned.Pid)

	fifoPath := filepath.Join(sessionsDir, spawned.ID+".out")
	time.Sleep(200 * time.Millisecond)
	fifo, err := os.OpenFile(fifoPath, os.O_RDONLY|syscall.O_NONBLOCK, 0)
	if err != nil {
		log.Fatalf("[TestClient] Failed to open FIFO %s: %v", fifoPath, err)
	}
	defer fifo.Close()

	go func() {
		buf := make([]byte, 4096)
		for {
			n, err := fifo.Read(buf)
			if n > 0 {
				fmt.Print(string(buf[:n]))
			}
			if err != nil {
				if err == io.EOF || errors.Is(err, syscall.EAGAIN) {
					time.Sleep(100 * time.Millisecond)
					continue
				}
				log.Printf("[TestClient] FIFO read error: %v", err)
				return
			}
		}
	}()

	for _, cmd := range []string{
		"echo 'Hello from PTY!'\n",
		"tty\n",
		"pwd\n",
	} {
		log.Printf("[TestClient] Sending: %q", cmd)
		if _, err := call(socketPath, "write", map[string]string{"id": spawned.ID, "data": cmd}); err != nil {
			log.Printf("[TestClient] Write failed: %v", err)
		}
		time.Sleep(500 * time.Millisecond)
	}

	resp, err = call(socketPath, "list", nil)
	if err != nil {
		log.Printf("[TestClient] List failed: %v", err)
	} else {
		var list listResponse
		if err := json.Unmarshal(resp.Data, &list); err == nil {
			log.Printf("[TestClient] %d active session(s)", list.Count)
			for _, info := range list.Sessions {
				log.Printf("[TestClient]   %s %s on %s (pid %d)", info.ID, info.Status, info.TTY, info.Pid)
			}
		}
	}

	time.Sleep(1 * time.Second)

	log.Printf("[TestClient] Killing session %s...", spawned.ID)
	if _, err := call(socketPath, "kill", map[string]string{"id": spawned.ID}); err != nil {
		log.Fatalf("[TestClient] Kill failed: %v", err)
	}
	log.Println("[TestClient] Done")
}
