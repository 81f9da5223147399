package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/PiranhaCodes/forkpty/internal/api"
	"github.com/PiranhaCodes/forkpty/internal/config"
	"github.com/PiranhaCodes/forkpty/internal/session"
)

func main() {
	cfgPathRaw := flag.String("config", "~/.forkptyd/config.yml", "Path to configuration file")
	socketRaw := flag.String("socket", "", "Path to UNIX socket (overrides config)")
	flag.Parse()

	cfgPath, err := config.ExpandPath(*cfgPathRaw)
	if err != nil {
		log.Fatalf("[PTY] Failed to expand config path: %v", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[PTY] Failed to load config: %v", err)
	}
	if *socketRaw != "" {
		cfg.Socket = *socketRaw
	}

	socketPath, err := config.ExpandPath(cfg.Socket)
	if err != nil {
		log.Fatalf("[PTY] Failed to expand socket path: %v", err)
	}
	sessionsDir, err := config.ExpandPath(cfg.Dirs.Sessions)
	if err != nil {
		log.Fatalf("[PTY] Failed to expand sessions directory: %v", err)
	}
	logDir, err := config.ExpandPath(cfg.Dirs.Log)
	if err != nil {
		log.Fatalf("[PTY] Failed to expand log directory: %v", err)
	}

	log.Printf("[PTY] Starting server with config: %s and socket: %s", cfgPath, socketPath)

	for _, dir := range []string{filepath.Dir(socketPath), sessionsDir, logDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("[PTY] Failed to create directory %s: %v", dir, err)
		}
	}

	server := api.NewServer(socketPath, session.Options{
		Shell:       cfg.Terminal.DefaultShell,
		PtmxPath:    cfg.Ptmx,
		SessionsDir: sessionsDir,
		LogDir:      logDir,
	})

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("[PTY] Failed to start server: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("[PTY] Shutting down server...")
	session.CleanupAll()
	server.Stop()
	log.Println("[PTY] Server shutdown complete")
}
