// Package session manages shell sessions running on pseudo-terminals: shell
// detection, forking a shell onto a fresh PTY, streaming its output to FIFO
// pipes and log files, and resource cleanup.
package session
