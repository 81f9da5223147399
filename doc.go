// Package forkpty creates a child process attached to a freshly allocated
// pseudo-terminal.
//
// Fork allocates a master/slave PTY pair from the multiplexer device, forks
// the process, and hands each side a Proc handle: the parent keeps the master
// and the child's pid, the child becomes a session leader with its standard
// streams rewired to the slave, ready to exec a program.
//
// The package is deliberately small. There is no terminal emulation, no line
// discipline configuration and no process supervision; higher layers drive
// the child through the master as a plain duplex byte stream.
package forkpty
