package main

import (
	"fmt"
	"frog-pond/contract"
	"frog-pond/domain"
	"frog-pond/projection"
	"frog-pond/repositories"
	"io"
	"strings"
	"sync"
)

// console turns REPL lines into pond commands.
// Live timeline entries and command output share the same writer.
type console struct {
	mu         sync.Mutex
	out        io.Writer
	pond       contract.IPond
	repository repositories.IMessageRepository
	user       string
	cursor     *string
}

func newConsole(out io.Writer, pond contract.IPond, repository repositories.IMessageRepository, user string) *console {
	return &console{out: out, pond: pond, repository: repository, user: user}
}

// handle runs one line and reports whether the REPL should keep going.
func (c *console) handle(line string) bool {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
	case line == "/quit":
		return false
	case line == "/fly":
		c.pond.Dispatch(domain.ThrowFlyCommand{})
	case line == "/croak":
		c.pond.Dispatch(domain.MakeThemCroakCommand{})
	case line == "/pond":
		c.printPond()
	case line == "/history":
		c.printHistory()
	case strings.HasPrefix(line, "/"):
		c.help()
	default:
		c.pond.Dispatch(domain.PostMessageCommand{Author: c.user, Text: line})
	}
	return true
}

func (c *console) help() {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, "Type a message, or /fly, /croak, /pond, /history, /quit")
}

func (c *console) printPond() {
	c.mu.Lock()
	defer c.mu.Unlock()
	renderPond(c.out, c.pond.Snapshot(), c.pond.Threshold())
}

// printHistory shows one page of the chat log per call, older each time, then wraps around.
func (c *console) printHistory() {
	c.mu.Lock()
	defer c.mu.Unlock()
	messages, next, err := c.repository.GetMessages(c.cursor)
	if err != nil {
		fmt.Fprintf(c.out, "history unavailable: %v\n", err)
		return
	}
	c.cursor = next
	if len(messages) == 0 {
		fmt.Fprintln(c.out, "no more messages")
		return
	}
	renderHistory(c.out, messages)
}

func (c *console) printEntry(e projection.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	renderEntry(c.out, e)
}
