package main

import (
	"bufio"
	"context"
	"fmt"
	"frog-pond/internal"
	"frog-pond/projection"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
)

const subscriberID = "console"

func main() {
	if err := run(os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(in io.Reader, out io.Writer) error {
	config, err := internal.LoadConfig()
	if err != nil {
		return err
	}
	// Only warnings, the REPL shares the terminal with the logs.
	log := logs.GetLoggerFromLevel(slog.LevelWarn)

	app, err := internal.NewApp(config, log)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err = app.Start(ctx); err != nil {
		return err
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	fmt.Fprintln(out, color.New(color.BgBlack, color.FgGreen).Render("  ====== FrogTV ======  "))
	fmt.Fprint(out, "Username: ")
	var user string
	select {
	case <-ctx.Done():
		return nil
	case line, ok := <-lines:
		if !ok {
			return nil
		}
		user = strings.TrimSpace(line)
	}
	if user == "" {
		user = "Anonymous"
	}

	console := newConsole(out, app.Pond, app.Repository, user)
	app.Orchestrator.Registry().Subscribe(subscriberID, projection.NewTimeline().OnChange(console.printEntry))
	defer app.Orchestrator.Registry().Unsubscribe(subscriberID)
	console.help()
	console.printPond()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok || !console.handle(line) {
				return nil
			}
		}
	}
}

