package cli

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"

	"weatheros/clock"
	"weatheros/manager"
	"weatheros/view"
)

const prompt = "> INSERIR LOCAL: "

// runInteractive drives the session from lines typed on in until EOF,
// :quit or ctx is cancelled. Lookups run in the background so the clock
// and the prompt stay live while a request is pending. At EOF pending
// lookups are allowed to finish; :quit abandons them.
func runInteractive(ctx context.Context, session *manager.Session, in io.Reader, term *view.Terminal) error {
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()

	term.SetPrompt(prompt)
	term.Update(session.State())
	session.Subscribe(term.Update)

	ticker := clock.New(term.Clock)
	if err := ticker.Start(); err != nil {
		return err
	}
	defer ticker.Stop()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	run := func(fn func(context.Context) (manager.State, error)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = fn(ctx)
		}()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				wg.Wait()
				return nil
			}

			switch cmd := strings.TrimSpace(line); cmd {
			case ":q", ":quit":
				return nil
			case ":l", ":locate":
				if !session.CanLocate() {
					term.Notice(manager.ErrCapabilityUnavailable.Error())
					continue
				}
				run(session.Locate)
			case "":
				term.Update(session.State())
			default:
				run(func(ctx context.Context) (manager.State, error) {
					return session.Submit(ctx, cmd)
				})
			}
		}
	}
}
