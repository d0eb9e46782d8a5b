package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// RunShell запускает интерактивную сессию. Изменения количества
// накапливаются и уходят на сервер одним запросом после паузы.
func (c *Cli) RunShell(ctx context.Context) error {
	ctrl, err := c.controller(ctx)
	if err != nil {
		return err
	}

	prompt := ""
	if c.io.IsTerminal() {
		prompt = "cart> "
		c.io.Println("Type 'help' for commands.")
		if err := c.printCart(ctrl); err != nil {
			return err
		}
	}

	for {
		line, err := c.readLine(ctx, prompt)
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		quit, err := c.execShellLine(ctx, line)
		if err != nil {
			c.io.Printf("Error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

type inputLine struct {
	err  error
	line string
}

// readLine читает строку, не блокируя отмену контекста (Ctrl+C).
// При отмене горутина чтения остаётся ждать ввода до выхода процесса.
func (c *Cli) readLine(ctx context.Context, prompt string) (string, error) {
	ch := make(chan inputLine, 1)
	go func() {
		line, err := c.io.ReadInput(prompt)
		ch <- inputLine{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case in := <-ch:
		return in.line, in.err
	}
}

func (c *Cli) execShellLine(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		c.io.Printf("%s", shellHelp)
	case "show", "ls":
		return false, c.RunShow(ctx)
	case "+", "inc":
		return false, c.RunIncrement(ctx, args, 1)
	case "-", "dec":
		return false, c.RunIncrement(ctx, args, -1)
	case "add":
		return false, c.RunAdd(ctx, args)
	case "rm", "remove":
		return false, c.RunRemove(ctx, args)
	case "search":
		return false, c.RunSearch(ctx, args, defaultSearchLimit)
	case "flush":
		ctrl, err := c.controller(ctx)
		if err != nil {
			return false, err
		}
		return false, ctrl.Flush(ctx)
	default:
		return false, fmt.Errorf("unknown command %q, type 'help'", cmd)
	}
	return false, nil
}
