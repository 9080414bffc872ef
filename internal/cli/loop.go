// Copyright (c) Microsoft. All rights reserved.

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// QuitCommand ends an interactive loop. It is matched case-insensitively.
const QuitCommand = "quit"

// Loop reads prompts from In and hands each non-empty line, as typed, to a
// handler until the user types quit or input ends. Conversation state, if any,
// lives with the handler; the loop keeps none.
type Loop struct {
	In  io.Reader
	Out io.Writer

	// Prompt is written before every read.
	Prompt string

	// Reminder is written when the user enters an empty line.
	Reminder string
}

// Run drives the loop. It returns nil on quit or end of input, the
// handler's error if one fails, or ctx.Err() if ctx ends between prompts.
func (l *Loop) Run(ctx context.Context, handle func(ctx context.Context, input string) error) error {
	scanner := bufio.NewScanner(l.In)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(l.Out, l.Prompt)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			return nil
		}

		input := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.EqualFold(input, QuitCommand) {
			return nil
		}
		if input == "" {
			if l.Reminder != "" {
				fmt.Fprintln(l.Out, l.Reminder)
			}
			continue
		}

		if err := handle(ctx, input); err != nil {
			return err
		}
	}
}
