// Copyright (c) Microsoft. All rights reserved.

package cli

import (
	"io"

	"github.com/muesli/termenv"
)

// ClearScreen clears the console when w is a terminal and does nothing
// otherwise, so redirected output stays free of escape sequences.
func ClearScreen(w io.Writer) {
	if !isTerminal(w) {
		return
	}
	termenv.NewOutput(w).ClearScreen()
}
