package main

import (
	"fmt"
	"strings"

	"github.com/jrsteele09/go-care-console/console"
)

var _ console.Surface = (*terminalSurface)(nil)

// terminalSurface renders controller output to stdout. It holds no state and
// no business logic.
type terminalSurface struct{}

func (terminalSurface) RenderEcho(turn console.EchoTurn) {
	if len(turn.AttachmentNames) > 0 {
		fmt.Printf("You (attached: %s):\n", strings.Join(turn.AttachmentNames, ", "))
	} else {
		fmt.Println("You:")
	}
	fmt.Printf("  %s\n", turn.Text)
}

func (terminalSurface) RenderReply(text string) {
	fmt.Println("Assistant:")
	fmt.Printf("  %s\n", text)
}

func (terminalSurface) RenderError(message string) {
	fmt.Printf("! %s\n", message)
}

func (terminalSurface) Navigate(target string) {
	fmt.Printf("-> %s\n", target)
}
