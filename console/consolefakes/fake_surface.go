package consolefakes

import (
	"sync"

	"github.com/jrsteele09/go-care-console/console"
)

var _ console.Surface = (*FakeSurface)(nil)

// FakeSurface records every render call for assertions.
type FakeSurface struct {
	lock sync.Mutex

	Echoes      []console.EchoTurn
	Replies     []string
	Errors      []string
	Navigations []string

	// OnEcho, when set, runs inside RenderEcho (for ordering assertions).
	OnEcho func(console.EchoTurn)
}

func NewFakeSurface() *FakeSurface {
	return &FakeSurface{}
}

func (fs *FakeSurface) RenderEcho(turn console.EchoTurn) {
	fs.lock.Lock()
	fs.Echoes = append(fs.Echoes, turn)
	onEcho := fs.OnEcho
	fs.lock.Unlock()
	if onEcho != nil {
		onEcho(turn)
	}
}

func (fs *FakeSurface) RenderReply(text string) {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.Replies = append(fs.Replies, text)
}

func (fs *FakeSurface) RenderError(message string) {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.Errors = append(fs.Errors, message)
}

func (fs *FakeSurface) Navigate(target string) {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.Navigations = append(fs.Navigations, target)
}
