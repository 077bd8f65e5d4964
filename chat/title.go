package chat

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Title returns the conversation title, if one has been set or generated.
func (o *Orchestrator) Title() string {
	o.titleLock.Lock()
	defer o.titleLock.Unlock()
	return o.title
}

// SetCustomTitle pins a user-chosen title. Generated titles never overwrite
// a customized one.
func (o *Orchestrator) SetCustomTitle(title string) {
	o.titleLock.Lock()
	defer o.titleLock.Unlock()
	o.title = title
	o.titleCustomized = true
}

// generateTitle runs detached from SendTurn with its own error boundary.
func (o *Orchestrator) generateTitle(ctx context.Context, message string) {
	o.titleLock.Lock()
	customized := o.titleCustomized
	o.titleLock.Unlock()
	if customized {
		return
	}

	title, err := o.gw.GenerateTitle(ctx, message)
	if err != nil {
		log.Debug().Err(err).Msg("title generation failed")
		return
	}
	if title == "" {
		return
	}

	o.titleLock.Lock()
	defer o.titleLock.Unlock()
	if !o.titleCustomized {
		o.title = title
	}
}
