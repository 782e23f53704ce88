package vnovel

import "github.com/rs/zerolog"

// progressor receives human-readable progress updates from long-running
// generation steps.
type progressor interface {
	UpdateOutput(message string)
}

type nullProgressor struct{}

func (n nullProgressor) UpdateOutput(message string) {}

// logProgressor forwards progress updates to a zerolog logger.
type logProgressor struct {
	log zerolog.Logger
}

func newLogProgressor(log zerolog.Logger) *logProgressor {
	return &logProgressor{log: log}
}

func (p *logProgressor) UpdateOutput(message string) {
	p.log.Info().Msg(message)
}
