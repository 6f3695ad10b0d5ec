package ui

import "mircp/internal/stats"

// quietPresenter consumes events but produces no output.
type quietPresenter struct {
	stats *stats.Collector
	tally tally
}

func (p *quietPresenter) Run(events <-chan Event) error {
	for ev := range events {
		p.tally.observe(ev)
		if p.tally.complete() {
			return nil
		}
	}
	return nil
}

func (p *quietPresenter) Summary() string {
	return ""
}
