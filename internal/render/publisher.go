package render

// Publisher hands frames from the tick loop to a surface. It holds at most
// one frame; publishing replaces an unread frame instead of blocking, so a
// slow surface skips frames rather than stalling the simulation.
type Publisher struct {
	ch chan Frame
}

// NewPublisher creates an empty publisher.
func NewPublisher() *Publisher {
	return &Publisher{ch: make(chan Frame, 1)}
}

// Publish offers f, dropping any frame not yet taken.
func (p *Publisher) Publish(f Frame) {
	for {
		select {
		case p.ch <- f:
			return
		default:
		}
		select {
		case <-p.ch:
		default:
		}
	}
}

// Frames returns the channel surfaces read from.
func (p *Publisher) Frames() <-chan Frame {
	return p.ch
}
