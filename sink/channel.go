package sink

import "github.com/Shilin036/root-simple-mcmc"

// Channel is an mcmc.Sink that forwards each Record onto a Go
// channel, decoupling the sampler's goroutine from whatever consumes
// the chain (a writer, a live plot, a streaming aggregator). The
// source macro has no equivalent: TSimpleMCMC only ever wrote directly
// to a TTree on the same thread. Channel sends are blocking; a slow
// consumer throttles the sampler, which is the desired behavior since
// the core has no buffering story of its own.
//
// The caller owns Records and must keep reading from it while the
// sampler runs, or the sampler will block in Sink.Emit forever once
// the buffer is full.
type Channel struct {
	Records chan mcmc.Record
}

// NewChannel returns a Channel with a buffer of the given size (0 for
// unbuffered).
func NewChannel(buffer int) *Channel {
	return &Channel{Records: make(chan mcmc.Record, buffer)}
}

// Emit implements mcmc.Sink.
func (c *Channel) Emit(r mcmc.Record) {
	c.Records <- r
}

// Close closes the underlying channel. It must only be called after
// the sampler that owns this Sink has stopped stepping.
func (c *Channel) Close() {
	close(c.Records)
}
