// SPDX-License-Identifier: MPL-2.0

package discovery

// Pending is an index build running in the background. The result is handed
// over once the build finishes; until then no part of it is visible.
type Pending struct {
	done   chan struct{}
	result Result
}

// Start runs BuildIndex on its own goroutine. The build cannot be canceled;
// callers that lose interest simply drop the Pending.
func (d *Discovery) Start() *Pending {
	p := &Pending{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		p.result = d.BuildIndex()
	}()
	return p
}

// Done returns a channel closed when the build has finished.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the build finishes and returns its result.
func (p *Pending) Wait() Result {
	<-p.done
	return p.result
}

// Poll returns the result if the build has finished, without blocking.
func (p *Pending) Poll() (Result, bool) {
	select {
	case <-p.done:
		return p.result, true
	default:
		return Result{}, false
	}
}
