package engine

import (
	"fmt"
	"sync"
)

// ControlEndpoint maintains a continuously refreshed snapshot of mirror
// samples for display. It owns exactly two buffer pairs: the stable display
// pair, guarded by a mutex for the repaint loop, and the exchange pair that
// shuttles to the render side and back. At most one request is outstanding.
type ControlEndpoint struct {
	inbox chan<- renderMessage
	reply chan MirrorReply

	mu           sync.RWMutex
	displayLeft  []float32
	displayRight []float32

	// Exchange pair; nil while ownership is with the render side.
	exchangeLeft  []float32
	exchangeRight []float32

	stopOnce sync.Once
	stop     chan struct{}
}

// NewControlEndpoint returns a control endpoint mirroring blockSize samples
// per channel from r. Call Run to start the exchange loop.
func NewControlEndpoint(r *RenderEndpoint, blockSize int) (*ControlEndpoint, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("mirror block size must be > 0: %d", blockSize)
	}
	return &ControlEndpoint{
		inbox:         r.inbox,
		reply:         make(chan MirrorReply, 1),
		displayLeft:   make([]float32, blockSize),
		displayRight:  make([]float32, blockSize),
		exchangeLeft:  make([]float32, blockSize),
		exchangeRight: make([]float32, blockSize),
		stop:          make(chan struct{}),
	}, nil
}

// Run loops the mirror exchange until Close: transfer the buffer pair to the
// render side, wait for the reply, copy fresh samples into display storage,
// re-issue. Run never has more than one request in flight, so it can never
// outpace the render side. It blocks and belongs on a non-real-time
// goroutine; it returns once Close is called.
func (c *ControlEndpoint) Run() {
	for {
		req := mirrorMessage{left: c.exchangeLeft, right: c.exchangeRight, reply: c.reply}
		c.exchangeLeft, c.exchangeRight = nil, nil

		select {
		case c.inbox <- req:
		case <-c.stop:
			return
		}

		select {
		case rep := <-c.reply:
			c.exchangeLeft, c.exchangeRight = rep.Left, rep.Right
			if rep.Filled {
				c.mu.Lock()
				copy(c.displayLeft, rep.Left)
				copy(c.displayRight, rep.Right)
				c.mu.Unlock()
			}
		case <-c.stop:
			return
		}
	}
}

// Snapshot copies the most recent display samples into left and right.
// Safe to call from any goroutine, typically the host repaint loop.
func (c *ControlEndpoint) Snapshot(left, right []float32) {
	c.mu.RLock()
	copy(left, c.displayLeft)
	copy(right, c.displayRight)
	c.mu.RUnlock()
}

// BlockSize returns the mirror block length per channel.
func (c *ControlEndpoint) BlockSize() int {
	return len(c.displayLeft)
}

// Close makes a running exchange loop return. Safe to call more than once.
func (c *ControlEndpoint) Close() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
}
