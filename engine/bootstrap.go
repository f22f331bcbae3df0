package engine

// BootstrapChannel performs the one-shot handshake that activates a
// RenderEndpoint: it delivers the compiled module payload into the render
// context, which instantiates the generator and transitions to Ready.
type BootstrapChannel struct {
	inbox chan<- renderMessage
}

// NewBootstrapChannel returns a bootstrap channel targeting r.
func NewBootstrapChannel(r *RenderEndpoint) *BootstrapChannel {
	return &BootstrapChannel{inbox: r.inbox}
}

// Deliver hands the payload to the render context and blocks until it is
// serviced, returning the bootstrap outcome. The render side must be pumping
// (RenderBlock being called) for the delivery to complete; early audio
// callbacks before that simply produce silence. Delivering to an endpoint
// that is already Ready fails with ErrAlreadyBootstrapped and leaves the
// endpoint untouched.
func (b *BootstrapChannel) Deliver(payload []byte) error {
	ack := make(chan error, 1)
	b.inbox <- bootstrapMessage{payload: payload, ack: ack}
	return <-ack
}
