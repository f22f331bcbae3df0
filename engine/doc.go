// Package engine connects a real-time render context to a non-real-time
// control context through an ownership-transferring message protocol.
//
// The RenderEndpoint lives on the audio callback path. It never blocks and
// never allocates: pending control messages are drained non-blockingly at the
// top of each RenderBlock, and every reply channel is buffered so sends from
// the render side cannot stall. Sample buffers are handed across the boundary
// by moving the slices themselves; nothing is shared while a request is in
// flight.
//
// The ControlEndpoint keeps at most one mirror request outstanding: it sends
// its buffer pair, waits for the reply, copies the result into stable display
// storage and re-issues the same pair. Backpressure is implicit; if the render
// side stops servicing requests the display freezes while audio continues.
//
// A RenderEndpoint starts Uninitialized and produces silence until a
// BootstrapChannel delivers a module payload, which instantiates the noise
// generator behind an opaque handle and flips the endpoint to Ready. The
// transition is one-way; a second bootstrap is rejected.
package engine
