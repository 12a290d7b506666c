package pace

// Surface is the redraw-request capability consumed by the scheduler. Calling
// RequestRedraw is the scheduler's only observable effect; requests are
// expected to be idempotent and coalescing on the surface side.
type Surface interface {
	RequestRedraw()
}

// SurfaceFunc adapts a plain function to the Surface interface.
type SurfaceFunc func()

// RequestRedraw calls f.
func (f SurfaceFunc) RequestRedraw() { f() }

// Router exposes the subset of dispatcher behaviour the signal binding relies
// on. Having it as an interface lets us inject recorded or remote routers.
type Router interface {
	Subscribe(listener Listener)
	Unsubscribe(listener Listener)
	Broadcast(event Event)
}

// SignalTarget is the set of scheduler operations a signal binding drives.
type SignalTarget interface {
	NotifyActivity()
	NotifyQuiescence()
	ResetToFast()
}
