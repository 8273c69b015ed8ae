package bollywood

// Actor processes the messages of its mailbox one at a time.
type Actor interface {
	// Receive handles the message carried by ctx. It is never called concurrently
	// for the same actor instance.
	Receive(ctx Context)
}

// ActorFunc adapts a plain function to the Actor interface.
type ActorFunc func(ctx Context)

func (f ActorFunc) Receive(ctx Context) { f(ctx) }
