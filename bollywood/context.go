package bollywood

// Context gives an actor access to the engine while it handles one message.
type Context interface {
	// Engine returns the engine running this actor.
	Engine() *Engine
	// Self returns the PID of the actor processing the message.
	Self() *PID
	// Sender returns the PID of the sender, or nil.
	Sender() *PID
	// Message returns the message being processed.
	Message() interface{}
	// Reply sends msg back to the sender. It is a no-op when there is no sender.
	Reply(msg interface{})
}

type context struct {
	engine  *Engine
	self    *PID
	sender  *PID
	message interface{}
}

func (c *context) Engine() *Engine      { return c.engine }
func (c *context) Self() *PID           { return c.self }
func (c *context) Sender() *PID         { return c.sender }
func (c *context) Message() interface{} { return c.message }

func (c *context) Reply(msg interface{}) {
	if c.sender == nil {
		return
	}
	c.engine.Send(c.sender, msg, c.self)
}
