package bollywood

// Producer creates a fresh actor instance.
type Producer func() Actor

// Props describes how to create an actor.
type Props struct {
	producer    Producer
	mailboxSize int
}

// NewProps creates Props with the given producer and the default mailbox size.
func NewProps(producer Producer) *Props {
	if producer == nil {
		panic("bollywood: producer cannot be nil")
	}
	return &Props{producer: producer, mailboxSize: defaultMailboxSize}
}

// WithMailboxSize overrides the mailbox capacity.
func (p *Props) WithMailboxSize(size int) *Props {
	if size > 0 {
		p.mailboxSize = size
	}
	return p
}

func (p *Props) Produce() Actor {
	return p.producer()
}
