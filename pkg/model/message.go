package model

// Message is a reference to a localizable message. It is a closed variant:
// Literal, Resolvable, or Compiled. Anything else is rejected with
// ErrInvalidMessageKind by consumers.
type Message interface {
	message()
}

// Literal is a fixed string that needs no resolution or formatting.
type Literal string

func (Literal) message() {}

// Resolvable is a message that must be resolved against a locale before it
// can be formatted. Resolution yields either a Literal or a Compiled message.
type Resolvable interface {
	Message
	Resolve(locale string) (Message, error)
}

// ResolveFunc adapts a plain function to the Resolvable interface.
type ResolveFunc func(locale string) (Message, error)

func (ResolveFunc) message() {}

// Resolve invokes the wrapped function.
func (f ResolveFunc) Resolve(locale string) (Message, error) {
	return f(locale)
}

// Compiled wraps a compiled template as a Message.
type Compiled struct {
	Template Template
}

func (Compiled) message() {}
