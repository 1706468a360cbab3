package message

import "fmt"

// Payload is the typed content of a message body. Type returns the wire tag
// that identifies the payload.
type Payload interface {
	Type() string
}

// Vocabulary maps the type tags understood by a node kind to constructors of
// the corresponding payloads. Constructors must return pointers.
type Vocabulary map[string]func() Payload

// With returns a new Vocabulary containing the entries of v and other. Entries
// of other win on conflicts.
func (v Vocabulary) With(other Vocabulary) Vocabulary {
	res := make(Vocabulary, len(v)+len(other))
	for t, f := range v {
		res[t] = f
	}
	for t, f := range other {
		res[t] = f
	}
	return res
}

// Body is the content of an Envelope. MessageID is unique per sender and
// InReplyTo correlates a reply with the request that caused it. Both are
// optional.
type Body struct {
	MessageID *int
	InReplyTo *int
	Payload   Payload
}

// Envelope is a message addressed from one peer to another.
type Envelope struct {
	Source      string
	Destination string
	Body        Body
}

// Reply returns an Envelope travelling back to the sender of e, correlated
// with e through InReplyTo.
func (e *Envelope) Reply(id *int, payload Payload) *Envelope {
	return &Envelope{
		Source:      e.Destination,
		Destination: e.Source,
		Body: Body{
			MessageID: id,
			InReplyTo: e.Body.MessageID,
			Payload:   payload,
		},
	}
}

// Type returns the type tag of the payload, or an empty string if there is
// none.
func (e *Envelope) Type() string {
	if e.Body.Payload == nil {
		return ""
	}
	return e.Body.Payload.Type()
}

func (e *Envelope) String() string {
	return fmt.Sprintf("%s->%s %s", e.Source, e.Destination, e.Type())
}

// ID returns a pointer to a copy of i, for use as a MessageID or InReplyTo.
func ID(i int) *int {
	return &i
}

// Sender is the output side of a node. Implementations write one Envelope per
// call.
type Sender interface {
	Send(e *Envelope) error
}

// Sequence hands out message ids. It is not safe for concurrent use; a
// Sequence belongs to the goroutine that steps the node.
type Sequence struct {
	next int
}

// NewSequence returns a Sequence whose first id is start.
func NewSequence(start int) *Sequence {
	return &Sequence{next: start}
}

// Next returns the current id and advances the sequence.
func (s *Sequence) Next() int {
	id := s.next
	s.next++
	return id
}

// NextID is Next wrapped for use as a Body.MessageID.
func (s *Sequence) NextID() *int {
	return ID(s.Next())
}
