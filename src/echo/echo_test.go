package echo

import (
	"testing"

	"github.com/mosaicnetworks/gossamer/src/common"
	"github.com/mosaicnetworks/gossamer/src/message"
	"github.com/mosaicnetworks/gossamer/src/node"
	"github.com/stretchr/testify/require"
)

type outbox struct {
	sent []*message.Envelope
}

func (o *outbox) Send(e *message.Envelope) error {
	o.sent = append(o.sent, e)
	return nil
}

func TestEcho(t *testing.T) {
	n := New(common.NewTestEntry(t, "echo"))
	out := &outbox{}

	for i, text := range []string{"hello", "", "again"} {
		req := &message.Envelope{
			Source:      "c1",
			Destination: "n1",
			Body:        message.Body{MessageID: message.ID(10 + i), Payload: &Echo{Echo: text}},
		}
		require.NoError(t, n.Step(node.InboundEvent(req), out))
	}

	require.Len(t, out.sent, 3)
	for i, e := range out.sent {
		require.Equal(t, "n1", e.Source)
		require.Equal(t, "c1", e.Destination)
		require.Equal(t, 10+i, *e.Body.InReplyTo)
		require.Equal(t, 1+i, *e.Body.MessageID)
	}
	require.Equal(t, "again", out.sent[2].Body.Payload.(*EchoOk).Echo)
}

func TestEchoIgnoresEndOfInput(t *testing.T) {
	n := New(common.NewTestEntry(t, "echo"))
	require.NoError(t, n.Step(node.EndOfInputEvent(), &outbox{}))
}

func TestEchoRejectsSignals(t *testing.T) {
	n := New(common.NewTestEntry(t, "echo"))
	require.Error(t, n.Step(node.InjectedEvent("tick"), &outbox{}))
}
