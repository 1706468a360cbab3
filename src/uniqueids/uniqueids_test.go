package uniqueids

import (
	"fmt"
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

func generate(id int) node.Event {
	return node.InboundEvent(&message.Envelope{
		Source:      "c1",
		Destination: "n1",
		Body:        message.Body{MessageID: message.ID(id), Payload: &Generate{}},
	})
}

func TestGenerate(t *testing.T) {
	n := New("n1", common.NewTestEntry(t, "unique-ids"))
	out := &outbox{}

	require.NoError(t, n.Step(generate(5), out))

	require.Len(t, out.sent, 1)
	reply := out.sent[0]
	require.Equal(t, "c1", reply.Destination)
	require.Equal(t, 5, *reply.Body.InReplyTo)
	require.Equal(t, "n1-1", reply.Body.Payload.(*GenerateOk).ID)
	require.Equal(t, 1, *reply.Body.MessageID)
}

func TestGeneratedIDsAreUniqueAcrossNodes(t *testing.T) {
	seen := map[string]bool{}

	for _, self := range []string{"n1", "n2", "n11"} {
		n := New(self, common.NewTestEntry(t, "unique-ids"))
		out := &outbox{}
		for i := 0; i < 100; i++ {
			require.NoError(t, n.Step(generate(1), out))
		}
		require.NoError(t, n.Step(node.EndOfInputEvent(), out))

		for _, e := range out.sent {
			id := e.Body.Payload.(*GenerateOk).ID
			require.False(t, seen[id], "duplicate id %s", id)
			seen[id] = true
		}
	}

	require.Len(t, seen, 300)
	require.True(t, seen[fmt.Sprintf("n11-%d", 100)])
}
