package message

// Init is the first message a node receives. It names the node and lists every
// node in the cluster, the node itself included.
type Init struct {
	NodeID  string   `codec:"node_id"`
	NodeIDs []string `codec:"node_ids"`
}

// Type implements the Payload interface.
func (*Init) Type() string { return "init" }

// InitOk acknowledges an Init.
type InitOk struct{}

// Type implements the Payload interface.
func (*InitOk) Type() string { return "init_ok" }

// HandshakeVocabulary is the vocabulary of the first line of input.
var HandshakeVocabulary = Vocabulary{
	"init":    func() Payload { return &Init{} },
	"init_ok": func() Payload { return &InitOk{} },
}
