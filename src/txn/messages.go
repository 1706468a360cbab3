// Package txn implements a node serving a key-value store with atomic,
// multi-operation transactions.
package txn

import (
	"fmt"

	"github.com/mosaicnetworks/gossamer/src/message"
)

// Operation kinds.
const (
	Read  = "r"
	Write = "w"
)

// Op is a single operation of a transaction, encoded as [kind, key, value].
// Value is null for a read request and for a read of a missing key.
type Op struct {
	_struct bool `codec:",toarray"`

	Kind  string
	Key   int
	Value *int
}

func (o Op) String() string {
	if o.Value == nil {
		return fmt.Sprintf("[%s %d nil]", o.Kind, o.Key)
	}
	return fmt.Sprintf("[%s %d %d]", o.Kind, o.Key, *o.Value)
}

// Txn requests the atomic execution of a list of operations.
type Txn struct {
	Txn []Op `codec:"txn"`
}

// TxnOk lists the operations of a Txn with the values of reads filled in.
type TxnOk struct {
	Txn []Op `codec:"txn"`
}

func (*Txn) Type() string   { return "txn" }
func (*TxnOk) Type() string { return "txn_ok" }

// Vocabulary lists the messages understood by a txn node.
var Vocabulary = message.Vocabulary{
	"txn":    func() message.Payload { return &Txn{} },
	"txn_ok": func() message.Payload { return &TxnOk{} },
}
