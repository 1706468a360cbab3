package node

import (
	"io"

	"github.com/mosaicnetworks/gossamer/src/message"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// handshake consumes the first line of input, which must be an init message,
// replies init_ok and builds the node. It runs before any producer is started.
func (r *Runner) handshake(dec *message.Decoder) (Node, *logrus.Entry, error) {
	req, err := dec.DecodeLine(message.HandshakeVocabulary)
	if err == io.EOF {
		return nil, nil, errors.New("input closed before init")
	}
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading init")
	}

	init, ok := req.Body.Payload.(*message.Init)
	if !ok {
		return nil, nil, errors.Errorf("expected init, got %s", req)
	}

	r.setNodeID(init.NodeID)
	logger := r.logger.WithField("node", init.NodeID)
	logger.WithField("nodes", init.NodeIDs).Debug("Init")

	n, err := r.kind.New(init, r.queue, logger)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "initialising %s node", r.kind.Name)
	}

	if err := r.out.Send(req.Reply(message.ID(0), &message.InitOk{})); err != nil {
		return nil, nil, errors.Wrap(err, "replying to init")
	}

	return n, logger, nil
}
