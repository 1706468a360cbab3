package kafka

import (
	"github.com/mosaicnetworks/gossamer/src/message"
)

// Send appends Msg to the log of Key.
type Send struct {
	Key string `codec:"key"`
	Msg int    `codec:"msg"`
}

type SendOk struct {
	Offset int `codec:"offset"`
}

// Poll requests, for every key, the messages from the given offset on.
type Poll struct {
	Offsets map[string]int `codec:"offsets"`
}

// PollOk lists [offset, msg] pairs per key, by ascending offset.
type PollOk struct {
	Msgs map[string][][2]int `codec:"msgs"`
}

type CommitOffsets struct {
	Offsets map[string]int `codec:"offsets"`
}

type CommitOffsetsOk struct{}

type ListCommittedOffsets struct {
	Keys []string `codec:"keys"`
}

// ListCommittedOffsetsOk omits keys that were never committed.
type ListCommittedOffsetsOk struct {
	Offsets map[string]int `codec:"offsets"`
}

func (*Send) Type() string                   { return "send" }
func (*SendOk) Type() string                 { return "send_ok" }
func (*Poll) Type() string                   { return "poll" }
func (*PollOk) Type() string                 { return "poll_ok" }
func (*CommitOffsets) Type() string          { return "commit_offsets" }
func (*CommitOffsetsOk) Type() string        { return "commit_offsets_ok" }
func (*ListCommittedOffsets) Type() string   { return "list_committed_offsets" }
func (*ListCommittedOffsetsOk) Type() string { return "list_committed_offsets_ok" }

// Vocabulary lists the messages understood by a kafka node.
var Vocabulary = message.Vocabulary{
	"send":                      func() message.Payload { return &Send{} },
	"send_ok":                   func() message.Payload { return &SendOk{} },
	"poll":                      func() message.Payload { return &Poll{} },
	"poll_ok":                   func() message.Payload { return &PollOk{} },
	"commit_offsets":            func() message.Payload { return &CommitOffsets{} },
	"commit_offsets_ok":         func() message.Payload { return &CommitOffsetsOk{} },
	"list_committed_offsets":    func() message.Payload { return &ListCommittedOffsets{} },
	"list_committed_offsets_ok": func() message.Payload { return &ListCommittedOffsetsOk{} },
}
