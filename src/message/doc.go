// Package message defines the envelopes exchanged by Gossamer nodes and the
// codec that maps them to and from the line-delimited wire format.
//
// Wire format
//
// Every message is a single JSON object on its own line:
//
//	{"src":"c1","dest":"n1","body":{"type":"broadcast","msg_id":7,"message":42}}
//
// The body carries two optional bookkeeping fields, msg_id and in_reply_to,
// and the fields of the payload flattened next to them. The type field
// discriminates the payload. Which type tags are legal depends on the kind of
// node being run; each kind declares a Vocabulary that maps tags to payload
// constructors, and decoding a tag outside the vocabulary is an error.
//
// Wire names (dest, msg_id, ...) never leave this package: node logic only
// sees Envelope, Body and typed Payloads.
package message
