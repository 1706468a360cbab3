package node

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mosaicnetworks/gossamer/src/common"
	"github.com/mosaicnetworks/gossamer/src/message"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const testInit = `{"src":"c0","dest":"n1","body":{"type":"init","msg_id":1,"node_id":"n1","node_ids":["n1","n2"]}}`

type ping struct {
	Text string `codec:"text"`
}

func (*ping) Type() string { return "ping" }

type pong struct {
	Text string `codec:"text"`
}

func (*pong) Type() string { return "pong" }

// recorder replies pong to every ping and records every event it sees.
type recorder struct {
	sync.Mutex
	seq    *message.Sequence
	events []Event
	fail   bool
}

func (r *recorder) Step(ev Event, out message.Sender) error {
	r.Lock()
	r.events = append(r.events, ev)
	r.Unlock()

	if ev.Kind != Inbound {
		return nil
	}
	p, ok := ev.Message.Body.Payload.(*ping)
	if !ok {
		return nil
	}
	if r.fail && p.Text == "boom" {
		return errors.New("boom")
	}
	return out.Send(ev.Message.Reply(r.seq.NextID(), &pong{Text: p.Text}))
}

func (r *recorder) kinds() []EventKind {
	r.Lock()
	defer r.Unlock()
	res := make([]EventKind, len(r.events))
	for i, ev := range r.events {
		res[i] = ev.Kind
	}
	return res
}

func recorderKind(rec *recorder, onInit func(Injector)) Kind {
	return Kind{
		Name:       "recorder",
		Vocabulary: message.Vocabulary{"ping": func() message.Payload { return &ping{} }},
		New: func(init *message.Init, injector Injector, logger *logrus.Entry) (Node, error) {
			if onInit != nil {
				onInit(injector)
			}
			return rec, nil
		},
	}
}

type syncBuffer struct {
	sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.Lock()
	defer b.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) lines() []map[string]interface{} {
	b.Lock()
	defer b.Unlock()
	var res []map[string]interface{}
	for _, l := range strings.Split(strings.TrimSpace(b.buf.String()), "\n") {
		if l == "" {
			continue
		}
		m := map[string]interface{}{}
		if err := json.Unmarshal([]byte(l), &m); err != nil {
			panic(err)
		}
		res = append(res, m)
	}
	return res
}

// running is a Runner executing in the background.
type running struct {
	r        *Runner
	done     chan error
	err      error
	returned bool
}

// startRunner runs r in the background. The runner is shut down, and Run
// awaited, when the test ends.
func startRunner(t *testing.T, r *Runner) *running {
	rn := &running{r: r, done: make(chan error, 1)}
	go func() { rn.done <- r.Run() }()

	t.Cleanup(func() {
		r.Shutdown()
		if !rn.returned {
			<-rn.done
		}
	})

	return rn
}

// wait returns the result of Run, failing the test if Run does not return
// within timeout.
func (rn *running) wait(t *testing.T, timeout time.Duration) error {
	t.Helper()
	if rn.returned {
		return rn.err
	}
	select {
	case rn.err = <-rn.done:
		rn.returned = true
		return rn.err
	case <-time.After(timeout):
		t.Fatalf("Run did not return within %s", timeout)
		return nil
	}
}

// stillRunning reports whether Run is still running after d.
func (rn *running) stillRunning(d time.Duration) bool {
	if rn.returned {
		return false
	}
	select {
	case rn.err = <-rn.done:
		rn.returned = true
		return false
	case <-time.After(d):
		return true
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timeout waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHandshake(t *testing.T) {
	rec := &recorder{seq: message.NewSequence(1)}
	out := &syncBuffer{}
	input := testInit + "\n" + `{"src":"c0","dest":"n1","body":{"type":"ping","msg_id":2,"text":"hi"}}` + "\n"

	r := NewRunner(recorderKind(rec, nil), strings.NewReader(input), out, common.NewTestEntry(t, "runner"))
	startRunner(t, r)

	waitFor(t, "input to close", func() bool { return r.State() == InputClosed })

	lines := out.lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 output lines, got %d: %v", len(lines), lines)
	}

	initOk := lines[0]
	if initOk["src"] != "n1" || initOk["dest"] != "c0" {
		t.Fatalf("init_ok misaddressed: %v", initOk)
	}
	body := initOk["body"].(map[string]interface{})
	if body["type"] != "init_ok" {
		t.Fatalf("first line should be init_ok, got %v", body["type"])
	}
	if body["msg_id"] != float64(0) {
		t.Fatalf("init_ok msg_id should be 0, got %v", body["msg_id"])
	}
	if body["in_reply_to"] != float64(1) {
		t.Fatalf("init_ok in_reply_to should be 1, got %v", body["in_reply_to"])
	}

	pongBody := lines[1]["body"].(map[string]interface{})
	if pongBody["type"] != "pong" || pongBody["text"] != "hi" || pongBody["in_reply_to"] != float64(2) {
		t.Fatalf("unexpected reply: %v", lines[1])
	}

	if r.NodeID() != "n1" {
		t.Fatalf("NodeID should be n1, got %q", r.NodeID())
	}
}

func TestRunDoesNotStopAtEndOfInput(t *testing.T) {
	rec := &recorder{seq: message.NewSequence(1)}
	input := testInit + "\n" + `{"src":"c0","dest":"n1","body":{"type":"ping","msg_id":2,"text":"a"}}` + "\n"

	r := NewRunner(recorderKind(rec, nil), strings.NewReader(input), io.Discard, common.NewTestEntry(t, "runner"))
	rn := startRunner(t, r)

	waitFor(t, "input to close", func() bool { return r.State() == InputClosed })

	if !rn.stillRunning(50 * time.Millisecond) {
		t.Fatalf("Run returned at end of input: %v", rn.err)
	}

	kinds := rec.kinds()
	if len(kinds) != 2 || kinds[0] != Inbound || kinds[1] != EndOfInput {
		t.Fatalf("unexpected events: %v", kinds)
	}

	r.Shutdown()
	if err := rn.wait(t, time.Second); err != nil {
		t.Fatalf("Run should return nil after Shutdown, got %v", err)
	}
	if r.State() != Shutdown {
		t.Fatalf("state should be Shutdown, got %s", r.State())
	}
}

func TestInjectedEventsReachNode(t *testing.T) {
	rec := &recorder{seq: message.NewSequence(1)}
	pr, pw := io.Pipe()
	defer pw.Close()

	injected := make(chan Injector, 1)
	r := NewRunner(recorderKind(rec, func(inj Injector) { injected <- inj }), pr, io.Discard, common.NewTestEntry(t, "runner"))
	startRunner(t, r)

	if _, err := io.WriteString(pw, testInit+"\n"); err != nil {
		t.Fatal(err)
	}
	inj := <-injected

	for i := 0; i < 3; i++ {
		if err := inj.Inject("tick"); err != nil {
			t.Fatalf("Inject: %v", err)
		}
	}

	waitFor(t, "injected events", func() bool { return len(rec.kinds()) == 3 })

	rec.Lock()
	for _, ev := range rec.events {
		if ev.Kind != Injected || ev.Signal != "tick" {
			t.Fatalf("unexpected event %s", ev)
		}
	}
	rec.Unlock()

	r.Shutdown()
	if err := inj.Inject("tick"); errors.Cause(err) != ErrQueueClosed {
		t.Fatalf("Inject after Shutdown should fail with ErrQueueClosed, got %v", err)
	}
}

func TestHandshakeRejectsOtherMessages(t *testing.T) {
	cases := map[string]string{
		"init_ok": `{"src":"c0","dest":"n1","body":{"type":"init_ok","msg_id":1}}`,
		"unknown": `{"src":"c0","dest":"n1","body":{"type":"ping","msg_id":1,"text":"a"}}`,
		"garbage": `{{{`,
		"empty":   ``,
		"blank":   "\n" + testInit + "\n",
		"two":     testInit + testInit + "\n",
	}
	for name, line := range cases {
		t.Run(name, func(t *testing.T) {
			rec := &recorder{seq: message.NewSequence(1)}
			out := &syncBuffer{}
			r := NewRunner(recorderKind(rec, nil), strings.NewReader(line), out, common.NewTestEntry(t, "runner"))
			rn := startRunner(t, r)

			if err := rn.wait(t, time.Second); err == nil {
				t.Fatal("Run should fail")
			}
			if len(out.lines()) != 0 {
				t.Fatalf("nothing should be written, got %v", out.lines())
			}
		})
	}
}

func TestMalformedInputIsFatal(t *testing.T) {
	rec := &recorder{seq: message.NewSequence(1)}
	input := testInit + "\n" + `{"src":"c0","dest":"n1","body":{"type":"nope"}}` + "\n"

	r := NewRunner(recorderKind(rec, nil), strings.NewReader(input), io.Discard, common.NewTestEntry(t, "runner"))
	rn := startRunner(t, r)

	err := rn.wait(t, time.Second)
	if err == nil {
		t.Fatal("Run should fail on an unknown message type")
	}
	if _, ok := errors.Cause(err).(*message.UnknownTypeError); !ok {
		t.Fatalf("expected UnknownTypeError, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("error should locate the line: %v", err)
	}
	if len(rec.kinds()) != 0 {
		t.Fatalf("node should not see any event, got %v", rec.kinds())
	}
}

func TestTrailingDataIsFatal(t *testing.T) {
	pingLine := `{"src":"c0","dest":"n1","body":{"type":"ping","msg_id":2,"text":"a"}}`
	cases := map[string]string{
		"trailing":    pingLine + ` trailing garbage`,
		"two records": pingLine + pingLine,
	}
	for name, line := range cases {
		t.Run(name, func(t *testing.T) {
			rec := &recorder{seq: message.NewSequence(1)}
			input := testInit + "\n" + line + "\n"

			r := NewRunner(recorderKind(rec, nil), strings.NewReader(input), io.Discard, common.NewTestEntry(t, "runner"))
			rn := startRunner(t, r)

			err := rn.wait(t, time.Second)
			if err == nil {
				t.Fatal("Run should fail on a line holding more than one record")
			}
			if !strings.Contains(err.Error(), "line 2") {
				t.Fatalf("error should locate the line: %v", err)
			}
			if len(rec.kinds()) != 0 {
				t.Fatalf("node should not see any event, got %v", rec.kinds())
			}
		})
	}
}

func TestStepErrorIsFatal(t *testing.T) {
	rec := &recorder{seq: message.NewSequence(1), fail: true}
	input := testInit + "\n" + `{"src":"c0","dest":"n1","body":{"type":"ping","msg_id":2,"text":"boom"}}` + "\n"

	r := NewRunner(recorderKind(rec, nil), strings.NewReader(input), io.Discard, common.NewTestEntry(t, "runner"))
	rn := startRunner(t, r)

	err := rn.wait(t, time.Second)
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("Run should fail with the node error, got %v", err)
	}
}

func TestFactoryErrorIsFatal(t *testing.T) {
	kind := Kind{
		Name:       "broken",
		Vocabulary: message.Vocabulary{},
		New: func(*message.Init, Injector, *logrus.Entry) (Node, error) {
			return nil, errors.New("cannot build")
		},
	}
	out := &syncBuffer{}
	r := NewRunner(kind, strings.NewReader(testInit+"\n"), out, common.NewTestEntry(t, "runner"))
	rn := startRunner(t, r)

	if err := rn.wait(t, time.Second); err == nil {
		t.Fatal("Run should fail")
	}
	if len(out.lines()) != 0 {
		t.Fatal("init_ok should not be written when the node cannot be built")
	}
}

func TestGetStats(t *testing.T) {
	rec := &recorder{seq: message.NewSequence(1)}
	r := NewRunner(recorderKind(rec, nil), strings.NewReader(testInit+"\n"), io.Discard, common.NewTestEntry(t, "runner"))
	startRunner(t, r)

	waitFor(t, "input to close", func() bool { return r.State() == InputClosed })

	stats := r.GetStats()
	if stats["id"] != "n1" || stats["kind"] != "recorder" || stats["state"] != "InputClosed" {
		t.Fatalf("unexpected stats: %v", stats)
	}
	if stats["events"] != "1" {
		t.Fatalf("expected 1 event, got %s", stats["events"])
	}
}
