package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// FakeReply scripts one response of a FakeClient. Err wins over the body.
type FakeReply struct {
	JSON json.RawMessage
	Text string
	Err  error
}

// FakeClient replays scripted replies in order for offline tests. It
// records every request it received; once the script runs out it keeps
// returning the last reply.
type FakeClient struct {
	mu       sync.Mutex
	script   []FakeReply
	requests []Request
}

func NewFakeClient(script ...FakeReply) *FakeClient {
	return &FakeClient{script: script}
}

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) GenerateJSON(ctx context.Context, req Request) (json.RawMessage, error) {
	r := f.take(req)
	if r.Err != nil {
		return nil, r.Err
	}
	if r.JSON == nil {
		return json.RawMessage(`{}`), nil
	}
	return r.JSON, nil
}

func (f *FakeClient) GenerateText(ctx context.Context, req Request) (string, error) {
	r := f.take(req)
	if r.Err != nil {
		return "", r.Err
	}
	return r.Text, nil
}

// Calls reports how many requests reached the fake.
func (f *FakeClient) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// Request returns the i-th recorded request.
func (f *FakeClient) Request(i int) Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[i]
}

func (f *FakeClient) take(req Request) FakeReply {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if len(f.script) == 0 {
		return FakeReply{}
	}
	r := f.script[0]
	if len(f.script) > 1 {
		f.script = f.script[1:]
	}
	return r
}
