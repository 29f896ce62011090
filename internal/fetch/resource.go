package fetch

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
)

// Snapshot is the externally visible state of a Resource.
type Snapshot struct {
	Data    json.RawMessage
	Loading bool
	Err     string
}

// Resource tracks one remote JSON document: data, loading flag, last error.
// It is the server-side analogue of a reactive fetch hook. Each Refetch is
// tagged with a generation counter and a completion that no longer matches
// the current generation is discarded, so a slow early request can never
// overwrite the result of a later one.
type Resource struct {
	client *Client
	method string
	url    string
	body   []byte

	mu      sync.Mutex
	gen     uint64
	snap    Snapshot
	subs    map[int]func(Snapshot)
	nextSub int
}

func NewResource(client *Client, url string) *Resource {
	return &Resource{
		client: client,
		method: http.MethodGet,
		url:    url,
		subs:   make(map[int]func(Snapshot)),
	}
}

// Snapshot returns the current state.
func (r *Resource) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snap
}

// Subscribe registers fn for state changes and returns a cancel func.
// fn is called outside the resource lock.
func (r *Resource) Subscribe(fn func(Snapshot)) func() {
	r.mu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subs[id] = fn
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		delete(r.subs, id)
		r.mu.Unlock()
	}
}

// Refetch starts a new load. The returned channel closes when this request
// settles, whether its result was applied or discarded as stale.
func (r *Resource) Refetch(ctx context.Context) <-chan struct{} {
	r.mu.Lock()
	r.gen++
	gen := r.gen
	r.snap.Loading = true
	r.snap.Err = ""
	snap := r.snap
	subs := r.subscribers()
	r.mu.Unlock()

	notify(subs, snap)

	done := make(chan struct{})
	go func() {
		defer close(done)

		raw, err := r.client.Do(ctx, r.method, r.url, r.body)
		var data json.RawMessage
		var errMsg string
		if err != nil {
			errMsg = err.Error()
		} else {
			var envelope struct {
				Data json.RawMessage `json:"data"`
			}
			if uerr := json.Unmarshal(raw, &envelope); uerr != nil {
				errMsg = uerr.Error()
			} else {
				data = envelope.Data
			}
		}

		r.mu.Lock()
		if gen != r.gen {
			// a newer Refetch superseded this one
			r.mu.Unlock()
			return
		}
		if errMsg != "" {
			r.snap = Snapshot{Data: r.snap.Data, Loading: false, Err: errMsg}
		} else {
			r.snap = Snapshot{Data: data, Loading: false}
		}
		snap := r.snap
		subs := r.subscribers()
		r.mu.Unlock()

		notify(subs, snap)
	}()
	return done
}

func (r *Resource) subscribers() []func(Snapshot) {
	out := make([]func(Snapshot), 0, len(r.subs))
	for _, fn := range r.subs {
		out = append(out, fn)
	}
	return out
}

func notify(subs []func(Snapshot), snap Snapshot) {
	for _, fn := range subs {
		fn(snap)
	}
}
