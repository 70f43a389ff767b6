// Package memory is an in-process transport driven by a scheduler, used to
// run several validators inside one test or simulation.
package memory

import (
	"fmt"
	"time"

	"github.com/goodnatureofminers/roadledger/internal/clock"
	"github.com/goodnatureofminers/roadledger/internal/transport"
)

// DropFunc decides whether an envelope headed to a peer is lost.
type DropFunc func(e transport.Envelope, to string) bool

// Network delivers envelopes after a fixed latency, in join order.
type Network struct {
	sched     clock.Scheduler
	latency   time.Duration
	order     []string
	endpoints map[string]*Endpoint
	drop      DropFunc
	delivered int
	dropped   int
}

// NewNetwork creates an empty network.
func NewNetwork(sched clock.Scheduler, latency time.Duration) *Network {
	return &Network{
		sched:     sched,
		latency:   latency,
		endpoints: make(map[string]*Endpoint),
	}
}

// SetDropFilter installs fn; nil delivers everything.
func (n *Network) SetDropFilter(fn DropFunc) {
	n.drop = fn
}

// Join attaches a peer. Joining twice replaces the handler.
func (n *Network) Join(id string, h transport.Handler) *Endpoint {
	if ep, ok := n.endpoints[id]; ok {
		ep.handler = h
		return ep
	}
	ep := &Endpoint{id: id, net: n, handler: h}
	n.endpoints[id] = ep
	n.order = append(n.order, id)
	return ep
}

// Stats returns the delivered and dropped envelope counts.
func (n *Network) Stats() (delivered, dropped int) {
	return n.delivered, n.dropped
}

func (n *Network) route(e transport.Envelope) error {
	if !e.Broadcast() {
		if _, ok := n.endpoints[e.To]; !ok {
			return fmt.Errorf("%w: %s", transport.ErrUnknownPeer, e.To)
		}
		n.schedule(e, e.To)
		return nil
	}
	for _, id := range n.order {
		if id != e.From {
			n.schedule(e, id)
		}
	}
	return nil
}

func (n *Network) schedule(e transport.Envelope, to string) {
	if n.drop != nil && n.drop(e, to) {
		n.dropped++
		return
	}
	n.sched.ScheduleAfter(n.latency, func() {
		ep, ok := n.endpoints[to]
		if !ok || ep.handler == nil {
			return
		}
		n.delivered++
		ep.handler(e)
	})
}

// Endpoint is one peer's attachment to the network.
type Endpoint struct {
	id      string
	net     *Network
	handler transport.Handler
}

// ID returns the peer id.
func (ep *Endpoint) ID() string {
	return ep.id
}

// Send routes e from this peer. From and SentAt are filled in.
func (ep *Endpoint) Send(e transport.Envelope) error {
	e.From = ep.id
	if e.SentAt.IsZero() {
		e.SentAt = ep.net.sched.Now()
	}
	return ep.net.route(e)
}
