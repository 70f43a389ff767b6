// Package gossip carries validator envelopes over a libp2p GossipSub topic.
package gossip

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/libp2p/go-libp2p"
	pubsub "github.com/libp2p/go-libp2p-pubsub"
	"github.com/libp2p/go-libp2p/core/crypto"
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/multiformats/go-multiaddr"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/roadledger/internal/clock"
	"github.com/goodnatureofminers/roadledger/internal/transport"
)

// ErrQueueFull is returned by Send when the publish queue has no room.
var ErrQueueFull = errors.New("gossip publish queue full")

type (
	// Poster hands a callback to the validator's event loop.
	Poster interface {
		Post(fn func()) error
	}
	Metrics interface {
		ObservePublish(kind string, err error)
		ObserveReceive(kind string)
	}
)

// Config configures the libp2p host and topic.
type Config struct {
	ListenAddrs []string
	Bootstrap   []string
	Topic       string
	// PrivateKeyHex is a hex Ed25519 private key; empty generates one.
	PrivateKeyHex     string
	PublishRate       int
	QueueCapacity     int
	BootstrapAttempts int
	BootstrapWait     time.Duration
	BootstrapMaxWait  time.Duration
}

// DefaultConfig returns a loopback listener on a random port.
func DefaultConfig() Config {
	return Config{
		ListenAddrs:       []string{"/ip4/127.0.0.1/tcp/0"},
		Topic:             "/roadledger/validators/1",
		PublishRate:       500,
		QueueCapacity:     4096,
		BootstrapAttempts: 5,
		BootstrapWait:     500 * time.Millisecond,
		BootstrapMaxWait:  8 * time.Second,
	}
}

// Transport publishes envelopes to the topic and posts received ones to the loop.
type Transport struct {
	self    string
	cfg     Config
	host    host.Host
	topic   *pubsub.Topic
	sub     *pubsub.Subscription
	limiter ratelimit.Limiter
	out     chan outbound
	senders senderPins
	poster  Poster
	handler transport.Handler
	metrics Metrics
	logger  *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type outbound struct {
	kind transport.Kind
	data []byte
}

// senderPins binds each validator id to the first libp2p peer that
// published as it.
type senderPins map[string]peer.ID

// admit reports whether publisher may speak for from.
func (p senderPins) admit(from string, publisher peer.ID) bool {
	pinned, ok := p[from]
	if !ok {
		p[from] = publisher
		return true
	}
	return pinned == publisher
}

// New starts a libp2p host, joins the topic and dials the bootstrap peers.
func New(
	ctx context.Context,
	cfg Config,
	self string,
	poster Poster,
	handler transport.Handler,
	metrics Metrics,
	logger *zap.Logger,
) (*Transport, error) {
	if poster == nil || handler == nil {
		return nil, errors.New("gossip poster and handler are required")
	}
	if metrics == nil {
		return nil, errors.New("gossip metrics is required")
	}
	if cfg.PublishRate <= 0 || cfg.QueueCapacity <= 0 {
		return nil, errors.New("gossip publish rate and queue capacity must be positive")
	}

	key, err := loadOrGenerateKey(cfg.PrivateKeyHex)
	if err != nil {
		return nil, err
	}
	h, err := libp2p.New(
		libp2p.Identity(key),
		libp2p.ListenAddrStrings(cfg.ListenAddrs...),
	)
	if err != nil {
		return nil, fmt.Errorf("libp2p host: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	fail := func(err error) (*Transport, error) {
		cancel()
		_ = h.Close()
		return nil, err
	}

	ps, err := pubsub.NewGossipSub(ctx, h, pubsub.WithFloodPublish(true))
	if err != nil {
		return fail(fmt.Errorf("gossipsub: %w", err))
	}
	topic, err := ps.Join(cfg.Topic)
	if err != nil {
		return fail(fmt.Errorf("join topic %s: %w", cfg.Topic, err))
	}
	sub, err := topic.Subscribe()
	if err != nil {
		return fail(fmt.Errorf("subscribe topic %s: %w", cfg.Topic, err))
	}

	t := &Transport{
		self:    self,
		cfg:     cfg,
		host:    h,
		topic:   topic,
		sub:     sub,
		limiter: ratelimit.New(cfg.PublishRate),
		out:     make(chan outbound, cfg.QueueCapacity),
		senders: make(senderPins),
		poster:  poster,
		handler: handler,
		metrics: metrics,
		logger:  logger.Named("gossip").With(zap.String("peer", h.ID().String())),
		ctx:     ctx,
		cancel:  cancel,
	}
	t.logger.Info("gossip host started", zap.Strings("addrs", t.Addrs()))

	for _, addr := range cfg.Bootstrap {
		if err := t.connect(ctx, addr); err != nil {
			t.logger.Warn("bootstrap peer unreachable", zap.String("addr", addr), zap.Error(err))
		}
	}

	t.wg.Add(2)
	go t.receive()
	go t.publish()
	return t, nil
}

// Addrs returns the dialable addresses of this host including its peer id.
func (t *Transport) Addrs() []string {
	out := make([]string, 0, len(t.host.Addrs()))
	for _, a := range t.host.Addrs() {
		out = append(out, a.String()+"/p2p/"+t.host.ID().String())
	}
	return out
}

// Send queues e for publishing without waiting. Every subscriber receives
// it; addressed envelopes are filtered on receipt.
func (t *Transport) Send(e transport.Envelope) error {
	e.From = t.self
	if e.SentAt.IsZero() {
		e.SentAt = time.Now().UTC()
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	select {
	case t.out <- outbound{kind: e.Kind, data: data}:
		return nil
	default:
		t.metrics.ObservePublish(string(e.Kind), ErrQueueFull)
		return fmt.Errorf("publish %s: %w", e.Kind, ErrQueueFull)
	}
}

func (t *Transport) publish() {
	defer t.wg.Done()
	for {
		select {
		case <-t.ctx.Done():
			return
		case m := <-t.out:
			t.limiter.Take()
			err := t.topic.Publish(t.ctx, m.data)
			t.metrics.ObservePublish(string(m.kind), err)
			if err != nil && t.ctx.Err() == nil {
				t.logger.Warn("envelope not published", zap.String("kind", string(m.kind)), zap.Error(err))
			}
		}
	}
}

// Close leaves the topic and shuts the host down.
func (t *Transport) Close() error {
	t.cancel()
	t.sub.Cancel()
	t.wg.Wait()
	if err := t.topic.Close(); err != nil {
		t.logger.Warn("topic close", zap.Error(err))
	}
	return t.host.Close()
}

func (t *Transport) connect(ctx context.Context, addr string) error {
	maddr, err := multiaddr.NewMultiaddr(addr)
	if err != nil {
		return fmt.Errorf("parse bootstrap address: %w", err)
	}
	info, err := peer.AddrInfoFromP2pAddr(maddr)
	if err != nil {
		return fmt.Errorf("bootstrap peer info: %w", err)
	}
	return clock.Retry(ctx, t.cfg.BootstrapAttempts, t.cfg.BootstrapWait, t.cfg.BootstrapMaxWait, func(ctx context.Context) error {
		return t.host.Connect(ctx, *info)
	})
}

func (t *Transport) receive() {
	defer t.wg.Done()
	for {
		msg, err := t.sub.Next(t.ctx)
		if err != nil {
			if t.ctx.Err() == nil {
				t.logger.Error("subscription ended", zap.Error(err))
			}
			return
		}
		if msg.ReceivedFrom == t.host.ID() {
			continue
		}
		e, ok, err := decodeEnvelope(msg.Data, t.self)
		if err != nil {
			t.logger.Warn("malformed envelope dropped", zap.String("from", msg.ReceivedFrom.String()), zap.Error(err))
			continue
		}
		if !ok {
			continue
		}
		if !t.senders.admit(e.From, msg.GetFrom()) {
			t.logger.Warn("envelope from impersonating peer dropped",
				zap.String("from", e.From),
				zap.String("publisher", msg.GetFrom().String()),
			)
			continue
		}
		t.metrics.ObserveReceive(string(e.Kind))
		if err := t.poster.Post(func() { t.handler(e) }); err != nil {
			t.logger.Warn("envelope not posted", zap.String("id", e.ID), zap.Error(err))
		}
	}
}

// decodeEnvelope parses data and reports whether it is meant for self.
func decodeEnvelope(data []byte, self string) (transport.Envelope, bool, error) {
	var e transport.Envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return transport.Envelope{}, false, fmt.Errorf("decode envelope: %w", err)
	}
	if e.ID == "" || e.Kind == "" || e.From == "" {
		return transport.Envelope{}, false, errors.New("envelope missing id, kind or sender")
	}
	if e.From == self {
		return e, false, nil
	}
	if !e.Broadcast() && e.To != self {
		return e, false, nil
	}
	return e, true, nil
}

func loadOrGenerateKey(privHex string) (crypto.PrivKey, error) {
	if privHex == "" {
		key, _, err := crypto.GenerateEd25519Key(nil)
		if err != nil {
			return nil, fmt.Errorf("generate peer key: %w", err)
		}
		return key, nil
	}
	raw, err := hex.DecodeString(privHex)
	if err != nil {
		return nil, fmt.Errorf("decode peer key: %w", err)
	}
	key, err := crypto.UnmarshalEd25519PrivateKey(raw)
	if err != nil {
		return nil, fmt.Errorf("unmarshal peer key: %w", err)
	}
	return key, nil
}
