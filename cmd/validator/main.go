package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	grpcMiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpcRecovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpcCtxTags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	grpcPrometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/goodnatureofminers/roadledger/internal/api"
	"github.com/goodnatureofminers/roadledger/internal/archive"
	"github.com/goodnatureofminers/roadledger/internal/clock"
	"github.com/goodnatureofminers/roadledger/internal/consensus"
	"github.com/goodnatureofminers/roadledger/internal/identity"
	"github.com/goodnatureofminers/roadledger/internal/metrics"
	"github.com/goodnatureofminers/roadledger/internal/repository/clickhouse"
	"github.com/goodnatureofminers/roadledger/internal/transport"
	"github.com/goodnatureofminers/roadledger/internal/transport/gossip"
	"github.com/goodnatureofminers/roadledger/internal/validator"
)

type config struct {
	ID         string            `long:"id" env:"ROADLEDGER_ID" description:"validator id" required:"true"`
	Proposer   string            `long:"proposer" env:"ROADLEDGER_PROPOSER" description:"proposer validator id; defaults to --id"`
	Validators map[string]string `long:"validator" env:"ROADLEDGER_VALIDATORS" env-delim:"," description:"peer validator as id:public-key, repeatable"`
	Attestor   string            `long:"attestor" env:"ROADLEDGER_ATTESTOR" description:"signature scheme" choice:"ecdsa" choice:"hash" default:"ecdsa"`
	SecretHex  string            `long:"secret-hex" env:"ROADLEDGER_SECRET_HEX" description:"hex secp256k1 private key of this validator; empty generates one"`

	ListenAddrs []string `long:"p2p-listen" env:"ROADLEDGER_P2P_LISTEN" env-delim:"," description:"libp2p listen multiaddr" default:"/ip4/0.0.0.0/tcp/4001"`
	Bootstrap   []string `long:"p2p-bootstrap" env:"ROADLEDGER_P2P_BOOTSTRAP" env-delim:"," description:"bootstrap peer multiaddr with /p2p id"`
	PeerKeyHex  string   `long:"p2p-key-hex" env:"ROADLEDGER_P2P_KEY_HEX" description:"hex Ed25519 libp2p key; empty generates one"`
	Topic       string   `long:"p2p-topic" env:"ROADLEDGER_P2P_TOPIC" description:"gossip topic" default:"/roadledger/validators/1"`
	PublishRate int      `long:"p2p-publish-rate" env:"ROADLEDGER_P2P_PUBLISH_RATE" description:"max envelopes published per second" default:"500"`

	GRPCAddr string `long:"grpc-addr" env:"ROADLEDGER_GRPC_ADDR" description:"gRPC health address" default:":8000"`
	RestAddr string `long:"rest-addr" env:"ROADLEDGER_REST_ADDR" description:"REST and metrics address" default:":8001"`

	ClickhouseDSN string `long:"clickhouse-dsn" env:"ROADLEDGER_CLICKHOUSE_DSN" description:"ClickHouse DSN; empty disables the archive"`

	LoopCapacity     int           `long:"loop-capacity" env:"ROADLEDGER_LOOP_CAPACITY" description:"event loop queue length" default:"4096"`
	AdaptiveInterval time.Duration `long:"adaptive-interval" env:"ROADLEDGER_ADAPTIVE_INTERVAL" description:"network parameter refresh interval" default:"5s"`
	LogJSON          bool          `long:"log-json" env:"ROADLEDGER_LOG_JSON" description:"emit JSON logs"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "failed to parse flags: %v\n", err)
		os.Exit(2)
	}

	logger, err := newLogger(cfg.LogJSON)
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	grpcZap.ReplaceGrpcLoggerV2(logger)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("validator failed", zap.Error(err))
	}
}

func newLogger(json bool) (*zap.Logger, error) {
	if json {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	logger = logger.With(zap.String("validator", cfg.ID))

	attestor, selfKey, err := newAttestor(cfg)
	if err != nil {
		return err
	}
	logger.Info("validator identity", zap.String("public_key", selfKey), zap.String("attestor", cfg.Attestor))

	nodeCfg := validator.DefaultConfig(cfg.ID, selfKey)
	if cfg.Proposer != "" {
		nodeCfg.ProposerID = cfg.Proposer
	}
	nodeCfg.Validators = members(cfg.ID, selfKey, cfg.Validators)
	nodeCfg.AdaptiveInterval = cfg.AdaptiveInterval

	loop := clock.NewLoop(logger.Named("loop"), cfg.LoopCapacity)

	var node *validator.Node
	gossipCfg := gossip.DefaultConfig()
	gossipCfg.ListenAddrs = cfg.ListenAddrs
	gossipCfg.Bootstrap = cfg.Bootstrap
	gossipCfg.PrivateKeyHex = cfg.PeerKeyHex
	gossipCfg.Topic = cfg.Topic
	gossipCfg.PublishRate = cfg.PublishRate
	peers, err := gossip.New(ctx, gossipCfg, cfg.ID, loop, func(e transport.Envelope) { node.Deliver(e) }, metrics.NewGossip(cfg.ID), logger)
	if err != nil {
		return fmt.Errorf("init gossip: %w", err)
	}
	defer func() {
		if err := peers.Close(); err != nil {
			logger.Warn("gossip close", zap.Error(err))
		}
	}()

	node, err = validator.NewNode(nodeCfg, loop, attestor, peers, validator.Instruments{
		Node:        metrics.NewValidator(cfg.ID),
		Batch:       metrics.NewBatchController(cfg.ID),
		Consensus:   metrics.NewConsensus(cfg.ID),
		Credibility: metrics.NewCredibility(cfg.ID),
	}, logger.Named("node"))
	if err != nil {
		return fmt.Errorf("init node: %w", err)
	}

	if cfg.ClickhouseDSN != "" {
		stopArchive, err := startArchive(ctx, cfg.ClickhouseDSN, node, logger)
		if err != nil {
			return err
		}
		defer stopArchive()
	}

	health, err := startAPI(ctx, cfg, node, loop, logger)
	if err != nil {
		return err
	}

	if err := loop.Post(health.Serving); err != nil {
		return err
	}
	err = loop.Run(ctx)
	health.Shutdown()
	node.Close()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("validator stopped")
	return nil
}

func newAttestor(cfg config) (validator.Attestor, string, error) {
	if cfg.Attestor == "hash" {
		a := identity.NewHashAttestor()
		return a, a.PublicKey(cfg.ID), nil
	}
	ring := identity.NewKeyRing()
	if cfg.SecretHex == "" {
		pub, err := ring.Generate(cfg.ID)
		return ring, pub, err
	}
	secret, err := hex.DecodeString(cfg.SecretHex)
	if err != nil {
		return nil, "", fmt.Errorf("decode secret: %w", err)
	}
	pub, err := ring.Import(cfg.ID, secret)
	return ring, pub, err
}

func members(self, selfKey string, peers map[string]string) []consensus.Member {
	keys := map[string]string{self: selfKey}
	for id, pk := range peers {
		if id != self {
			keys[id] = pk
		}
	}
	out := make([]consensus.Member, 0, len(keys))
	for id, pk := range keys {
		out = append(out, consensus.Member{ID: id, PublicKey: pk})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func startArchive(ctx context.Context, dsn string, node *validator.Node, logger *zap.Logger) (func(), error) {
	repo, err := clickhouse.NewRepository(dsn, metrics.NewClickhouseRepository())
	if err != nil {
		return nil, fmt.Errorf("init repository: %w", err)
	}
	writer, err := archive.NewWriter(repo, archive.DefaultConfig(), logger.Named("archive"))
	if err != nil {
		return nil, err
	}
	writer.WithMetrics(metrics.NewArchiveWriter(node.ID()))
	if err := writer.Start(ctx); err != nil {
		return nil, err
	}
	node.OnCommit(writer.Observe)
	return func() {
		writer.Stop()
		if err := repo.Close(); err != nil {
			logger.Warn("repository close", zap.Error(err))
		}
	}, nil
}

func startAPI(ctx context.Context, cfg config, node *validator.Node, loop *clock.Loop, logger *zap.Logger) (*api.Health, error) {
	chain := []grpc.UnaryServerInterceptor{
		grpcRecovery.UnaryServerInterceptor(),
		grpcCtxTags.UnaryServerInterceptor(),
		grpcPrometheus.UnaryServerInterceptor,
		grpcZap.UnaryServerInterceptor(logger),
	}
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(grpcMiddleware.ChainUnaryServer(chain...)),
	)
	health := api.NewHealth(grpcServer)
	grpcPrometheus.EnableHandlingTimeHistogram()
	grpcPrometheus.Register(grpcServer)

	socket, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", cfg.GRPCAddr, err)
	}
	go func() {
		if serveErr := grpcServer.Serve(socket); serveErr != nil {
			logger.Error("gRPC server stopped", zap.Error(serveErr))
		}
	}()
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down gRPC server")
		grpcServer.GracefulStop()
	}()

	handler, err := api.NewHandler(node, loop, logger.Named("api"))
	if err != nil {
		return nil, err
	}
	gw := gwruntime.NewServeMux()
	if err := handler.Register(gw); err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/", gw)
	mux.Handle("/metrics", promhttp.Handler())

	s := &http.Server{
		Addr:              cfg.RestAddr,
		Handler:           cors.Default().Handler(mux),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", cfg.RestAddr))
		if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Failed to listen and serve", zap.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()
	return health, nil
}
