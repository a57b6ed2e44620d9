// Package gateway runs the long-lived conversational front: the message
// bus, the enabled channels, and the engine loop that feeds them.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dialogiq/dialogiq/internal/bus"
	"github.com/dialogiq/dialogiq/internal/channels"
	"github.com/dialogiq/dialogiq/internal/config"
	"github.com/dialogiq/dialogiq/internal/dialogue"
)

// Gateway wires channels, bus, and engine together.
type Gateway struct {
	cfg    *config.Config
	engine *dialogue.Engine
	bus    *bus.MessageBus
	router chi.Router
}

// New builds the gateway with the HTTP channel always on and Slack when
// configured.
func New(cfg *config.Config, engine *dialogue.Engine) *Gateway {
	g := &Gateway{
		cfg:    cfg,
		engine: engine,
		bus:    bus.NewMessageBus(),
	}

	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"healthy","inbound":%d,"outbound":%d,"sessions":%d,"actions":%d}`,
			g.bus.InboundSize(), g.bus.OutboundSize(), engine.SessionCount(), len(engine.ActionNames()))
	})

	mounted := []channels.Channel{channels.NewHTTPChannel(g.handleTurn, engine)}
	if cfg.Channels.Slack.Enabled {
		mounted = append(mounted, channels.NewSlackChannel(cfg.Channels.Slack, g.bus))
	}
	for _, ch := range mounted {
		ch.Mount(r)
		slog.Info("Channel mounted", "channel", ch.Name())
	}

	g.router = r
	return g
}

// handleTurn is the synchronous path used by the HTTP channel.
func (g *Gateway) handleTurn(ctx context.Context, sessionID, message string) []string {
	return g.engine.HandleTurn(ctx, sessionID, message)
}

// Handler exposes the gateway router, mainly for tests.
func (g *Gateway) Handler() http.Handler { return g.router }

// Run serves until the context is cancelled. Bus-fed channels are
// processed one turn at a time by the engine loop.
func (g *Gateway) Run(ctx context.Context) error {
	go func() {
		if err := g.bus.DispatchOutbound(ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("Outbound dispatcher stopped", "error", err)
		}
	}()
	go g.engineLoop(ctx)

	addr := fmt.Sprintf("%s:%d", g.cfg.Gateway.Host, g.cfg.Gateway.Port)
	server := &http.Server{Addr: addr, Handler: g.router}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Gateway listening", "addr", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (g *Gateway) engineLoop(ctx context.Context) {
	for {
		turn, err := g.bus.ConsumeInbound(ctx)
		if err != nil {
			return
		}
		if turn.TraceID == "" {
			turn.TraceID = uuid.NewString()
		}
		sessionKey := turn.Channel + ":" + turn.SessionID
		replies := g.engine.HandleTurn(ctx, sessionKey, turn.Content)
		for _, reply := range replies {
			g.bus.PublishOutbound(&bus.OutboundReply{
				Channel:   turn.Channel,
				SessionID: turn.SessionID,
				TraceID:   turn.TraceID,
				Content:   reply,
			})
		}
	}
}
