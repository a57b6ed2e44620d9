package channels

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"

	"github.com/dialogiq/dialogiq/internal/bus"
	"github.com/dialogiq/dialogiq/internal/config"
)

// SlackChannel receives events API callbacks and replies through the
// message bus. The Slack channel id doubles as the session id.
type SlackChannel struct {
	signingSecret string
	client        *slack.Client
	bus           *bus.MessageBus
}

// NewSlackChannel creates the Slack channel and subscribes it to
// outbound replies.
func NewSlackChannel(cfg config.SlackConfig, b *bus.MessageBus) *SlackChannel {
	c := &SlackChannel{
		signingSecret: cfg.SigningSecret,
		client:        slack.New(cfg.BotToken),
		bus:           b,
	}
	b.Subscribe(c.Name(), func(reply *bus.OutboundReply) {
		if err := c.send(context.Background(), reply.SessionID, reply.Content); err != nil {
			slog.Error("Failed to send Slack reply", "session", reply.SessionID, "error", err)
		}
	})
	return c
}

// Name identifies the channel on the bus.
func (c *SlackChannel) Name() string { return "slack" }

// Mount registers POST /slack/events.
func (c *SlackChannel) Mount(r chi.Router) {
	r.Post("/slack/events", c.handleEvents)
}

func (c *SlackChannel) send(ctx context.Context, channelID, content string) error {
	_, _, err := c.client.PostMessageContext(ctx, channelID, slack.MsgOptionText(content, false))
	return err
}

func (c *SlackChannel) handleEvents(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	sv, err := slack.NewSecretsVerifier(r.Header, c.signingSecret)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if _, err := sv.Write(body); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if err := sv.Ensure(); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	event, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if event.Type == slackevents.URLVerification {
		var challenge slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &challenge); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(challenge.Challenge))
		return
	}

	if event.Type == slackevents.CallbackEvent {
		switch ev := event.InnerEvent.Data.(type) {
		case *slackevents.MessageEvent:
			// Skip our own messages to avoid reply loops.
			if ev.BotID != "" {
				break
			}
			c.bus.PublishInbound(&bus.InboundTurn{
				Channel:   c.Name(),
				SessionID: ev.Channel,
				Content:   ev.Text,
			})
		case *slackevents.AppMentionEvent:
			c.bus.PublishInbound(&bus.InboundTurn{
				Channel:   c.Name(),
				SessionID: ev.Channel,
				Content:   ev.Text,
			})
		}
	}

	w.WriteHeader(http.StatusOK)
}
