package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startNATS(t *testing.T) *server.Server {
	t.Helper()
	ns, err := server.NewServer(&server.Options{
		Port:      -1,
		JetStream: true,
		StoreDir:  t.TempDir(),
		NoLog:     true,
		NoSigs:    true,
	})
	require.NoError(t, err)
	go ns.Start()
	if !ns.ReadyForConnections(10 * time.Second) {
		t.Fatal("embedded NATS server not ready")
	}
	t.Cleanup(ns.Shutdown)
	return ns
}

func testConfig(url string) JetStreamConfig {
	cfg := DefaultJetStreamConfig()
	cfg.URL = url
	cfg.Storage = jetstream.MemoryStorage
	cfg.MaxReconnects = 0
	return cfg
}

func TestJetStreamPublisherPublishes(t *testing.T) {
	ns := startNATS(t)
	ctx := context.Background()

	p, err := NewJetStreamPublisher(ctx, testConfig(ns.ClientURL()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	sessionID := uuid.New()
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	ev, err := New(sessionID, EventRunCompleted, RunCompletedPayload{
		SessionID: sessionID.String(),
		ShareCode: "ABC234",
		TeamScore: 55.5,
	}, at)
	require.NoError(t, err)

	require.NoError(t, p.Publish(ctx, ev))
	// Same id inside the duplicate window is dropped by the server.
	require.NoError(t, p.Publish(ctx, ev))

	nc, err := nats.Connect(ns.ClientURL())
	require.NoError(t, err)
	defer nc.Close()
	js, err := jetstream.New(nc)
	require.NoError(t, err)

	stream, err := js.Stream(ctx, "LINEUP_EVENTS")
	require.NoError(t, err)
	info, err := stream.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), info.State.Msgs)

	msg, err := stream.GetMsg(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "lineup.events.RunCompleted", msg.Subject)
	assert.Equal(t, sessionID.String(), msg.Header.Get("Session-ID"))
	assert.Equal(t, EventRunCompleted, msg.Header.Get("Event-Type"))

	var env struct {
		EventID   string              `json:"eventId"`
		SessionID string              `json:"sessionId"`
		Payload   RunCompletedPayload `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(msg.Data, &env))
	assert.Equal(t, ev.ID.String(), env.EventID)
	assert.Equal(t, "ABC234", env.Payload.ShareCode)
	assert.Equal(t, 55.5, env.Payload.TeamScore)
}

func TestJetStreamPublisherReusesStream(t *testing.T) {
	ns := startNATS(t)
	ctx := context.Background()

	first, err := NewJetStreamPublisher(ctx, testConfig(ns.ClientURL()))
	require.NoError(t, err)
	require.NoError(t, first.Close())

	cfg := testConfig(ns.ClientURL())
	cfg.MaxAge = time.Hour
	second, err := NewJetStreamPublisher(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	info, err := second.js.Stream(ctx, cfg.StreamName)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, info.CachedInfo().Config.MaxAge)
}

func TestNewJetStreamPublisherUnreachable(t *testing.T) {
	cfg := testConfig("nats://127.0.0.1:1")
	_, err := NewJetStreamPublisher(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), Event{}))
	assert.NoError(t, p.Close())
}
