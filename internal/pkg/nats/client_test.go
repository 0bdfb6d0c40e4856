package nats

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	natsserver "github.com/nats-io/nats-server/v2/test"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runTestServer(t *testing.T) *server.Server {
	opts := natsserver.DefaultTestOptions
	opts.Port = -1
	s := natsserver.RunServer(&opts)
	t.Cleanup(s.Shutdown)
	return s
}

func TestNewClient(t *testing.T) {
	t.Run("invalid address", func(t *testing.T) {
		client, err := NewClient("invalid://address", "test")
		assert.Error(t, err)
		assert.Nil(t, client)
		assert.Contains(t, err.Error(), "failed to connect to NATS server")
	})

	t.Run("connects", func(t *testing.T) {
		s := runTestServer(t)

		client, err := NewClient(s.ClientURL(), "test")
		require.NoError(t, err)
		defer client.Close()

		assert.True(t, client.IsConnected())
		assert.NotNil(t, client.GetConn())
	})
}

func TestClient_PublishJSON(t *testing.T) {
	s := runTestServer(t)

	client, err := NewClient(s.ClientURL(), "test")
	require.NoError(t, err)
	defer client.Close()

	received := make(chan *nats.Msg, 1)
	_, err = client.Subscribe("payment.completed", func(msg *nats.Msg) {
		received <- msg
	})
	require.NoError(t, err)
	require.NoError(t, client.GetConn().Flush())

	err = client.PublishJSON("payment.completed", map[string]string{"checkout_request_id": "ws_CO_1"})
	require.NoError(t, err)

	select {
	case msg := <-received:
		var body map[string]string
		require.NoError(t, json.Unmarshal(msg.Data, &body))
		assert.Equal(t, "ws_CO_1", body["checkout_request_id"])
	case <-time.After(2 * time.Second):
		t.Fatal("message not received")
	}
}

func TestClient_PublishJSON_MarshalError(t *testing.T) {
	s := runTestServer(t)

	client, err := NewClient(s.ClientURL(), "test")
	require.NoError(t, err)
	defer client.Close()

	err = client.PublishJSON("payment.completed", make(chan int))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to marshal message")
}

func TestClient_IsConnected_AfterShutdown(t *testing.T) {
	s := runTestServer(t)

	client, err := NewClient(s.ClientURL(), "test")
	require.NoError(t, err)
	defer client.Close()

	s.Shutdown()
	assert.Eventually(t, func() bool { return !client.IsConnected() }, 2*time.Second, 20*time.Millisecond)

	var nilClient Client
	assert.False(t, nilClient.IsConnected())
}

func TestClient_Close(t *testing.T) {
	s := runTestServer(t)

	client, err := NewClient(s.ClientURL(), "test")
	require.NoError(t, err)

	client.Close()

	assert.True(t, client.GetConn().IsClosed())
	assert.False(t, client.GetConn().IsDraining())
	assert.Error(t, client.Publish("payment.failed", []byte(`{}`)))

	assert.NotPanics(t, client.Close, "closing twice is a no-op")

	var nilClient Client
	assert.NotPanics(t, nilClient.Close)
}

func TestClient_Close_FlushesPendingPublishes(t *testing.T) {
	s := runTestServer(t)

	subscriber, err := NewClient(s.ClientURL(), "subscriber")
	require.NoError(t, err)
	defer subscriber.Close()

	received := make(chan struct{}, 100)
	_, err = subscriber.Subscribe("payment.completed", func(*nats.Msg) {
		received <- struct{}{}
	})
	require.NoError(t, err)
	require.NoError(t, subscriber.GetConn().Flush())

	publisher, err := NewClient(s.ClientURL(), "publisher")
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		require.NoError(t, publisher.Publish("payment.completed", []byte(`{}`)))
	}
	publisher.Close()

	for i := 0; i < 100; i++ {
		select {
		case <-received:
		case <-time.After(2 * time.Second):
			t.Fatalf("only %d of 100 events delivered", i)
		}
	}
}
