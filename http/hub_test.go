package http_test

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AmKilopa/KlpGIT"
	klphttp "github.com/AmKilopa/KlpGIT/http"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) klphttp.Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg klphttp.Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHub(t *testing.T) {
	t.Parallel()

	t.Run("broadcasts to every client", func(t *testing.T) {
		t.Parallel()

		hub := klphttp.NewHub(nil)
		srv := httptest.NewServer(newServer(newRepo(), klphttp.WithHub(hub)).Handler())
		t.Cleanup(srv.Close)

		a, b := dial(t, srv), dial(t, srv)
		require.Eventually(t, func() bool { return hub.Len() == 2 }, 5*time.Second, 10*time.Millisecond)

		hub.Broadcast("status", map[string]string{"branch": "main"})

		for _, conn := range []*websocket.Conn{a, b} {
			msg := readMessage(t, conn)
			assert.Equal(t, "status", msg.Event)
			assert.Equal(t, map[string]any{"branch": "main"}, msg.Data)
		}
	})

	t.Run("drops closed clients", func(t *testing.T) {
		t.Parallel()

		hub := klphttp.NewHub(nil)
		srv := httptest.NewServer(newServer(newRepo(), klphttp.WithHub(hub)).Handler())
		t.Cleanup(srv.Close)

		conn := dial(t, srv)
		require.Eventually(t, func() bool { return hub.Len() == 1 }, 5*time.Second, 10*time.Millisecond)

		require.NoError(t, conn.Close())

		assert.Eventually(t, func() bool { return hub.Len() == 0 }, 5*time.Second, 10*time.Millisecond)
	})

	t.Run("pings idle clients", func(t *testing.T) {
		t.Parallel()

		hub := klphttp.NewHub(nil, klphttp.WithPingInterval(20*time.Millisecond))
		srv := httptest.NewServer(newServer(newRepo(), klphttp.WithHub(hub)).Handler())
		t.Cleanup(srv.Close)

		conn := dial(t, srv)
		pinged := make(chan struct{}, 1)
		conn.SetPingHandler(func(string) error {
			select {
			case pinged <- struct{}{}:
			default:
			}
			return nil
		})
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		select {
		case <-pinged:
		case <-time.After(5 * time.Second):
			t.Fatal("no ping")
		}
	})

	t.Run("status broadcast after commit", func(t *testing.T) {
		t.Parallel()

		repo := newRepo()
		repo.CommitAndPushFn = func(ctx context.Context, message string, files []string) (*klpgit.CommitResult, error) {
			return &klpgit.CommitResult{Hash: "abc1234", Branch: "main"}, nil
		}
		hub := klphttp.NewHub(nil)
		srv := httptest.NewServer(newServer(repo, klphttp.WithHub(hub)).Handler())
		t.Cleanup(srv.Close)

		conn := dial(t, srv)
		require.Eventually(t, func() bool { return hub.Len() == 1 }, 5*time.Second, 10*time.Millisecond)

		resp, err := srv.Client().Post(srv.URL+"/api/submit", "application/json", strings.NewReader(`{"message":"x"}`))
		require.NoError(t, err)
		_ = resp.Body.Close()

		msg := readMessage(t, conn)
		assert.Equal(t, "status", msg.Event)
	})

	t.Run("rejects cross-origin handshake", func(t *testing.T) {
		t.Parallel()

		hub := klphttp.NewHub(nil)
		srv := httptest.NewServer(newServer(newRepo(), klphttp.WithHub(hub)).Handler())
		t.Cleanup(srv.Close)
		url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

		_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"http://evil.example"}})
		require.ErrorIs(t, err, websocket.ErrBadHandshake)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, 0, hub.Len())

		conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {srv.URL}})
		require.NoError(t, err)
		_ = conn.Close()
	})
}

func TestServer_Serve(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- newServer(newRepo()).Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/info")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Serve did not return")
	}
}
