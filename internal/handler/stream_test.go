package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PixelPet_Go/internal/domain"
	"github.com/osse101/PixelPet_Go/internal/game"
)

func dialStream(t *testing.T, svc game.Service, query string) (*websocket.Conn, context.Context) {
	t.Helper()
	srv := httptest.NewServer(HandleSnapshotStream(svc, nil))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + query
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.CloseNow() })
	return conn, ctx
}

func TestHandleSnapshotStream(t *testing.T) {
	t.Run("Pushes snapshots in order", func(t *testing.T) {
		ch := make(chan game.Snapshot, 2)
		ch <- game.Snapshot{Identity: "0xabc", Connected: true}
		ch <- game.Snapshot{Identity: "0xabc", Connected: true, IsLoading: true, Game: domain.GameState{Coins: 42}}
		var unsubscribed atomic.Bool

		svc := &MockGameService{}
		svc.On("Subscribe", 8).Return((<-chan game.Snapshot)(ch), func() { unsubscribed.Store(true) })

		conn, ctx := dialStream(t, svc, "?buffer=8")

		var first, second game.Snapshot
		require.NoError(t, wsjson.Read(ctx, conn, &first))
		require.NoError(t, wsjson.Read(ctx, conn, &second))
		assert.Equal(t, "0xabc", first.Identity)
		assert.False(t, first.IsLoading)
		assert.True(t, second.IsLoading)
		assert.Equal(t, int64(42), second.Game.Coins)

		require.NoError(t, conn.Close(websocket.StatusNormalClosure, ""))
		assert.Eventually(t, unsubscribed.Load, time.Second, 10*time.Millisecond)
		svc.AssertExpectations(t)
	})

	t.Run("Closes when the service shuts down", func(t *testing.T) {
		ch := make(chan game.Snapshot)
		close(ch)

		svc := &MockGameService{}
		svc.On("Subscribe", 0).Return((<-chan game.Snapshot)(ch), func() {})

		conn, ctx := dialStream(t, svc, "?buffer=999")

		var snap game.Snapshot
		err := wsjson.Read(ctx, conn, &snap)
		require.Error(t, err)
		assert.Equal(t, websocket.StatusGoingAway, websocket.CloseStatus(err))
		svc.AssertExpectations(t)
	})
}
