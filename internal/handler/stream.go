package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/osse101/PixelPet_Go/internal/game"
	"github.com/osse101/PixelPet_Go/internal/logger"
)

// Snapshot stream settings
const (
	SnapshotWriteTimeout = 5 * time.Second
	SnapshotBufferParam  = "buffer"
	MaxSnapshotBuffer    = 64
)

// HandleSnapshotStream upgrades to a WebSocket and pushes every snapshot the service publishes.
// The first message is the current snapshot. Client messages are ignored.
func HandleSnapshotStream(svc game.Service, originPatterns []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: originPatterns,
		})
		if err != nil {
			log.Warn(LogMsgStreamAcceptFail, "error", err)
			return
		}
		defer conn.CloseNow()

		buffer, err := strconv.Atoi(GetOptionalQueryParam(r, SnapshotBufferParam, "0"))
		if err != nil || buffer < 0 || buffer > MaxSnapshotBuffer {
			buffer = 0
		}

		snapshots, unsubscribe := svc.Subscribe(buffer)
		defer unsubscribe()

		// CloseRead cancels ctx once the peer goes away
		ctx := conn.CloseRead(r.Context())
		log.Info(LogMsgStreamOpened)

		for {
			select {
			case <-ctx.Done():
				log.Info(LogMsgStreamClosed)
				return
			case snap, ok := <-snapshots:
				if !ok {
					_ = conn.Close(websocket.StatusGoingAway, "shutting down")
					return
				}
				if err := writeSnapshot(ctx, conn, snap); err != nil {
					log.Warn(LogMsgStreamWriteFailed, "error", err)
					return
				}
			}
		}
	}
}

func writeSnapshot(ctx context.Context, conn *websocket.Conn, snap game.Snapshot) error {
	ctx, cancel := context.WithTimeout(ctx, SnapshotWriteTimeout)
	defer cancel()
	return wsjson.Write(ctx, conn, snap)
}
