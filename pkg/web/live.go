package web

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/WardenStudios/WardenBotGo/pkg/logger"
	"github.com/WardenStudios/WardenBotGo/pkg/models"
	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

// liveClient is one dashboard websocket subscriber. A non-empty
// guildID restricts the feed to that guild's events.
type liveClient struct {
	conn    *websocket.Conn
	guildID string
	mu      sync.Mutex
}

// LiveFeed broadcasts escalation events to connected dashboard
// websocket clients. It implements the engine's event sink contract:
// publishing never blocks the escalation pipeline.
type LiveFeed struct {
	clients  map[*liveClient]struct{}
	mu       sync.RWMutex
	upgrader websocket.Upgrader
}

var (
	liveFeed     *LiveFeed
	liveFeedOnce sync.Once
)

// GetLiveFeed returns the global live feed instance
func GetLiveFeed() *LiveFeed {
	liveFeedOnce.Do(func() {
		liveFeed = &LiveFeed{
			clients: make(map[*liveClient]struct{}),
			upgrader: websocket.Upgrader{
				ReadBufferSize:  1024,
				WriteBufferSize: 1024,
				// The API key middleware already gates this endpoint
				CheckOrigin: func(r *http.Request) bool { return true },
			},
		}
	})
	return liveFeed
}

// Handler upgrades the request to a websocket and subscribes it until
// the client disconnects
func (f *LiveFeed) Handler(c *gin.Context) {
	conn, err := f.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn(fmt.Sprintf("Websocket upgrade failed: %v", err), "LiveFeed")
		return
	}

	client := &liveClient{conn: conn, guildID: c.Query("guildId")}

	f.mu.Lock()
	f.clients[client] = struct{}{}
	count := len(f.clients)
	f.mu.Unlock()

	logger.Info(fmt.Sprintf("Live feed client connected (%d active)", count), "LiveFeed")

	// Drain reads so close frames and pings are processed; the feed is
	// write-only from the server side.
	go func() {
		defer f.remove(client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// remove unsubscribes and closes a client
func (f *LiveFeed) remove(client *liveClient) {
	f.mu.Lock()
	if _, ok := f.clients[client]; ok {
		delete(f.clients, client)
		client.conn.Close()
	}
	count := len(f.clients)
	f.mu.Unlock()

	logger.Info(fmt.Sprintf("Live feed client disconnected (%d active)", count), "LiveFeed")
}

// ClientCount returns the number of connected clients
func (f *LiveFeed) ClientCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.clients)
}

// PublishEscalation broadcasts one escalation event to every
// subscriber interested in its guild. Write failures drop the client.
func (f *LiveFeed) PublishEscalation(event models.EscalationEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to marshal escalation event: %v", err), "LiveFeed")
		return
	}

	f.mu.RLock()
	clients := make([]*liveClient, 0, len(f.clients))
	for client := range f.clients {
		clients = append(clients, client)
	}
	f.mu.RUnlock()

	for _, client := range clients {
		if client.guildID != "" && client.guildID != event.GuildID {
			continue
		}
		client.mu.Lock()
		err := client.conn.WriteMessage(websocket.TextMessage, payload)
		client.mu.Unlock()
		if err != nil {
			f.remove(client)
		}
	}
}
