package ws

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/cropfresh/cropfresh-service-notification/internal/domain"
)

// Connection wraps websocket.Conn with metadata
type Connection struct {
	Conn     *websocket.Conn
	FarmerID string
	LastSeen time.Time
}

type Manager struct {
	mu          sync.RWMutex
	connections map[string]map[*Connection]struct{} // farmerID -> set of connections
}

func NewManager() *Manager {
	return &Manager{
		connections: make(map[string]map[*Connection]struct{}),
	}
}

// Add registers a connection for a farmer
func (m *Manager) Add(farmerID string, conn *websocket.Conn) *Connection {
	c := &Connection{Conn: conn, FarmerID: farmerID, LastSeen: time.Now()}

	m.mu.Lock()
	if _, ok := m.connections[farmerID]; !ok {
		m.connections[farmerID] = make(map[*Connection]struct{})
	}
	m.connections[farmerID][c] = struct{}{}
	m.mu.Unlock()

	log.Printf("WS connected: %s (total=%d)", farmerID, len(m.connections[farmerID]))
	return c
}

// Remove disconnects and removes a connection
func (m *Manager) Remove(c *Connection) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if conns, ok := m.connections[c.FarmerID]; ok {
		delete(conns, c)
		if len(conns) == 0 {
			delete(m.connections, c.FarmerID)
		}
	}
	_ = c.Conn.Close()
	log.Printf("WS disconnected: %s", c.FarmerID)
}

// Send pushes a stored in-app notification to every open connection of a
// farmer. Quiet hours never apply here; the feed mirrors the in-app store.
func (m *Manager) Send(farmerID string, n *domain.InAppNotification) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if conns, ok := m.connections[farmerID]; ok {
		for c := range conns {
			if err := c.Conn.WriteJSON(n); err != nil {
				log.Printf("⚠️ failed WS send to %s: %v", farmerID, err)
				go m.Remove(c)
			}
		}
	}
}

// Heartbeat pings all connections periodically to keep them alive
func (m *Manager) Heartbeat(interval time.Duration) {
	ticker := time.NewTicker(interval)
	for range ticker.C {
		m.mu.RLock()
		for _, conns := range m.connections {
			for c := range conns {
				if time.Since(c.LastSeen) > 2*interval {
					go m.Remove(c)
					continue
				}
				_ = c.Conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(time.Second))
			}
		}
		m.mu.RUnlock()
	}
}
