package handlers

import (
	"log"
	"sync"
)

// ClientManager manages connected clients
type ClientManager struct {
	clients map[string]*ClientHandler // Map session ID to ClientHandler
	mutex   sync.RWMutex
}

// NewClientManager creates a new client manager
func NewClientManager() *ClientManager {
	return &ClientManager{
		clients: make(map[string]*ClientHandler),
	}
}

// AddClient adds a client to the manager. A session that reconnects replaces its
// old handler, whose travel is stopped.
func (cm *ClientManager) AddClient(sessionID string, handler *ClientHandler) {
	cm.mutex.Lock()
	old := cm.clients[sessionID]
	cm.clients[sessionID] = handler
	cm.mutex.Unlock()

	if old != nil && old != handler {
		old.Close()
	}
}

// RemoveClient removes a client from the manager. It reports false when the
// session has since been taken over by another handler.
func (cm *ClientManager) RemoveClient(sessionID string, handler *ClientHandler) bool {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()
	if cm.clients[sessionID] != handler {
		return false
	}
	delete(cm.clients, sessionID)
	return true
}

// Count is the number of connected sessions
func (cm *ClientManager) Count() int {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()
	return len(cm.clients)
}

// BroadcastToAll sends a message to all connected clients
func (cm *ClientManager) BroadcastToAll(msg interface{}) {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	for id, client := range cm.clients {
		if err := client.conn.SendMessage(msg); err != nil {
			log.Printf("Error broadcasting to client %s: %v", id, err)
		}
	}
}
