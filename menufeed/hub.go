package menufeed

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rasamenu/menu-app/models"
)

// Event types pushed to connected menu boards.
const (
	EventMenuItemUpdate = "menu_item_update"
	EventMenuItemDelete = "menu_item_delete"
	EventCategoryUpdate = "category_update"
	EventCategoryDelete = "category_delete"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected menu feed client (menu boards, admin dashboards)
// and fans broadcast messages out to all of them.
type Hub struct {
	clients map[*websocket.Conn]bool
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]bool),
}

func RegisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = true
}

func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastMenuItemUpdate pushes a created or changed menu item to every client.
func BroadcastMenuItemUpdate(item models.MenuItem) {
	broadcast(Message{Event: EventMenuItemUpdate, Data: item})
}

// BroadcastMenuItemDelete announces a removed menu item by id.
func BroadcastMenuItemDelete(itemID uint) {
	broadcast(Message{Event: EventMenuItemDelete, Data: map[string]uint{"id": itemID}})
}

func BroadcastCategoryUpdate(category models.Category) {
	broadcast(Message{Event: EventCategoryUpdate, Data: category})
}

func BroadcastCategoryDelete(categoryID uint) {
	broadcast(Message{Event: EventCategoryDelete, Data: map[string]uint{"id": categoryID}})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			// Drop broken connections, the client will reconnect.
			delete(hub.clients, conn)
			conn.Close()
		}
	}
}
