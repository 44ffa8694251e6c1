package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Theshakkymeister/Bitrader-sub001/internal/market"
	"github.com/Theshakkymeister/Bitrader-sub001/internal/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// broadcastEvery is how often the hub pushes a quote snapshot to clients.
// Deliberately faster than the tick interval so a freshly connected
// dashboard paints without waiting for the next tick.
const broadcastEvery = 3 * time.Second

// WSMessage is the client-to-server subscription control message.
type WSMessage struct {
	Type    string   `json:"type"`    // "subscribe", "unsubscribe"
	Symbols []string `json:"symbols"` // ["AAPL", "BTC"]
}

type QuoteClient struct {
	hub         *QuoteHub
	conn        *websocket.Conn
	send        chan []byte
	symbols     map[string]bool // subscribed symbols; empty = all
	symbolsLock sync.RWMutex
}

// QuoteHub fans simulator snapshots out to connected dashboards.
type QuoteHub struct {
	sim        *market.Simulator
	clients    map[*QuoteClient]bool
	broadcast  chan []models.Quote
	register   chan *QuoteClient
	unregister chan *QuoteClient
	mu         sync.RWMutex
}

func NewQuoteHub(sim *market.Simulator) *QuoteHub {
	return &QuoteHub{
		sim:        sim,
		clients:    make(map[*QuoteClient]bool),
		broadcast:  make(chan []models.Quote, 16),
		register:   make(chan *QuoteClient),
		unregister: make(chan *QuoteClient),
	}
}

func (h *QuoteHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.Printf("Quote client connected. Total clients: %d", len(h.clients))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			log.Printf("Quote client disconnected. Total clients: %d", len(h.clients))

		case quotes := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				filtered := client.filterQuotes(quotes)
				if len(filtered) == 0 {
					continue
				}

				data, err := json.Marshal(filtered)
				if err != nil {
					log.Printf("Error marshaling quotes: %v", err)
					continue
				}

				select {
				case client.send <- data:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// StartQuoteBroadcaster pushes the current snapshot into the broadcast
// channel on a fixed cadence.
func (h *QuoteHub) StartQuoteBroadcaster() {
	ticker := time.NewTicker(broadcastEvery)
	defer ticker.Stop()

	for range ticker.C {
		prices := h.sim.GetAllPrices()
		quotes := make([]models.Quote, 0, len(prices))
		for _, q := range prices {
			quotes = append(quotes, q)
		}
		sort.Slice(quotes, func(i, j int) bool { return quotes[i].Symbol < quotes[j].Symbol })

		h.broadcast <- quotes
	}
}

// ServeWS upgrades the connection and registers the client with the hub.
func (h *QuoteHub) ServeWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &QuoteClient{
		hub:     h,
		conn:    conn,
		send:    make(chan []byte, 256),
		symbols: make(map[string]bool),
	}

	h.register <- client

	go client.writePump()
	go client.readPump()
}

// filterQuotes returns only the quotes the client subscribed to; with no
// subscriptions the client receives everything.
func (c *QuoteClient) filterQuotes(quotes []models.Quote) []models.Quote {
	c.symbolsLock.RLock()
	defer c.symbolsLock.RUnlock()

	if len(c.symbols) == 0 {
		return quotes
	}

	var filtered []models.Quote
	for _, q := range quotes {
		if c.symbols[q.Symbol] {
			filtered = append(filtered, q)
		}
	}
	return filtered
}

func (c *QuoteClient) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *QuoteClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var wsMsg WSMessage
		if err := json.Unmarshal(message, &wsMsg); err != nil {
			log.Printf("Error parsing message: %v", err)
			continue
		}

		c.handleMessage(wsMsg)
	}
}

func (c *QuoteClient) handleMessage(msg WSMessage) {
	c.symbolsLock.Lock()
	defer c.symbolsLock.Unlock()

	switch msg.Type {
	case "subscribe":
		for _, symbol := range msg.Symbols {
			// Only symbols in the trading universe are subscribable
			if _, ok := c.hub.sim.GetPrice(symbol); !ok {
				log.Printf("Rejected subscription to unknown symbol: %s", symbol)
				continue
			}
			c.symbols[symbol] = true
		}

	case "unsubscribe":
		for _, symbol := range msg.Symbols {
			delete(c.symbols, symbol)
		}

	default:
		log.Printf("Unknown message type: %s", msg.Type)
	}
}
