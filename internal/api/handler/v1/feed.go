package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/wanfu-temple/temple-api/internal/api/handler/v1/response"
	"github.com/wanfu-temple/temple-api/internal/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production!
	},
}

type feedClient struct {
	conn       *websocket.Conn
	send       chan []byte
	campaignID uint
}

type FeedCampaignService interface {
	GetCampaign(ctx context.Context, id uint) (domain.Campaign, error)
}

// FeedHandler pushes campaign balance updates to subscribed
// websocket clients. It implements service.BalancePublisher.
type FeedHandler struct {
	svc          FeedCampaignService
	clients      map[*feedClient]bool
	clientsMutex sync.RWMutex
	broadcast    chan response.BalanceUpdate
	register     chan *feedClient
	unregister   chan *feedClient
}

func NewFeedHandler(svc FeedCampaignService) *FeedHandler {
	return &FeedHandler{
		svc:        svc,
		clients:    make(map[*feedClient]bool),
		broadcast:  make(chan response.BalanceUpdate, 16),
		register:   make(chan *feedClient),
		unregister: make(chan *feedClient),
	}
}

func (h *FeedHandler) Run() {
	for {
		select {
		case client := <-h.register:
			h.clientsMutex.Lock()
			h.clients[client] = true
			h.clientsMutex.Unlock()
		case client := <-h.unregister:
			h.clientsMutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.clientsMutex.Unlock()
		case update := <-h.broadcast:
			message, err := json.Marshal(update)
			if err != nil {
				zap.L().Error("failed to marshal balance update", zap.Error(err))
				continue
			}
			h.clientsMutex.Lock()
			for client := range h.clients {
				if client.campaignID != update.CampaignID {
					continue
				}
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.clientsMutex.Unlock()
		}
	}
}

// Publish queues a balance update for every client watching the
// campaign. It never blocks the caller; when the hub is saturated the
// update is dropped and the next committed change supersedes it.
func (h *FeedHandler) Publish(campaignID uint, remainingBalance int64) {
	update := response.BalanceUpdate{
		CampaignID:       campaignID,
		RemainingBalance: remainingBalance,
	}
	select {
	case h.broadcast <- update:
	default:
		zap.L().Warn("balance feed saturated, dropping update",
			zap.Uint("campaign_id", campaignID))
	}
}

// HandleFeed godoc
// @Summary      Subscribe to live balance updates for a campaign
// @Tags         campaigns
// @Produce      json
// @Param        campaignID path int true "campaign ID"
// @Success      101 {string} string "Switching Protocols to WebSocket"
// @Failure      400 {object} response.Err
// @Failure      404 {object} response.Err
// @Router       /campaigns/{campaignID}/feed [get]
func (h *FeedHandler) HandleFeed(ctx *gin.Context) {
	campaignID, err := strconv.ParseUint(ctx.Param("campaignID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	campaign, err := h.svc.GetCampaign(ctx.Request.Context(), uint(campaignID))
	if err != nil {
		response.RenderErr(ctx, response.ErrNotFound(err))
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Error("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &feedClient{
		conn:       conn,
		send:       make(chan []byte, 256),
		campaignID: campaign.ID,
	}
	h.register <- client

	go client.writePump()
	go client.readPump(h)

	// New subscribers see the current balance without waiting for the
	// next donation.
	snapshot, err := json.Marshal(response.BalanceUpdate{
		CampaignID:       campaign.ID,
		RemainingBalance: campaign.RemainingBalance,
	})
	if err == nil {
		client.send <- snapshot
	}
}

func (c *feedClient) writePump() {
	defer func() {
		c.conn.Close()
	}()
	for message := range c.send {
		w, err := c.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)
		if err := w.Close(); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump drains the connection so pings and close frames are
// processed; the feed is one-way and inbound payloads are discarded.
func (c *feedClient) readPump(h *FeedHandler) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Debug("feed connection closed", zap.Error(err))
			}
			break
		}
	}
}
