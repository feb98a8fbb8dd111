package controller

import (
	"encoding/json"
	"log"

	"github.com/chesscore/chess-server/internal/service"
	"github.com/chesscore/chess-server/internal/ws"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{gameService: gameService}
}

// HandleConnection is called when a new WebSocket connection is established.
// The server streams the core's events and state snapshots to the client;
// the client may send move messages on the same socket.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Printf("failed to register connection: %v", err)
		c.Close()
		return
	}

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("parse error: %v", err)
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			wsc.sendError(c, err.Error())
		}
	}

	wsc.gameService.UnregisterConnection(gameID, playerID)
}

func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var req service.MoveRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return err
		}
		return wsc.gameService.HandleMove(gameID, playerID, req)
	default:
		return nil
	}
}

func (wsc *WebSocketController) sendError(c *websocket.Conn, errorMsg string) {
	msg, err := ws.Envelope(ws.MessageTypeError, fiberErr{Error: errorMsg})
	if err != nil {
		return
	}
	c.WriteJSON(msg)
}

type fiberErr struct {
	Error string `json:"error"`
}
