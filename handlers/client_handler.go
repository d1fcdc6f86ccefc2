package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/laurheth/pumpkin-oubliette/messages"
	"github.com/laurheth/pumpkin-oubliette/models"
	"github.com/laurheth/pumpkin-oubliette/network"
	"github.com/laurheth/pumpkin-oubliette/services"
)

// messageSender is the part of a connection a handler writes to
type messageSender interface {
	SendMessage(msg interface{}) error
}

// ClientHandler manages a single client connection
type ClientHandler struct {
	conn          messageSender
	sessionID     string
	playerService *services.PlayerService
	worldService  *services.WorldService
	clientManager *ClientManager

	ctx    context.Context
	cancel context.CancelFunc

	travelMutex  sync.Mutex
	travelCancel context.CancelFunc
	travelDone   chan struct{}

	// updates are diffs, so they go out in the order they were taken
	updateMutex sync.Mutex
}

// NewClientHandler creates a handler for one session's connection
func NewClientHandler(conn messageSender, sessionID string, playerService *services.PlayerService, worldService *services.WorldService, clientManager *ClientManager) *ClientHandler {
	ctx, cancel := context.WithCancel(context.Background())
	return &ClientHandler{
		conn:          conn,
		sessionID:     sessionID,
		playerService: playerService,
		worldService:  worldService,
		clientManager: clientManager,
		ctx:           ctx,
		cancel:        cancel,
	}
}

// HandleClientConnection handles a new client connection
func HandleClientConnection(wsConn *websocket.Conn, sessionID string, playerService *services.PlayerService, worldService *services.WorldService, clientManager *ClientManager) {
	log.Printf("New connection from %s (session %s)", wsConn.RemoteAddr(), sessionID)

	conn := network.NewConnection(wsConn)
	handler := NewClientHandler(conn, sessionID, playerService, worldService, clientManager)
	clientManager.AddClient(sessionID, handler)

	// Start the write pump in a goroutine
	go conn.WritePump()

	handler.send(messages.MessageTypeWelcome, messages.WelcomeMessage{SessionID: sessionID})
	// A reconnecting session picks its game back up from a full redraw
	worldService.ResetView(sessionID)
	handler.sendUpdate()

	// Handle the read pump in the current goroutine
	conn.ReadPump(handler)

	// Clean up when the connection is closed
	handler.Close()
	conn.Close()
	if clientManager.RemoveClient(sessionID, handler) {
		playerService.EndRun(sessionID)
	}
	log.Printf("Session %s disconnected", sessionID)
}

// Close stops any travel in progress
func (h *ClientHandler) Close() {
	h.cancel()
	h.stopTravel()
}

// HandleMessage handles incoming messages from the client
func (h *ClientHandler) HandleMessage(conn *network.Connection, message []byte) {
	h.handle(message)
}

func (h *ClientHandler) handle(message []byte) {
	var baseMsg messages.BaseMessage
	if err := json.Unmarshal(message, &baseMsg); err != nil {
		log.Printf("Error unmarshaling message: %v", err)
		h.sendError(messages.CodeInvalidMessage, "Message is not valid JSON")
		return
	}

	switch baseMsg.Type {
	case messages.MessageTypeNewGame:
		h.handleNewGame(baseMsg.Payload)
	case messages.MessageTypeMove:
		h.handleMove(baseMsg.Payload)
	case messages.MessageTypeTravelOptions:
		h.handleTravelOptions()
	case messages.MessageTypeTravel:
		h.handleTravel(baseMsg.Payload)
	case messages.MessageTypeDescend:
		h.handleDescend()
	case messages.MessageTypeLook:
		h.handleLook(baseMsg.Payload)
	default:
		log.Printf("Unknown message type: %s", baseMsg.Type)
		h.sendError(messages.CodeUnknownType, "Unknown message type received")
	}
}

// decodePayload re-reads a generic payload into its message type
func decodePayload(payload interface{}, dst interface{}) error {
	if payload == nil {
		return nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

// errorCode picks the wire code for an error, falling back to the operation's own code
func errorCode(err error, fallback string) string {
	switch {
	case errors.Is(err, services.ErrNoGame):
		return messages.CodeNoGame
	case errors.Is(err, services.ErrGameOver):
		return messages.CodeGameOver
	default:
		return fallback
	}
}

func (h *ClientHandler) handleNewGame(payload interface{}) {
	var msg messages.NewGameMessage
	if err := decodePayload(payload, &msg); err != nil {
		h.sendError(messages.CodeInvalidMessage, err.Error())
		return
	}
	if msg.Seed == 0 {
		msg.Seed = time.Now().UnixNano()
	}

	h.stopTravel()
	game, err := h.playerService.StartRun(h.sessionID, msg.Seed)
	if err != nil {
		log.Printf("Error starting run for %s: %v", h.sessionID, err)
		h.sendError(messages.CodeNewGameFailed, "Failed to start a new game")
		return
	}
	log.Printf("Session %s started run %d with seed %d", h.sessionID, game.RunID, game.Seed)
	h.sendUpdate()
}

// handleMove handles player movement requests
func (h *ClientHandler) handleMove(payload interface{}) {
	var msg messages.MoveMessage
	if err := decodePayload(payload, &msg); err != nil {
		h.sendError(messages.CodeInvalidMessage, err.Error())
		return
	}

	h.stopTravel()
	if err := h.worldService.Move(h.sessionID, msg.Direction); err != nil {
		h.sendError(errorCode(err, messages.CodeMoveFailed), err.Error())
		return
	}
	h.sendUpdate()
}

func (h *ClientHandler) handleTravelOptions() {
	h.stopTravel()
	if _, err := h.worldService.TravelOptions(h.sessionID); err != nil {
		h.sendError(errorCode(err, messages.CodeTravelFailed), err.Error())
		return
	}
	h.sendUpdate()
}

// handleTravel walks the chosen option in the background, sending an update
// after every step. A new command stops the walk.
func (h *ClientHandler) handleTravel(payload interface{}) {
	var msg messages.TravelMessage
	if err := decodePayload(payload, &msg); err != nil {
		h.sendError(messages.CodeInvalidMessage, err.Error())
		return
	}

	h.stopTravel()
	ctx, cancel := context.WithCancel(h.ctx)
	done := make(chan struct{})
	h.travelMutex.Lock()
	h.travelCancel = cancel
	h.travelDone = done
	h.travelMutex.Unlock()

	go func() {
		defer close(done)
		defer cancel()

		_, err := h.worldService.Travel(ctx, h.sessionID, msg.Index, func(*services.Game) {
			h.sendUpdate()
		})
		switch {
		case err == nil, errors.Is(err, context.Canceled), errors.Is(err, services.ErrNoGoalToStep):
		default:
			h.sendError(errorCode(err, messages.CodeTravelFailed), err.Error())
		}
		h.sendUpdate()
	}()
}

// stopTravel cancels the walk in progress and waits for it to wind down
func (h *ClientHandler) stopTravel() {
	h.travelMutex.Lock()
	cancel, done := h.travelCancel, h.travelDone
	h.travelCancel, h.travelDone = nil, nil
	h.travelMutex.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (h *ClientHandler) handleDescend() {
	h.stopTravel()
	game, err := h.playerService.Descend(h.sessionID)
	if err != nil {
		h.sendError(errorCode(err, messages.CodeDescendFailed), err.Error())
		return
	}
	log.Printf("Session %s reached level %d", h.sessionID, game.Level)
	h.sendUpdate()
}

func (h *ClientHandler) handleLook(payload interface{}) {
	var msg messages.LookMessage
	if err := decodePayload(payload, &msg); err != nil {
		h.sendError(messages.CodeInvalidMessage, err.Error())
		return
	}

	description, err := h.worldService.Look(h.sessionID, models.Position{X: msg.X, Y: msg.Y})
	if err != nil {
		h.sendError(errorCode(err, messages.CodeLookFailed), err.Error())
		return
	}
	h.send(messages.MessageTypeDescription, messages.DescriptionMessage{
		X:           msg.X,
		Y:           msg.Y,
		Description: description,
	})
}

// sendUpdate sends whatever changed in the session's game
func (h *ClientHandler) sendUpdate() {
	h.updateMutex.Lock()
	defer h.updateMutex.Unlock()

	snap, err := h.worldService.Snapshot(h.sessionID)
	if err != nil {
		return
	}
	h.send(messages.MessageTypeUpdate, messages.NewUpdate(snap))
}

func (h *ClientHandler) sendError(code, message string) {
	h.send(messages.MessageTypeError, messages.ErrorMessage{
		Code:    code,
		Message: message,
	})
}

func (h *ClientHandler) send(msgType messages.MessageType, payload interface{}) {
	msg := messages.BaseMessage{Type: msgType, Payload: payload}
	if err := h.conn.SendMessage(msg); err != nil {
		log.Printf("Error sending %s to %s: %v", msgType, h.sessionID, err)
	}
}
