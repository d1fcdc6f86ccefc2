package messages

import (
	"github.com/laurheth/pumpkin-oubliette/dungeon"
	"github.com/laurheth/pumpkin-oubliette/models"
	"github.com/laurheth/pumpkin-oubliette/services"
)

// MessageType defines the type of message being sent
type MessageType string

const (
	// Client to server
	MessageTypeNewGame       MessageType = "new_game"
	MessageTypeMove          MessageType = "move"
	MessageTypeTravelOptions MessageType = "travel_options"
	MessageTypeTravel        MessageType = "travel"
	MessageTypeDescend       MessageType = "descend"
	MessageTypeLook          MessageType = "look"

	// Server to client
	MessageTypeWelcome     MessageType = "welcome"
	MessageTypeUpdate      MessageType = "update"
	MessageTypeDescription MessageType = "description"
	MessageTypeError       MessageType = "error"
)

// Error codes sent with MessageTypeError
const (
	CodeInvalidMessage = "INVALID_MESSAGE"
	CodeUnknownType    = "UNKNOWN_TYPE"
	CodeNoGame         = "NO_GAME"
	CodeGameOver       = "GAME_OVER"
	CodeNewGameFailed  = "NEW_GAME_FAILED"
	CodeMoveFailed     = "MOVE_FAILED"
	CodeTravelFailed   = "TRAVEL_FAILED"
	CodeDescendFailed  = "DESCEND_FAILED"
	CodeLookFailed     = "LOOK_FAILED"
)

// BaseMessage is the base structure for all messages
type BaseMessage struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// NewGameMessage starts a run. A zero seed lets the server pick one.
type NewGameMessage struct {
	Seed int64 `json:"seed"`
}

// MoveMessage represents a player movement request
type MoveMessage struct {
	Direction string `json:"direction"` // north, south, east, west, northeast, northwest, southeast, southwest
}

// TravelMessage picks one of the options last sent to the client
type TravelMessage struct {
	Index int `json:"index"`
}

// LookMessage asks what is known about a cell
type LookMessage struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// WelcomeMessage is sent once a connection has a session
type WelcomeMessage struct {
	SessionID string `json:"session_id"`
}

// UpdateMessage carries everything that changed since the last update
type UpdateMessage struct {
	Level    int                    `json:"level"`
	Width    int                    `json:"width"`
	Height   int                    `json:"height"`
	Player   *models.Player         `json:"player"`
	Room     string                 `json:"room"`
	About    string                 `json:"about"`
	Chunks   []services.Chunk       `json:"chunks"`
	Options  []dungeon.TravelOption `json:"options"`
	Messages []string               `json:"messages"`
	OnExit   bool                   `json:"on_exit"`
	State    string                 `json:"state"`
}

// NewUpdate builds an update from a game snapshot
func NewUpdate(snap *services.Snapshot) UpdateMessage {
	return UpdateMessage{
		Level:    snap.Level,
		Width:    snap.Width,
		Height:   snap.Height,
		Player:   snap.Player,
		Room:     snap.Room,
		About:    snap.About,
		Chunks:   snap.Chunks,
		Options:  snap.Options,
		Messages: snap.Messages,
		OnExit:   snap.OnExit,
		State:    snap.State,
	}
}

// DescriptionMessage answers a look request
type DescriptionMessage struct {
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Description string `json:"description"`
}

// ErrorMessage represents an error response
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
