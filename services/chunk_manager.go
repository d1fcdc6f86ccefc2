package services

import (
	"fmt"
	"slices"
	"sync"

	"github.com/laurheth/pumpkin-oubliette/dungeon"
	"github.com/laurheth/pumpkin-oubliette/models"
)

// Chunk is a rectangular section of a drawable grid
type Chunk struct {
	X      int          `json:"x"`
	Y      int          `json:"y"`
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Tiles  []models.Art `json:"tiles"`
}

// ChunkManager remembers what each session was last sent and hands out only the
// chunks that changed since.
type ChunkManager struct {
	chunkSize int
	sent      map[string]map[string][]models.Art
	mutex     sync.Mutex
}

// NewChunkManager creates a new chunk manager
func NewChunkManager(chunkSize int) *ChunkManager {
	if chunkSize <= 0 {
		chunkSize = 16
	}
	return &ChunkManager{
		chunkSize: chunkSize,
		sent:      make(map[string]map[string][]models.Art),
	}
}

// getChunkCoordinates calculates the chunk coordinates for a given position
func (cm *ChunkManager) getChunkCoordinates(x, y int) (int, int) {
	return x / cm.chunkSize, y / cm.chunkSize
}

// getChunkKey generates a unique key for a chunk
func (cm *ChunkManager) getChunkKey(chunkX, chunkY int) string {
	return fmt.Sprintf("%d,%d", chunkX, chunkY)
}

// cut copies one chunk out of the grid
func (cm *ChunkManager) cut(grid dungeon.DrawableGrid, chunkX, chunkY int) Chunk {
	left := chunkX * cm.chunkSize
	top := chunkY * cm.chunkSize
	w := min(cm.chunkSize, grid.Width-left)
	h := min(cm.chunkSize, grid.Height-top)
	tiles := make([]models.Art, 0, w*h)
	for y := top; y < top+h; y++ {
		for x := left; x < left+w; x++ {
			tiles = append(tiles, grid.At(x, y))
		}
	}
	return Chunk{X: chunkX, Y: chunkY, Width: w, Height: h, Tiles: tiles}
}

// Dirty returns the chunks of grid that differ from what the session was last
// given, and records them as sent.
func (cm *ChunkManager) Dirty(sessionID string, grid dungeon.DrawableGrid) []Chunk {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	last, ok := cm.sent[sessionID]
	if !ok {
		last = make(map[string][]models.Art)
		cm.sent[sessionID] = last
	}

	maxX, maxY := cm.getChunkCoordinates(grid.Width-1, grid.Height-1)
	var dirty []Chunk
	for cy := 0; cy <= maxY; cy++ {
		for cx := 0; cx <= maxX; cx++ {
			chunk := cm.cut(grid, cx, cy)
			key := cm.getChunkKey(cx, cy)
			if prev, seen := last[key]; seen && slices.Equal(prev, chunk.Tiles) {
				continue
			}
			last[key] = chunk.Tiles
			dirty = append(dirty, chunk)
		}
	}
	return dirty
}

// ChunkAt returns the chunk holding (x, y) regardless of what was sent
func (cm *ChunkManager) ChunkAt(grid dungeon.DrawableGrid, x, y int) Chunk {
	cx, cy := cm.getChunkCoordinates(x, y)
	return cm.cut(grid, cx, cy)
}

// Reset forgets what a session was sent, so the next call returns every chunk
func (cm *ChunkManager) Reset(sessionID string) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()
	delete(cm.sent, sessionID)
}
