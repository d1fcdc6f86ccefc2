package dungeon

import (
	"github.com/laurheth/pumpkin-oubliette/models"
)

var (
	roomWallArt    = models.Art{Glyph: "#", Foreground: "orange", Background: "brown"}
	roomFloorArt   = models.Art{Glyph: ".", Foreground: "green", Background: "black"}
	roomMossArt    = models.Art{Glyph: ",", Foreground: "darkgreen", Background: "black"}
	hallWallArt    = models.Art{Glyph: "#", Foreground: "gray", Background: "#222222"}
	hallFloorArt   = models.Art{Glyph: ".", Foreground: "orange", Background: "black"}
	hallRubbleArt  = models.Art{Glyph: ",", Foreground: "brown", Background: "black"}
	closedDoorArt  = models.Art{Glyph: "+", Foreground: "orange", Background: "brown"}
	openDoorArt    = models.Art{Glyph: "'", Foreground: "orange", Background: "black"}
	stairsArt      = models.Art{Glyph: ">", Foreground: "white", Background: "black"}
	floorNoiseZoom = 0.3
	floorNoiseCut  = 0.65
)

func wallParams(owner NodeID, art models.Art) CellParams {
	return CellParams{Art: art, Node: owner}
}

func floorParams(owner NodeID, art models.Art) CellParams {
	return CellParams{Art: art, Passable: true, SeeThrough: true, Node: owner}
}

func doorParams(owner NodeID, state DoorState) CellParams {
	if state == DoorOpen {
		return CellParams{Art: openDoorArt, Passable: true, SeeThrough: true, Node: owner, Door: DoorOpen}
	}
	return CellParams{Art: closedDoorArt, Passable: true, Node: owner, Door: DoorClosed}
}
