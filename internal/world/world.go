package world

import (
	"fmt"
	"sort"
)

// World owns every room of one session, keyed by room ID
type World struct {
	Rooms          map[string]*Room
	StartingRoomID string
}

func NewWorld() *World {
	return &World{
		Rooms: make(map[string]*Room),
	}
}

func (w *World) AddRoom(room *Room) {
	w.Rooms[room.ID] = room
}

func (w *World) GetRoom(id string) *Room {
	return w.Rooms[id]
}

func (w *World) GetStartingRoom() *Room {
	return w.Rooms[w.StartingRoomID]
}

// Neighbor resolves an exit of room to the room it leads to
func (w *World) Neighbor(room *Room, direction Direction) *Room {
	id, ok := room.GetExit(direction)
	if !ok {
		return nil
	}
	return w.Rooms[id]
}

func (w *World) GetRoomCount() int {
	return len(w.Rooms)
}

// RoomIDs returns every room ID in sorted order
func (w *World) RoomIDs() []string {
	ids := make([]string, 0, len(w.Rooms))
	for id := range w.Rooms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Validate checks the structural invariants of the graph
func (w *World) Validate() error {
	if w.GetStartingRoom() == nil {
		return fmt.Errorf("starting room %q does not exist", w.StartingRoomID)
	}
	for _, id := range w.RoomIDs() {
		room := w.Rooms[id]
		for _, d := range Directions {
			target, ok := room.GetExit(d)
			if ok && w.Rooms[target] == nil {
				return fmt.Errorf("room %q: %s exit leads to unknown room %q", id, d, target)
			}
		}
		for _, door := range room.Doors {
			if _, ok := room.GetExit(door.Direction); !ok {
				return fmt.Errorf("room %q: door on %s side has no exit", id, door.Direction)
			}
		}
		if room.RevealedItem != "" && !room.HasItem(room.RevealedItem) {
			return fmt.Errorf("room %q: revealed item %q is not on the floor", id, room.RevealedItem)
		}
		for _, n := range room.NPCs {
			if !n.IsAlive() {
				return fmt.Errorf("room %q: NPC %q has no health", id, n.Name)
			}
		}
	}
	return nil
}
