package player

import (
	"encoding/json"
)

// PlayerStatistics tracks what happened during one session. It is stored
// alongside the session record.
type PlayerStatistics struct {
	Turns            int            `json:"turns"`
	DistanceTraveled int            `json:"distance_traveled"` // Room moves
	RoomsDiscovered  int            `json:"rooms_discovered"`
	ItemsCollected   int            `json:"items_collected"`
	ItemsGiven       int            `json:"items_given"`
	NPCKills         map[string]int `json:"npc_kills"` // npc_id -> count
	Deaths           int            `json:"deaths"`
}

// NewPlayerStatistics creates a new statistics tracker.
func NewPlayerStatistics() *PlayerStatistics {
	return &PlayerStatistics{
		NPCKills: make(map[string]int),
	}
}

// RecordTurn counts one processed command.
func (s *PlayerStatistics) RecordTurn() {
	s.Turns++
}

// RecordMove counts a room change and whether it discovered a new room.
func (s *PlayerStatistics) RecordMove(firstVisit bool) {
	s.DistanceTraveled++
	if firstVisit {
		s.RoomsDiscovered++
	}
}

func (s *PlayerStatistics) RecordItemCollected() {
	s.ItemsCollected++
}

func (s *PlayerStatistics) RecordItemGiven() {
	s.ItemsGiven++
}

// RecordKill counts an NPC that died by the player's hand.
func (s *PlayerStatistics) RecordKill(npcID string) {
	if s.NPCKills == nil {
		s.NPCKills = make(map[string]int)
	}
	s.NPCKills[npcID]++
}

func (s *PlayerStatistics) RecordDeath() {
	s.Deaths++
}

// TotalKills sums kills across NPCs.
func (s *PlayerStatistics) TotalKills() int {
	total := 0
	for _, n := range s.NPCKills {
		total += n
	}
	return total
}

// ToJSON serializes statistics for storage.
func (s *PlayerStatistics) ToJSON() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// StatisticsFromJSON deserializes statistics read from storage.
func StatisticsFromJSON(data string) (*PlayerStatistics, error) {
	stats := NewPlayerStatistics()
	if data == "" {
		return stats, nil
	}
	if err := json.Unmarshal([]byte(data), stats); err != nil {
		return nil, err
	}
	if stats.NPCKills == nil {
		stats.NPCKills = make(map[string]int)
	}
	return stats, nil
}
