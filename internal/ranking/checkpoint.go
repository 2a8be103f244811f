package ranking

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// WeightCheckpoint is the persisted state of an online-updated weight
// vector, adapted from the scraper checkpoint format to carry ranking
// weights across process restarts instead of crawl progress.
type WeightCheckpoint struct {
	ExperimentGroup ExperimentGroup `json:"experimentGroup"`
	Weights         Weights         `json:"weights"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// WeightCheckpointManager saves and loads a Stage's weight vector.
type WeightCheckpointManager struct {
	filePath string
}

// NewWeightCheckpointManager creates a manager writing to filePath.
func NewWeightCheckpointManager(filePath string) *WeightCheckpointManager {
	return &WeightCheckpointManager{filePath: filePath}
}

// Save persists the Stage's current weights. It writes a temporary file
// and renames it over the checkpoint, so a reader never sees a partial
// file.
func (m *WeightCheckpointManager) Save(s *Stage) error {
	checkpoint := WeightCheckpoint{
		ExperimentGroup: s.group,
		Weights:         s.Weights(),
		UpdatedAt:       time.Now(),
	}

	data, err := json.MarshalIndent(checkpoint, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal weight checkpoint: %w", err)
	}
	tmpPath := m.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write weight checkpoint file: %w", err)
	}
	if err := os.Rename(tmpPath, m.filePath); err != nil {
		return fmt.Errorf("failed to replace weight checkpoint file: %w", err)
	}
	return nil
}

// Load reads a previously saved checkpoint, returning nil if none
// exists.
func (m *WeightCheckpointManager) Load() (*WeightCheckpoint, error) {
	data, err := os.ReadFile(m.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read weight checkpoint file: %w", err)
	}

	var checkpoint WeightCheckpoint
	if err := json.Unmarshal(data, &checkpoint); err != nil {
		return nil, fmt.Errorf("failed to unmarshal weight checkpoint: %w", err)
	}
	return &checkpoint, nil
}

// Restore applies a loaded checkpoint's weights to the Stage.
func (s *Stage) Restore(checkpoint *WeightCheckpoint) {
	if checkpoint == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weights = checkpoint.Weights
	s.group = checkpoint.ExperimentGroup
}
