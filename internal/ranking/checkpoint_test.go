package ranking

import (
	"path/filepath"
	"testing"
)

func TestWeightCheckpoint_SaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "weights.json")
	manager := NewWeightCheckpointManager(path)

	s := NewStage(Config{ExperimentGroup: GroupQualityHeavy})
	s.ApplyGradient(GradientSignal{Feature: "esScore", Direction: 1, Magnitude: 1})
	saved := s.Weights()

	if err := manager.Save(s); err != nil {
		t.Fatalf("unexpected error saving checkpoint: %v", err)
	}

	checkpoint, err := manager.Load()
	if err != nil {
		t.Fatalf("unexpected error loading checkpoint: %v", err)
	}
	if checkpoint == nil {
		t.Fatal("expected a non-nil checkpoint")
	}
	if checkpoint.ExperimentGroup != GroupQualityHeavy {
		t.Errorf("expected the experiment group to round-trip, got %q", checkpoint.ExperimentGroup)
	}
	if checkpoint.Weights.ESScore != saved.ESScore {
		t.Errorf("expected weights to round-trip exactly, got %f want %f", checkpoint.Weights.ESScore, saved.ESScore)
	}

	restored := NewStage(Config{ExperimentGroup: GroupControl})
	restored.Restore(checkpoint)
	if restored.Weights().ESScore != saved.ESScore {
		t.Errorf("expected Restore to apply the loaded weights")
	}
}

func TestWeightCheckpoint_LoadMissingFileReturnsNil(t *testing.T) {
	manager := NewWeightCheckpointManager(filepath.Join(t.TempDir(), "does-not-exist.json"))

	checkpoint, err := manager.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if checkpoint != nil {
		t.Errorf("expected nil checkpoint for a missing file, got %+v", checkpoint)
	}
}
