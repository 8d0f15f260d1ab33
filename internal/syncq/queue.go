// Package syncq queues saves that could not reach the API so a later session
// can push them. A save payload is a full snapshot, so only the newest one
// per user is kept.
package syncq

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"devcap/internal/engine"
)

type PendingSave struct {
	QueuedAt time.Time          `json:"queued_at"`
	Payload  engine.SavePayload `json:"payload"`
}

func queuePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".dvc")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "pending.json"), nil
}

func Load() ([]PendingSave, error) {
	path, err := queuePath()
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []PendingSave{}, nil
		}
		return nil, err
	}
	if len(raw) == 0 {
		return []PendingSave{}, nil
	}
	var out []PendingSave
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func Save(pending []PendingSave) error {
	path, err := queuePath()
	if err != nil {
		return err
	}
	raw, err := json.MarshalIndent(pending, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}

// Push records a failed save, replacing any older pending save for the same
// user.
func Push(payload engine.SavePayload) error {
	pending, err := Load()
	if err != nil {
		return err
	}
	kept := pending[:0]
	for _, p := range pending {
		if p.Payload.UserID != payload.UserID {
			kept = append(kept, p)
		}
	}
	kept = append(kept, PendingSave{QueuedAt: time.Now(), Payload: payload})
	return Save(kept)
}

// Take pops the pending save for the user, if any.
func Take(userID string) (PendingSave, bool, error) {
	pending, err := Load()
	if err != nil {
		return PendingSave{}, false, err
	}
	var found PendingSave
	ok := false
	kept := pending[:0]
	for _, p := range pending {
		if !ok && p.Payload.UserID == userID {
			found = p
			ok = true
			continue
		}
		kept = append(kept, p)
	}
	if !ok {
		return PendingSave{}, false, nil
	}
	return found, true, Save(kept)
}

func Clear() error {
	path, err := queuePath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return os.Remove(path)
}
