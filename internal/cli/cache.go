package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"devcap/internal/catalog"
	"devcap/internal/engine"
)

// Cache is the last catalog and save fetched from the API, kept locally so a
// session can start when the server is unreachable.
type Cache struct {
	CachedAt time.Time       `json:"cached_at"`
	UserID   string          `json:"user_id"`
	Catalog  catalog.Catalog `json:"catalog"`
	Data     engine.LoadData `json:"data"`
}

func cachePath() (string, error) {
	dir, err := baseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "save.json"), nil
}

func SaveCache(c Cache) error {
	path, err := cachePath()
	if err != nil {
		return err
	}
	body, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, body, 0o600)
}

func LoadCache(userID string) (Cache, bool, error) {
	path, err := cachePath()
	if err != nil {
		return Cache{}, false, err
	}
	body, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Cache{}, false, nil
		}
		return Cache{}, false, err
	}
	var c Cache
	if err := json.Unmarshal(body, &c); err != nil {
		return Cache{}, false, err
	}
	if c.UserID != userID {
		return Cache{}, false, nil
	}
	return c, true, nil
}
