package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
)

// ErrNotFound is returned when a setting has never been written.
var ErrNotFound = errors.New("storage: not found")

// Setting returns the stored value for key, or ErrNotFound.
func (s *Store) Setting(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("storage: cannot read setting %q: %w", key, err)
	}
	return value, nil
}

// SetSetting stores value under key, replacing any previous value.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write setting %q: %w", key, err)
	}
	return nil
}

// Settings returns every stored setting.
func (s *Store) Settings() (map[string]string, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query settings: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("storage: cannot scan setting: %w", err)
		}
		out[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// BoolSetting reads a boolean setting, returning def when unset or malformed.
func (s *Store) BoolSetting(key string, def bool) bool {
	v, err := s.Setting(key)
	if err != nil {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func bestKey(gameID string) string {
	return "best:" + gameID
}

// BestScores is the best-score record of a single game.
// It satisfies the best score store the game simulation expects.
type BestScores struct {
	store  *Store
	gameID string
}

// Best returns the best-score record for gameID.
func (s *Store) Best(gameID string) *BestScores {
	return &BestScores{store: s, gameID: gameID}
}

// BestScore returns the stored best score and whether one exists.
func (b *BestScores) BestScore() (int, bool, error) {
	v, err := b.store.Setting(bestKey(b.gameID))
	if errors.Is(err, ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	score, err := strconv.Atoi(v)
	if err != nil {
		return 0, false, fmt.Errorf("storage: malformed best score %q: %w", v, err)
	}
	return score, true, nil
}

// SetBestScore replaces the stored best score.
func (b *BestScores) SetBestScore(score int) error {
	return b.store.SetSetting(bestKey(b.gameID), strconv.Itoa(score))
}
