package store

import (
	"log"
	"os"
	"time"

	"github.com/example/albaz/internal/models"
	"github.com/example/albaz/internal/utils"
)

// Snapshot is the remembered-session slot: a single local file holding an
// obfuscated serialized projection of the session user. It is deliberately
// separate from the storage engine, written on remembered login, read once at
// startup and cleared on logout. All failures are logged and swallowed; a
// lost snapshot only costs a re-login.
type Snapshot struct {
	path   string
	secret string
	ttl    time.Duration
}

// NewSnapshot creates a snapshot slot backed by the given file path.
func NewSnapshot(path, secret string, ttl time.Duration) *Snapshot {
	return &Snapshot{path: path, secret: secret, ttl: ttl}
}

// Save writes the session projection to the slot.
func (s *Snapshot) Save(user models.User) {
	token, err := utils.GenerateSessionToken(s.secret, user, s.ttl)
	if err != nil {
		log.Printf("[Session] Failed to encode snapshot: %v", err)
		return
	}

	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		log.Printf("[Session] Failed to write snapshot: %v", err)
	}
}

// Load reads the slot. The second return is false when the slot is empty,
// expired or unreadable; callers discard the snapshot in that case.
func (s *Snapshot) Load() (models.User, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("[Session] Failed to read snapshot: %v", err)
		}
		return models.User{}, false
	}

	user, err := utils.ParseSessionToken(s.secret, string(data))
	if err != nil {
		log.Printf("[Session] Discarding invalid snapshot: %v", err)
		return models.User{}, false
	}

	return user, true
}

// Clear removes the slot.
func (s *Snapshot) Clear() {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		log.Printf("[Session] Failed to clear snapshot: %v", err)
	}
}

// Exists reports whether a snapshot is currently stored.
func (s *Snapshot) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}
