package storage

import (
	"fmt"

	"nightlock/internal/providers"
	"nightlock/internal/structures"
)

// Store is the durable key-value contract the core writes through after
// every state transition. No multi-key transaction is assumed; the loader
// must tolerate partial writes from a crash.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key string, value string) error
	Close() error
}

// Persisted keys.
const (
	KeyBedtime       = "bedtime"
	KeyWakeTime      = "wakeTime"
	KeyAutoLock      = "autoLockEnabled"
	KeyIsLockdown    = "isLockdown"
	KeySessionID     = "sessionID"
	KeyUnlockStep    = "unlockStep"
	KeyUnlockPhrase  = "unlockPhrase"
	KeyWaitRemaining = "waitRemaining"
	KeyMathQuestion  = "mathQuestion"
	KeyMathAnswer    = "mathAnswer"
	KeySleepRecords  = "sleepRecords"
	KeyBestStreak    = "bestStreak"
)

func NewStore(conf *structures.Config, logger providers.Logger) (Store, error) {
	switch conf.Persistence.Driver {
	case "sqlite":
		logger.Infof(providers.TypeApp, "Using sqlite store at %s", conf.Persistence.FilePath)
		return NewSqliteStore(conf.Persistence.FilePath)
	case "file":
		logger.Infof(providers.TypeApp, "Using file store at %s", conf.Persistence.FilePath)
		return NewFileStore(conf.Persistence.FilePath)
	default:
		return nil, fmt.Errorf("unsupported persistence driver: %s", conf.Persistence.Driver)
	}
}
