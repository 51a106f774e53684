// Package history records render runs and their plotted points.
package history

import (
	"sync"

	"github.com/snapseries/snapseries/internal/contract"
)

// HistoryStoreManager guards the run history store.
type HistoryStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	store        contract.HistoryStore
}

var _ contract.HistoryManager = &HistoryStoreManager{} // Compile-time check

// GetHistoryStore returns the configured HistoryStore, or nil when history is off.
func (mgr *HistoryStoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.store
}
