// Package iostore has the durable storage backends for repoguard.
package iostore

import (
	"sync"

	"github.com/huangsam/repoguard/internal/contract"
)

// StoreManagerImpl manages the commit-log cache store and the audit history
// store behind a single handle.
type StoreManagerImpl struct {
	sync.RWMutex // Protects the store pointers during initialization
	logCache     contract.CacheStore
	audit        contract.AuditStore
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// GetLogStore returns the commit-log CacheStore.
func (mgr *StoreManagerImpl) GetLogStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.logCache
}

// GetAuditStore returns the audit history AuditStore.
func (mgr *StoreManagerImpl) GetAuditStore() contract.AuditStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.audit
}
