package contract

import (
	"context"
	"time"

	"github.com/huangsam/repoguard/schema"
	"github.com/stretchr/testify/mock"
)

// --- MockGitClient Implementation ---

// MockGitClient is an autogenerated mock type for the GitClient type.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// Run implements the GitClient interface.
func (m *MockGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	var mockArgs []any
	mockArgs = append(mockArgs, ctx, repoPath)
	for _, arg := range args {
		mockArgs = append(mockArgs, arg)
	}
	ret := m.Called(mockArgs...)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// GetRepoHash implements the GitClient interface.
func (m *MockGitClient) GetRepoHash(ctx context.Context, repoPath string) (string, error) {
	ret := m.Called(ctx, repoPath)
	hash, _ := ret.Get(0).(string)
	return hash, ret.Error(1)
}

// GetRepoRoot implements the GitClient interface.
func (m *MockGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	ret := m.Called(ctx, contextPath)
	root, _ := ret.Get(0).(string)
	return root, ret.Error(1)
}

// GetCommitLog implements the GitClient interface.
func (m *MockGitClient) GetCommitLog(ctx context.Context, repoPath string, formatArg string, since, until time.Time, limit int) ([]byte, error) {
	ret := m.Called(ctx, repoPath, formatArg, since, until, limit)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// ListCommitFiles implements the GitClient interface.
func (m *MockGitClient) ListCommitFiles(ctx context.Context, repoPath string, hash string) ([]string, error) {
	ret := m.Called(ctx, repoPath, hash)
	files, _ := ret.Get(0).([]string)
	return files, ret.Error(1)
}

// ListFilesAtRef implements the GitClient interface.
func (m *MockGitClient) ListFilesAtRef(ctx context.Context, repoPath string, ref string) ([]string, error) {
	ret := m.Called(ctx, repoPath, ref)
	files, _ := ret.Get(0).([]string)
	return files, ret.Error(1)
}

// --- MockScanClient Implementation ---

// MockScanClient is an autogenerated mock type for the ScanClient type.
type MockScanClient struct {
	mock.Mock
}

var _ ScanClient = &MockScanClient{} // Compile-time check

// Available implements the ScanClient interface.
func (m *MockScanClient) Available() bool {
	ret := m.Called()
	available, _ := ret.Get(0).(bool)
	return available
}

// Scan implements the ScanClient interface.
func (m *MockScanClient) Scan(ctx context.Context, repoPath string) ([]byte, error) {
	ret := m.Called(ctx, repoPath)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// --- MockStoreManager Implementation ---

// MockStoreManager is an autogenerated mock type for the StoreManager type.
type MockStoreManager struct {
	mock.Mock
}

var _ StoreManager = &MockStoreManager{} // Compile-time check

// GetLogStore implements the StoreManager interface.
func (m *MockStoreManager) GetLogStore() CacheStore {
	ret := m.Called()
	store, _ := ret.Get(0).(CacheStore)
	return store
}

// GetAuditStore implements the StoreManager interface.
func (m *MockStoreManager) GetAuditStore() AuditStore {
	ret := m.Called()
	store, _ := ret.Get(0).(AuditStore)
	return store
}

// --- MockCacheStore Implementation ---

// MockCacheStore is an autogenerated mock type for the CacheStore type.
type MockCacheStore struct {
	mock.Mock
}

var _ CacheStore = &MockCacheStore{} // Compile-time check

// Get implements the CacheStore interface.
func (m *MockCacheStore) Get(key string) ([]byte, int, int64, error) {
	ret := m.Called(key)
	data, _ := ret.Get(0).([]byte)
	version, _ := ret.Get(1).(int)
	ts, _ := ret.Get(2).(int64)
	return data, version, ts, ret.Error(3)
}

// Set implements the CacheStore interface.
func (m *MockCacheStore) Set(key string, value []byte, version int, timestamp int64) error {
	ret := m.Called(key, value, version, timestamp)
	return ret.Error(0)
}

// GetStatus implements the CacheStore interface.
func (m *MockCacheStore) GetStatus() (schema.CacheStatus, error) {
	ret := m.Called()
	status, _ := ret.Get(0).(schema.CacheStatus)
	return status, ret.Error(1)
}

// Close implements the CacheStore interface.
func (m *MockCacheStore) Close() error {
	ret := m.Called()
	return ret.Error(0)
}

// --- MockAuditStore Implementation ---

// MockAuditStore is an autogenerated mock type for the AuditStore type.
type MockAuditStore struct {
	mock.Mock
}

var _ AuditStore = &MockAuditStore{} // Compile-time check

// BeginAudit implements the AuditStore interface.
func (m *MockAuditStore) BeginAudit(startTime time.Time, configParams map[string]any) (int64, error) {
	ret := m.Called(startTime, configParams)
	id, _ := ret.Get(0).(int64)
	return id, ret.Error(1)
}

// EndAudit implements the AuditStore interface.
func (m *MockAuditStore) EndAudit(auditID int64, endTime time.Time, totalCommits int, passed bool) error {
	ret := m.Called(auditID, endTime, totalCommits, passed)
	return ret.Error(0)
}

// RecordCheckOutcome implements the AuditStore interface.
func (m *MockAuditStore) RecordCheckOutcome(auditID int64, outcome schema.CheckOutcome) error {
	ret := m.Called(auditID, outcome)
	return ret.Error(0)
}

// GetStatus implements the AuditStore interface.
func (m *MockAuditStore) GetStatus() (schema.AuditStatus, error) {
	ret := m.Called()
	status, _ := ret.Get(0).(schema.AuditStatus)
	return status, ret.Error(1)
}

// GetAllAuditRuns implements the AuditStore interface.
func (m *MockAuditStore) GetAllAuditRuns() ([]schema.AuditRunRecord, error) {
	ret := m.Called()
	runs, _ := ret.Get(0).([]schema.AuditRunRecord)
	return runs, ret.Error(1)
}

// GetAllCheckResults implements the AuditStore interface.
func (m *MockAuditStore) GetAllCheckResults() ([]schema.CheckResultRecord, error) {
	ret := m.Called()
	results, _ := ret.Get(0).([]schema.CheckResultRecord)
	return results, ret.Error(1)
}

// Close implements the AuditStore interface.
func (m *MockAuditStore) Close() error {
	ret := m.Called()
	return ret.Error(0)
}
