package mocks

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/walletd/walletd/internal/domain"
	"github.com/walletd/walletd/internal/usecase"
)

// MockBalanceRepository is a mock implementation of BalanceRepository.
// Without override funcs it behaves as an in-memory wallet store.
type MockBalanceRepository struct {
	mu       sync.RWMutex
	balances map[string]*domain.Balance

	GetBalanceFunc        func(ctx context.Context, accountID string) (decimal.Decimal, error)
	EnsureInitializedFunc func(ctx context.Context, accountID string) (*domain.Balance, error)
	DepositFunc           func(ctx context.Context, accountID string, amount decimal.Decimal) (decimal.Decimal, error)
	TransferFunc          func(ctx context.Context, sender, recipient string, amount decimal.Decimal, sentRecord *domain.TransactionRecord) (usecase.TransferBalances, error)
}

func NewMockBalanceRepository() *MockBalanceRepository {
	return &MockBalanceRepository{
		balances: make(map[string]*domain.Balance),
	}
}

// SetBalance seeds an account balance for a test.
func (m *MockBalanceRepository) SetBalance(accountID string, amount decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[accountID] = &domain.Balance{AccountID: accountID, Amount: amount, CreatedAt: time.Now().UTC()}
}

func (m *MockBalanceRepository) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	if m.GetBalanceFunc != nil {
		return m.GetBalanceFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.balances[accountID]; ok {
		return b.Amount, nil
	}
	return decimal.Zero, nil
}

func (m *MockBalanceRepository) EnsureInitialized(ctx context.Context, accountID string) (*domain.Balance, error) {
	if m.EnsureInitializedFunc != nil {
		return m.EnsureInitializedFunc(ctx, accountID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.balances[accountID]; ok {
		return b, nil
	}
	b := &domain.Balance{AccountID: accountID, Amount: decimal.Zero, CreatedAt: time.Now().UTC()}
	m.balances[accountID] = b
	return b, nil
}

func (m *MockBalanceRepository) Deposit(ctx context.Context, accountID string, amount decimal.Decimal) (decimal.Decimal, error) {
	if m.DepositFunc != nil {
		return m.DepositFunc(ctx, accountID, amount)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.balances[accountID]
	if !ok {
		b = &domain.Balance{AccountID: accountID, Amount: decimal.Zero, CreatedAt: time.Now().UTC()}
		m.balances[accountID] = b
	}
	b.Amount = b.Amount.Add(amount)
	return b.Amount, nil
}

func (m *MockBalanceRepository) Transfer(ctx context.Context, sender, recipient string, amount decimal.Decimal, sentRecord *domain.TransactionRecord) (usecase.TransferBalances, error) {
	if m.TransferFunc != nil {
		return m.TransferFunc(ctx, sender, recipient, amount, sentRecord)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	from, ok := m.balances[sender]
	if !ok {
		from = &domain.Balance{AccountID: sender, Amount: decimal.Zero, CreatedAt: time.Now().UTC()}
		m.balances[sender] = from
	}
	if from.Amount.LessThan(amount) {
		return usecase.TransferBalances{}, domain.ErrInsufficientFunds
	}
	to, ok := m.balances[recipient]
	if !ok {
		to = &domain.Balance{AccountID: recipient, Amount: decimal.Zero, CreatedAt: time.Now().UTC()}
		m.balances[recipient] = to
	}
	from.Amount = from.Amount.Sub(amount)
	to.Amount = to.Amount.Add(amount)
	return usecase.TransferBalances{Sender: from.Amount, Recipient: to.Amount}, nil
}

// MockTransactionLog is a mock implementation of TransactionLog.
type MockTransactionLog struct {
	mu      sync.RWMutex
	records []*domain.TransactionRecord

	AppendFunc func(ctx context.Context, record *domain.TransactionRecord) error
	ListFunc   func(ctx context.Context, accountID string, limit, offset int) ([]*domain.TransactionRecord, error)
}

func NewMockTransactionLog() *MockTransactionLog {
	return &MockTransactionLog{}
}

func (m *MockTransactionLog) Append(ctx context.Context, record *domain.TransactionRecord) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	record.Timestamp = time.Now().UTC()
	m.records = append(m.records, record)
	return nil
}

func (m *MockTransactionLog) List(ctx context.Context, accountID string, limit, offset int) ([]*domain.TransactionRecord, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var records []*domain.TransactionRecord
	for _, r := range m.records {
		if r.AccountID == accountID {
			records = append(records, r)
		}
	}
	if offset >= len(records) {
		return nil, nil
	}
	records = records[offset:]
	if len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// Records returns a copy of everything appended so far, for assertions.
func (m *MockTransactionLog) Records() []*domain.TransactionRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.TransactionRecord, len(m.records))
	copy(out, m.records)
	return out
}

// MockLedgerRepository is a mock implementation of LedgerRepository.
type MockLedgerRepository struct {
	CheckConservationFunc func(ctx context.Context) (decimal.Decimal, decimal.Decimal, error)
}

func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{}
}

func (m *MockLedgerRepository) CheckConservation(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	if m.CheckConservationFunc != nil {
		return m.CheckConservationFunc(ctx)
	}
	return decimal.Zero, decimal.Zero, nil
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent

	CreateFunc          func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
	GetUnpublishedFunc  func(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublishedFunc   func(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublishedFunc func(ctx context.Context, before time.Time) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	if m.GetUnpublishedFunc != nil {
		return m.GetUnpublishedFunc(ctx, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var events []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published {
			events = append(events, e)
		}
		if len(events) == limit {
			break
		}
	}
	return events, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	if m.MarkPublishedFunc != nil {
		return m.MarkPublishedFunc(ctx, id, publishedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
		}
	}
	return nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	if m.DeletePublishedFunc != nil {
		return m.DeletePublishedFunc(ctx, before)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.events[:0]
	for _, e := range m.events {
		if !e.Published || e.PublishedAt == nil || !e.PublishedAt.Before(before) {
			kept = append(kept, e)
		}
	}
	m.events = kept
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc             func(ctx context.Context) (usecase.Transaction, error)
	BeginSerializableFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

func (m *MockTransactionManager) BeginSerializable(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginSerializableFunc != nil {
		return m.BeginSerializableFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "mock-id-" + strconv.Itoa(m.counter)
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}
