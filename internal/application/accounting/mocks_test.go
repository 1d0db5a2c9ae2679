package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/platform/internal/domain/accounting"
	"github.com/storefront/platform/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByCode(ctx context.Context, code string) (*accounting.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByReference(ctx context.Context, ref string) (*accounting.Account, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAll(ctx context.Context, filter accounting.AccountFilter) ([]accounting.Account, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]accounting.Account), args.Error(1)
}

func (m *MockAccountRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) HasChildren(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) IsReferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) Save(ctx context.Context, account *accounting.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockJournalEntryRepository is a mock implementation of JournalEntryRepository
type MockJournalEntryRepository struct {
	mock.Mock
}

func (m *MockJournalEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.JournalEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) FindAll(ctx context.Context, filter accounting.JournalEntryFilter) ([]accounting.JournalEntry, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]accounting.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) Create(ctx context.Context, entry *accounting.JournalEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockJournalEntryRepository) UpdateStatus(ctx context.Context, entry *accounting.JournalEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockJournalEntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockJournalEntryRepository) Balances(ctx context.Context, from, to *time.Time) ([]accounting.AccountBalance, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]accounting.AccountBalance), args.Error(1)
}

// stubScope runs the unit of work directly against the mocks
type stubScope struct {
	accounts *MockAccountRepository
	entries  *MockJournalEntryRepository
}

func (s *stubScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *stubScope) Accounts() accounting.AccountRepository { return s.accounts }
func (s *stubScope) JournalEntries() accounting.JournalEntryRepository { return s.entries }

// recordingPublisher captures published events
type recordingPublisher struct {
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}
