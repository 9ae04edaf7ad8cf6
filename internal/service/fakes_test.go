package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/arknat/hr-backend/internal/domain"
	"github.com/arknat/hr-backend/internal/identity"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeApplicantRepo struct {
	applicants map[string]*domain.Applicant

	approvedID     string
	approvedUserID string
	approveErr     error
}

func (f *fakeApplicantRepo) GetByID(id string) (*domain.Applicant, error) {
	a, ok := f.applicants[id]
	if !ok {
		return nil, fmt.Errorf("applicant %s: %w", id, domain.ErrNotFound)
	}
	copied := *a
	return &copied, nil
}

func (f *fakeApplicantRepo) MarkApproved(id, userID string) error {
	if f.approveErr != nil {
		return f.approveErr
	}
	f.approvedID = id
	f.approvedUserID = userID
	return nil
}

type fakeShiftRepo struct {
	shifts map[string]*domain.Shift

	closedID string
	closeErr error
}

func (f *fakeShiftRepo) GetByID(id string) (*domain.Shift, error) {
	s, ok := f.shifts[id]
	if !ok {
		return nil, fmt.Errorf("coverage shift %s: %w", id, domain.ErrNotFound)
	}
	copied := *s
	return &copied, nil
}

func (f *fakeShiftRepo) Close(id string) error {
	if f.closeErr != nil {
		return f.closeErr
	}
	f.closedID = id
	return nil
}

type fakeEmployeeRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.Employee
	byNumber  map[string]*domain.Employee
	byAuthID  map[string]*domain.Employee
	createErr error

	created       []*domain.Employee
	nextID        string
	statusUpdates map[string]string
	deletedIDs    []string
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{
		byID:          map[string]*domain.Employee{},
		byNumber:      map[string]*domain.Employee{},
		byAuthID:      map[string]*domain.Employee{},
		nextID:        "U-NEW",
		statusUpdates: map[string]string{},
	}
}

func (f *fakeEmployeeRepo) add(e *domain.Employee) {
	f.byID[e.ID] = e
	f.byNumber[e.IDNumber] = e
	f.byAuthID[e.AuthUserID] = e
}

func (f *fakeEmployeeRepo) Create(e *domain.Employee) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	e.ID = f.nextID
	f.created = append(f.created, e)
	f.add(e)
	return nil
}

func (f *fakeEmployeeRepo) GetByID(id string) (*domain.Employee, error) {
	return f.lookup(f.byID, id)
}

func (f *fakeEmployeeRepo) GetByIDNumber(idNumber string) (*domain.Employee, error) {
	return f.lookup(f.byNumber, idNumber)
}

func (f *fakeEmployeeRepo) GetByAuthUserID(authUserID string) (*domain.Employee, error) {
	return f.lookup(f.byAuthID, authUserID)
}

func (f *fakeEmployeeRepo) lookup(m map[string]*domain.Employee, key string) (*domain.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("employee: %w", domain.ErrNotFound)
	}
	copied := *e
	return &copied, nil
}

func (f *fakeEmployeeRepo) UpdateEmploymentStatus(id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return fmt.Errorf("employee %s: %w", id, domain.ErrNotFound)
	}
	f.statusUpdates[id] = status
	return nil
}

func (f *fakeEmployeeRepo) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedIDs = append(f.deletedIDs, id)
	delete(f.byID, id)
	return nil
}

type fakePaymentRepo struct {
	payments map[string]*domain.Payment

	created       []*domain.Payment
	createErr     error
	statusUpdates map[string]string
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{
		payments:      map[string]*domain.Payment{},
		statusUpdates: map[string]string{},
	}
}

func (f *fakePaymentRepo) Create(p *domain.Payment) error {
	if f.createErr != nil {
		return f.createErr
	}
	p.ID = fmt.Sprintf("P%d", len(f.created)+1)
	f.created = append(f.created, p)
	f.payments[p.ID] = p
	return nil
}

func (f *fakePaymentRepo) GetByID(id string) (*domain.Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, fmt.Errorf("payment %s: %w", id, domain.ErrNotFound)
	}
	copied := *p
	return &copied, nil
}

func (f *fakePaymentRepo) UpdateStatus(id, status string) error {
	if _, ok := f.payments[id]; !ok {
		return fmt.Errorf("payment %s: %w", id, domain.ErrNotFound)
	}
	f.statusUpdates[id] = status
	return nil
}

type fakeAssignmentRepo struct {
	assignments map[string]*domain.Assignment
}

func (f *fakeAssignmentRepo) GetByShiftID(shiftID string) (*domain.Assignment, error) {
	a, ok := f.assignments[shiftID]
	if !ok {
		return nil, fmt.Errorf("assignment for shift %s: %w", shiftID, domain.ErrNotFound)
	}
	copied := *a
	return &copied, nil
}

type fakeVacancyRepo struct {
	reopened  []string
	reopenErr error
}

func (f *fakeVacancyRepo) Reopen(id string) error {
	if f.reopenErr != nil {
		return f.reopenErr
	}
	f.reopened = append(f.reopened, id)
	return nil
}

// fakeIdentityAdmin stands in for the identity provider admin API.
type fakeIdentityAdmin struct {
	nextAccountID string
	accounts      map[string]*identity.Account

	createErr error
	deleteErr error
	updateErr error

	createdParams   []identity.CreateUserParams
	deletedIDs      []string
	passwordUpdates map[string]string
}

func newFakeIdentityAdmin() *fakeIdentityAdmin {
	return &fakeIdentityAdmin{
		nextAccountID:   "auth-new",
		accounts:        map[string]*identity.Account{},
		passwordUpdates: map[string]string{},
	}
}

func (f *fakeIdentityAdmin) CreateUser(ctx context.Context, params identity.CreateUserParams) (*identity.Account, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.createdParams = append(f.createdParams, params)
	account := &identity.Account{ID: f.nextAccountID, Email: params.Email}
	f.accounts[account.ID] = account
	return account, nil
}

func (f *fakeIdentityAdmin) GetUser(ctx context.Context, id string) (*identity.Account, error) {
	account, ok := f.accounts[id]
	if !ok {
		return nil, errors.New("failed to get auth user: user not found")
	}
	copied := *account
	return &copied, nil
}

func (f *fakeIdentityAdmin) UpdatePassword(ctx context.Context, id, password string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.passwordUpdates[id] = password
	return nil
}

func (f *fakeIdentityAdmin) DeleteUser(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedIDs = append(f.deletedIDs, id)
	delete(f.accounts, id)
	return nil
}

func identityFactoryFor(fake *fakeIdentityAdmin) IdentityFactory {
	return func() IdentityAdmin { return fake }
}
