package domain

import "time"

// Status and role strings are stored verbatim in the backing tables. Several
// of them are Arabic-language business terms used throughout the Arknat HR
// frontend; they must not be translated or normalized here.
const (
	RoleSystemAdmin = "مدير النظام" // system administrator
	RoleGuard       = "حارس أمن"    // security guard

	EmploymentStatusCoverage = "تغطية" // temporary coverage assignment

	EmployeeStatusActive = "active"

	DefaultBankName = "غير محدد" // "not specified"

	ApplicantStatusApproved = "ops_final_approved"

	ShiftStatusOpen   = "open"
	ShiftStatusClosed = "closed"

	PaymentStatusPendingOpsApproval = "completed_pending_ops_approval"
	PaymentStatusPaid               = "paid"

	VacancyStatusOpen = "open"
)

// Applicant is a person who applied to cover an open shift.
type Applicant struct {
	ID          string
	FullName    string
	IDNumber    string
	PhoneNumber string
	IBAN        string
	BankName    *string // nil when the applicant did not provide one
	Status      string
	UserID      *string // set once an employee profile is linked
}

// Shift is a coverage slot that needs a temporary substitute guard.
type Shift struct {
	ID              string
	Project         string
	Location        string
	Region          string
	City            string
	LinkedVacancyID *string
	CoveragePay     float64
	CoveredUserID   *string // the absent guard being covered, if known
	Status          string
	CreatedAt       time.Time
}

// Employee is the canonical profile row in the users table, keyed by a unique
// national id number and linked to an identity-provider account.
type Employee struct {
	ID               string
	AuthUserID       string
	Name             string
	IDNumber         string
	Phone            string
	IBAN             string
	BankName         string
	Role             string
	EmploymentStatus string
	Status           string
	Project          []string
	Location         string
	Region           string
	City             string
	VacancyID        *string
}

// Payment records the payout owed to a covering guard for one assignment.
// Status only moves forward: completed_pending_ops_approval -> paid.
type Payment struct {
	ID                string
	CoverageShiftID   string
	ApplicantID       string
	CoveringGuardName string
	PaymentAmount     float64
	ApplicantIBAN     string
	ApplicantBankName string
	ShiftDate         string // date-only, UTC (YYYY-MM-DD)
	Status            string
	AbsentGuardID     *string
}

// Assignment links a coverage shift to the guard who covered it. The guard's
// identity reference is joined in so finalize-payment can tear it down.
type Assignment struct {
	CoverageShiftID string
	CoveringGuardID string
	GuardAuthUserID *string
}

// ApplicantRepository defines data access for coverage applicants
type ApplicantRepository interface {
	GetByID(id string) (*Applicant, error)
	MarkApproved(id, userID string) error
}

// ShiftRepository defines data access for coverage shifts
type ShiftRepository interface {
	GetByID(id string) (*Shift, error)
	Close(id string) error
}

// EmployeeRepository defines data access for employee profiles
type EmployeeRepository interface {
	Create(employee *Employee) error
	GetByID(id string) (*Employee, error)
	GetByIDNumber(idNumber string) (*Employee, error)
	GetByAuthUserID(authUserID string) (*Employee, error)
	UpdateEmploymentStatus(id, status string) error
	Delete(id string) error
}

// PaymentRepository defines data access for coverage payments
type PaymentRepository interface {
	Create(payment *Payment) error
	GetByID(id string) (*Payment, error)
	UpdateStatus(id, status string) error
}

// AssignmentRepository defines data access for coverage assignments
type AssignmentRepository interface {
	GetByShiftID(shiftID string) (*Assignment, error)
}

// VacancyRepository defines data access for job vacancies
type VacancyRepository interface {
	Reopen(id string) error
}
