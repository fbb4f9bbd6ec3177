package services

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"

	"annur-center/app/database"
	"annur-center/app/models"
)

// ErrStudentNotActive is returned when regeneration is requested for a
// deactivated or deleted student.
var ErrStudentNotActive = errors.New("student is not active")

// RegenerationGuard serializes charge regeneration per student. It is
// advisory and in-memory only: a busy student id yields a benign
// "already in progress" result instead of blocking, and the set is lost
// on restart, which is acceptable because regeneration is idempotent.
type RegenerationGuard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func NewRegenerationGuard() *RegenerationGuard {
	return &RegenerationGuard{active: make(map[string]struct{})}
}

// TryAcquire reserves the student id, returning false when a
// regeneration for it is already running.
func (g *RegenerationGuard) TryAcquire(studentID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.active[studentID]; busy {
		return false
	}
	g.active[studentID] = struct{}{}
	return true
}

func (g *RegenerationGuard) Release(studentID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, studentID)
}

// Reset clears the set. Used by tests.
func (g *RegenerationGuard) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.active = make(map[string]struct{})
}

// RegenResult reports the outcome of a single-student regeneration.
type RegenResult struct {
	AlreadyInProgress bool `json:"already_in_progress"`
	ChargesGenerated  int  `json:"charges_generated"`
}

// TriggerChargeRegenerationForStudent recomputes the student's
// current-period monthly charge so an enrollment change takes effect
// without waiting for the next bulk run. Equivalent to a single-student
// force=true monthly generation.
func TriggerChargeRegenerationForStudent(db *sql.DB, guard *RegenerationGuard, studentID string) (*RegenResult, error) {
	if !guard.TryAcquire(studentID) {
		// Concurrent enrollment edits race here; losing is expected.
		return &RegenResult{AlreadyInProgress: true}, nil
	}
	defer guard.Release(studentID)

	academicYear, month, err := CurrentPeriod(db)
	if err != nil {
		return nil, err
	}

	student, err := database.GetStudentByID(db, studentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load student: %v", err)
	}
	if !student.IsActive || student.DeletedAt != nil {
		return nil, ErrStudentNotActive
	}
	if student.FeeCategory == models.FeeCategoryExempt {
		return &RegenResult{}, nil
	}

	standardFee, err := database.GetSettingFloat(db, models.SettingStandardMonthlyFee)
	if err != nil {
		return nil, fmt.Errorf("failed to read standard monthly fee: %v", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	billable := database.BillableStudent{ID: student.ID, DiscountPercentage: student.DiscountPercentage}
	wrote, err := generateMonthlyChargeTx(tx, billable, standardFee, academicYear, month, true)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	result := &RegenResult{}
	if wrote {
		result.ChargesGenerated = 1
	}
	return result, nil
}

// StudentFailure is one student's error in a bulk refresh.
type StudentFailure struct {
	StudentID string `json:"student_id"`
	Error     string `json:"error"`
}

// RefreshReport summarizes a bulk charge refresh.
type RefreshReport struct {
	StudentsProcessed int              `json:"students_processed"`
	ChargesGenerated  int              `json:"charges_generated"`
	Failed            []StudentFailure `json:"failed_results"`
}

// RefreshAllStudentCharges regenerates charges for every student whose
// enrollment changed after their charges for the current period were
// written. Each student is processed independently; failures are
// collected rather than aborting the batch.
func RefreshAllStudentCharges(db *sql.DB, guard *RegenerationGuard, academicYear string) (*RefreshReport, error) {
	_, month, err := CurrentPeriod(db)
	if err != nil {
		return nil, err
	}

	studentIDs, err := database.GetStudentsWithStaleCharges(db, academicYear, month)
	if err != nil {
		return nil, fmt.Errorf("failed to find stale charges: %v", err)
	}

	report := &RefreshReport{}
	for _, studentID := range studentIDs {
		result, err := TriggerChargeRegenerationForStudent(db, guard, studentID)
		if err != nil {
			log.Printf("Charge refresh failed for student %s: %v", studentID, err)
			report.Failed = append(report.Failed, StudentFailure{StudentID: studentID, Error: err.Error()})
			continue
		}
		if result.AlreadyInProgress {
			continue
		}
		report.StudentsProcessed++
		report.ChargesGenerated += result.ChargesGenerated
	}
	return report, nil
}
