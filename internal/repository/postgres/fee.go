package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"acharya-admissions-backend/internal/domain"
	"acharya-admissions-backend/internal/repository"
)

type feeRepository struct {
	db *sql.DB
}

func NewFeeRepository(db *sql.DB) repository.FeeRepository {
	return &feeRepository{db: db}
}

func (r *feeRepository) GetStructure(ctx context.Context, schoolID int32, course string, semester int32) (*domain.FeeStructure, error) {
	fs := &domain.FeeStructure{}
	query := `SELECT id, school_id, course, semester, tuition_fee_paise, library_fee_paise, lab_fee_paise, exam_fee_paise, total_fee_paise
	          FROM fee_structures WHERE school_id = $1 AND course = $2 AND semester = $3`
	err := r.db.QueryRowContext(ctx, query, schoolID, course, semester).Scan(
		&fs.ID, &fs.SchoolID, &fs.Course, &fs.Semester,
		&fs.TuitionFeePaise, &fs.LibraryFeePaise, &fs.LabFeePaise, &fs.ExamFeePaise, &fs.TotalFeePaise)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return fs, nil
}

func (r *feeRepository) CreateStructure(ctx context.Context, fs *domain.FeeStructure) error {
	query := `INSERT INTO fee_structures (school_id, course, semester, tuition_fee_paise, library_fee_paise, lab_fee_paise, exam_fee_paise, total_fee_paise)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	return r.db.QueryRowContext(ctx, query, fs.SchoolID, fs.Course, fs.Semester,
		fs.TuitionFeePaise, fs.LibraryFeePaise, fs.LabFeePaise, fs.ExamFeePaise, fs.TotalFeePaise).Scan(&fs.ID)
}

func (r *feeRepository) CreateInvoice(ctx context.Context, inv *domain.FeeInvoice) error {
	query := `INSERT INTO fee_invoices (invoice_number, school_decision_id, amount_paise, due_date, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, NOW()) RETURNING id, created_on`
	return r.db.QueryRowContext(ctx, query, inv.InvoiceNumber, inv.SchoolDecisionID,
		inv.AmountPaise, inv.DueDate, inv.Status).Scan(&inv.ID, &inv.CreatedOn)
}

func (r *feeRepository) MarkOverdueInvoices(ctx context.Context, asOf time.Time) (int64, error) {
	query := `UPDATE fee_invoices SET status = 'overdue' WHERE status = 'pending' AND due_date < $1`
	res, err := r.db.ExecContext(ctx, query, asOf)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
