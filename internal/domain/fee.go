package domain

import "time"

// FeeStructure defines the per-semester fee lines for a course at a school.
// All amounts are in paise.
type FeeStructure struct {
	ID              int32  `json:"id"`
	SchoolID        int32  `json:"school_id"`
	Course          string `json:"course"`
	Semester        int32  `json:"semester"`
	TuitionFeePaise int32  `json:"tuition_fee_paise"`
	LibraryFeePaise int32  `json:"library_fee_paise"`
	LabFeePaise     int32  `json:"lab_fee_paise"`
	ExamFeePaise    int32  `json:"exam_fee_paise"`
	TotalFeePaise   int32  `json:"total_fee_paise"`
}

// FeeQuote is a point-in-time fee breakdown for a chosen school and course.
// It is computed on demand and never persisted; fee structures can change
// between calls, so a quote is not guaranteed stable.
type FeeQuote struct {
	ReferenceID       string    `json:"reference_id"`
	SchoolDecisionID  int32     `json:"school_decision_id"`
	SchoolName        string    `json:"school_name"`
	Course            string    `json:"course"`
	TuitionFeePaise   int32     `json:"tuition_fee_paise"`
	LibraryFeePaise   int32     `json:"library_fee_paise"`
	LabFeePaise       int32     `json:"lab_fee_paise"`
	ExamFeePaise      int32     `json:"exam_fee_paise"`
	AdmissionFeePaise int32     `json:"admission_fee_paise"`
	TotalPaise        int32     `json:"total_paise"`
	DueDate           time.Time `json:"due_date"`
	PaymentMethods    []string  `json:"payment_methods"`
}

type InvoiceStatus string

const (
	InvoicePending   InvoiceStatus = "pending"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceOverdue   InvoiceStatus = "overdue"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

// FeeInvoice is issued against a decision when enrollment completes.
type FeeInvoice struct {
	ID               int32         `json:"id"`
	InvoiceNumber    string        `json:"invoice_number"`
	SchoolDecisionID int32         `json:"school_decision_id"`
	AmountPaise      int32         `json:"amount_paise"`
	DueDate          time.Time     `json:"due_date"`
	Status           InvoiceStatus `json:"status"`
	CreatedOn        time.Time     `json:"created_on"`
}

// PaymentSession is a simulated payment-gateway session. No real gateway is
// integrated; the session id doubles as the payment reference on success.
type PaymentSession struct {
	SessionID   string    `json:"session_id"`
	ReferenceID string    `json:"reference_id"`
	AmountPaise int32     `json:"amount_paise"`
	ExpiresOn   time.Time `json:"expires_on"`
}
