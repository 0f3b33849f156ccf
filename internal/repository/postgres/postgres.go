package postgres

import (
	"database/sql"

	"acharya-admissions-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.SchoolRepository
	repository.ApplicationRepository
	repository.DecisionRepository
	repository.FeeRepository
	repository.VerificationRepository
	repository.UserRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		SchoolRepository:       NewSchoolRepository(db),
		ApplicationRepository:  NewApplicationRepository(db),
		DecisionRepository:     NewDecisionRepository(db),
		FeeRepository:          NewFeeRepository(db),
		VerificationRepository: NewVerificationRepository(db),
		UserRepository:         NewUserRepository(db),
	}
}
