package service

import (
	"context"

	"acharya-admissions-backend/internal/domain"
	"acharya-admissions-backend/internal/repository"
)

type schoolService struct {
	schoolRepo repository.SchoolRepository
}

func NewSchoolService(schoolRepo repository.SchoolRepository) SchoolService {
	return &schoolService{schoolRepo: schoolRepo}
}

func (s *schoolService) ListSchools(ctx context.Context) ([]domain.School, error) {
	return s.schoolRepo.ListActive(ctx)
}

func (s *schoolService) GetSchool(ctx context.Context, id int32) (*domain.School, error) {
	return s.schoolRepo.GetByID(ctx, id)
}
