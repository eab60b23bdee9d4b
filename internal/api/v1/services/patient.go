package services

import (
	"context"
	"database/sql"
	"errors"

	apierrors "clinic-scribe/internal/api/errors"
	"clinic-scribe/internal/app/model"
	"clinic-scribe/internal/app/repository"
)

// PatientServiceImpl implements PatientService
type PatientServiceImpl struct {
	repo repository.ClinicDAO
}

// NewPatientService creates a new patient service
func NewPatientService(repo repository.ClinicDAO) PatientService {
	return &PatientServiceImpl{repo: repo}
}

// ListPatients returns all patients
func (s *PatientServiceImpl) ListPatients(ctx context.Context) ([]model.Patient, error) {
	patients, err := s.repo.GetAllPatients()
	if err != nil {
		return nil, apierrors.NewInternalError("Failed to load patients")
	}
	return patients, nil
}

// GetPatient returns one patient by ID
func (s *PatientServiceImpl) GetPatient(ctx context.Context, id int) (*model.Patient, error) {
	patient, err := s.repo.GetPatientByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apierrors.NewNotFoundError("Patient")
		}
		return nil, apierrors.NewInternalError("Failed to load patient")
	}
	return patient, nil
}

// ListInsurances returns all insurance plans
func (s *PatientServiceImpl) ListInsurances(ctx context.Context) ([]model.Insurance, error) {
	insurances, err := s.repo.GetAllInsurances()
	if err != nil {
		return nil, apierrors.NewInternalError("Failed to load insurances")
	}
	return insurances, nil
}
