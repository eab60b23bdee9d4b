package services

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/samber/lo"

	apierrors "clinic-scribe/internal/api/errors"
	"clinic-scribe/internal/api/v1/dto"
	"clinic-scribe/internal/app/cache"
	"clinic-scribe/internal/app/model"
	"clinic-scribe/internal/app/repository"
)

const activeAppointmentCacheKey = "appointments:active"

// cachedActive wraps the lookup result so "no active appointment" is also
// cacheable.
type cachedActive struct {
	Found       bool              `json:"found"`
	Appointment model.Appointment `json:"appointment"`
}

// AppointmentServiceImpl implements AppointmentService
type AppointmentServiceImpl struct {
	repo         repository.ClinicDAO
	cache        *cache.Cache
	clinicOffset time.Duration
	logger       *slog.Logger
	now          func() time.Time
}

// NewAppointmentService creates a new appointment service. The clinic offset
// shifts server UTC time into the wall-clock frame appointment slots are
// stored in.
func NewAppointmentService(repo repository.ClinicDAO, c *cache.Cache, clinicOffset time.Duration, logger *slog.Logger) *AppointmentServiceImpl {
	return &AppointmentServiceImpl{
		repo:         repo,
		cache:        c,
		clinicOffset: clinicOffset,
		logger:       logger,
		now:          time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (s *AppointmentServiceImpl) WithClock(now func() time.Time) *AppointmentServiceImpl {
	s.now = now
	return s
}

// clinicNow returns the current time in the clinic's wall-clock frame,
// stripped to a zone-less comparison value.
func (s *AppointmentServiceImpl) clinicNow() time.Time {
	return s.now().UTC().Add(s.clinicOffset)
}

// ListAppointments returns the full schedule
func (s *AppointmentServiceImpl) ListAppointments(ctx context.Context) ([]model.Appointment, error) {
	appointments, err := s.repo.GetAllAppointments()
	if err != nil {
		return nil, apierrors.NewInternalError("Failed to load appointments")
	}
	return appointments, nil
}

// ActiveAppointment returns the booked appointment whose window contains
// clinic-now, or nil when there is none. Several overlapping windows resolve
// to the earliest start.
func (s *AppointmentServiceImpl) ActiveAppointment(ctx context.Context) (*model.Appointment, error) {
	var cached cachedActive
	if hit, err := s.cache.GetJSON(ctx, activeAppointmentCacheKey, &cached); err == nil && hit {
		if !cached.Found {
			return nil, nil
		}
		appt := cached.Appointment
		return &appt, nil
	}

	appointments, err := s.repo.GetAllAppointments()
	if err != nil {
		return nil, apierrors.NewInternalError("Failed to load appointments")
	}

	active := s.filterActive(appointments)
	if len(active) == 0 {
		_ = s.cache.SetJSON(ctx, activeAppointmentCacheKey, cachedActive{Found: false})
		return nil, nil
	}

	sort.Slice(active, func(i, j int) bool { return active[i].Start < active[j].Start })
	result := active[0]
	_ = s.cache.SetJSON(ctx, activeAppointmentCacheKey, cachedActive{Found: true, Appointment: result})
	return &result, nil
}

// filterActive applies the active-window predicate, skipping rows whose
// start times do not parse.
func (s *AppointmentServiceImpl) filterActive(appointments []model.Appointment) []model.Appointment {
	now := s.clinicNow()

	booked := lo.Filter(appointments, func(a model.Appointment, _ int) bool {
		return a.IsBooked()
	})

	active := make([]model.Appointment, 0)
	for _, appt := range booked {
		start, end, err := appt.Window()
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("Skipping appointment with invalid start time",
					"appointment_id", appt.ID,
					"start", appt.Start,
				)
			}
			continue
		}
		if !now.Before(start) && now.Before(end) {
			active = append(active, appt)
		}
	}
	return active
}

// CurrentAppointmentForPatient returns the patient's earliest upcoming booked
// appointment, or nil when there is none.
func (s *AppointmentServiceImpl) CurrentAppointmentForPatient(ctx context.Context, patientID int) (*model.Appointment, error) {
	appointments, err := s.repo.GetAppointmentsByPatient(patientID)
	if err != nil {
		return nil, apierrors.NewInternalError("Failed to load appointments")
	}

	now := s.clinicNow()
	upcoming := lo.Filter(appointments, func(a model.Appointment, _ int) bool {
		if a.Status != model.AppointmentStatusBooked {
			return false
		}
		start, err := a.StartTime()
		if err != nil {
			return false
		}
		return !start.Before(now)
	})

	if len(upcoming) == 0 {
		return nil, nil
	}

	sort.Slice(upcoming, func(i, j int) bool { return upcoming[i].Start < upcoming[j].Start })
	return &upcoming[0], nil
}

// DebugSnapshot reports schedule counters for diagnosing the window logic.
func (s *AppointmentServiceImpl) DebugSnapshot(ctx context.Context) (*dto.DebugAppointmentsResponse, error) {
	appointments, err := s.repo.GetAllAppointments()
	if err != nil {
		return nil, apierrors.NewInternalError("Failed to load appointments")
	}

	booked := lo.Filter(appointments, func(a model.Appointment, _ int) bool {
		return a.IsBooked()
	})

	sample := booked
	if len(sample) > 5 {
		sample = sample[:5]
	}

	return &dto.DebugAppointmentsResponse{
		TotalAppointments:  len(appointments),
		BookedAppointments: len(booked),
		CurrentTime:        s.now().UTC(),
		ClinicTime:         s.clinicNow().Format(model.SlotLayout),
		SampleBooked:       sample,
	}, nil
}
