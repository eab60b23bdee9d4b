package seed

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"clinic-scribe/internal/app/model"
	"clinic-scribe/internal/app/repository"
)

// Clinic day boundaries for generated slots.
const (
	slotStartHour = 9
	slotEndHour   = 16
)

var seedPatients = []model.Patient{
	{FirstName: "Sarah", LastName: "Johnson", DOB: "1988-03-15", Email: "sarah.johnson@example.com", Phone: "5553334444", Gender: "female"},
	{FirstName: "Michael", LastName: "Chen", DOB: "1992-11-08", Email: "michael.chen@example.com", Phone: "5556667777", Gender: "male"},
	{FirstName: "Emily", LastName: "Rodriguez", DOB: "1987-06-20", Email: "emily.rodriguez@example.com", Phone: "5558889999", Gender: "female"},
	{FirstName: "David", LastName: "Kim", DOB: "1995-09-12", Email: "david.kim@example.com", Phone: "5550001111", Gender: "male"},
	{FirstName: "Jessica", LastName: "Martinez", DOB: "1991-04-25", Email: "jessica.martinez@example.com", Phone: "5552223333", Gender: "female"},
	{FirstName: "Robert", LastName: "Taylor", DOB: "1986-12-30", Email: "robert.taylor@example.com", Phone: "5554445555", Gender: "male"},
	{FirstName: "Amanda", LastName: "Anderson", DOB: "1994-07-18", Email: "amanda.anderson@example.com", Phone: "5556668888", Gender: "female"},
	{FirstName: "James", LastName: "Wilson", DOB: "1989-01-22", Email: "james.wilson@example.com", Phone: "5557778888", Gender: "male"},
	{FirstName: "Lisa", LastName: "Brown", DOB: "1993-05-14", Email: "lisa.brown@example.com", Phone: "5559990000", Gender: "female"},
	{FirstName: "Christopher", LastName: "Davis", DOB: "1990-08-07", Email: "chris.davis@example.com", Phone: "5551112222", Gender: "male"},
}

var seedInsurances = []model.Insurance{
	{Name: "Aetna Choice", PlanType: "PPO", Payer: "Aetna"},
	{Name: "Blue Advantage", PlanType: "HMO", Payer: "Blue Cross Blue Shield"},
	{Name: "UnitedHealthcare Select", PlanType: "EPO", Payer: "UnitedHealthcare"},
	{Name: "Medicare Part B", PlanType: "Medicare", Payer: "CMS"},
}

// Seeder populates the database with demo patients, insurances, and a
// half-hour slot schedule for the given dates.
type Seeder struct {
	repo repository.ClinicDAO
	out  io.Writer
}

// NewSeeder creates a seeder writing progress to stderr.
func NewSeeder(repo repository.ClinicDAO) *Seeder {
	return &Seeder{repo: repo, out: os.Stderr}
}

// Result reports what a seed run inserted.
type Result struct {
	Patients     int
	Insurances   int
	Appointments int
	Booked       int
}

// Seed inserts insurances, patients, and appointment slots for each date.
// Dates use YYYY-MM-DD. Every bookEvery-th slot is booked, assigned
// round-robin across the seeded patients; bookEvery <= 0 books nothing.
func (s *Seeder) Seed(dates []string, bookEvery int) (*Result, error) {
	result := &Result{}

	insuranceIDs := make([]int, 0, len(seedInsurances))
	for _, ins := range seedInsurances {
		i := ins
		if err := s.repo.InsertInsurance(&i); err != nil {
			return nil, fmt.Errorf("seed insurance %q: %w", i.Name, err)
		}
		insuranceIDs = append(insuranceIDs, i.ID)
		result.Insurances++
	}

	patientIDs := make([]int, 0, len(seedPatients))
	for n, pat := range seedPatients {
		p := pat
		if len(insuranceIDs) > 0 {
			id := insuranceIDs[n%len(insuranceIDs)]
			p.InsuranceID = &id
		}
		if err := s.repo.InsertPatient(&p); err != nil {
			return nil, fmt.Errorf("seed patient %s: %w", p.FullName(), err)
		}
		patientIDs = append(patientIDs, p.ID)
		result.Patients++
	}

	slots := make([]model.Appointment, 0)
	for _, date := range dates {
		daySlots, err := slotsForDate(date)
		if err != nil {
			return nil, err
		}
		slots = append(slots, daySlots...)
	}

	container := mpb.New(
		mpb.WithOutput(s.out),
		mpb.WithRefreshRate(120*time.Millisecond),
		mpb.WithWaitGroup(&sync.WaitGroup{}),
	)
	bar := container.AddBar(int64(len(slots)),
		mpb.PrependDecorators(
			decor.Name("Seeding appointments ", decor.WC{W: 21, C: decor.DindentRight}),
			decor.CountersNoUnit("(%d/%d)", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.NewPercentage("%.1f", decor.WCSyncSpace),
		),
	)

	booked := 0
	for n := range slots {
		slot := &slots[n]
		if bookEvery > 0 && n%bookEvery == 0 && len(patientIDs) > 0 {
			slot.Status = model.AppointmentStatusBooked
			id := patientIDs[booked%len(patientIDs)]
			slot.PatientID = &id
			booked++
		}
		if err := s.repo.InsertAppointment(slot); err != nil {
			return nil, fmt.Errorf("seed appointment at %s: %w", slot.Start, err)
		}
		bar.Increment()
		result.Appointments++
	}
	result.Booked = booked

	container.Wait()
	return result, nil
}

// slotsForDate generates the free half-hour slots between the clinic's
// opening and closing hours.
func slotsForDate(date string) ([]model.Appointment, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid seed date %q: %w", date, err)
	}

	slots := make([]model.Appointment, 0)
	current := day.Add(slotStartHour * time.Hour)
	end := day.Add(slotEndHour * time.Hour)
	for current.Before(end) {
		slots = append(slots, model.Appointment{
			Status:       model.AppointmentStatusAvailable,
			Start:        current.Format(model.SlotLayout),
			SlotDuration: model.DefaultSlotMinutes,
		})
		current = current.Add(time.Duration(model.DefaultSlotMinutes) * time.Minute)
	}
	return slots, nil
}
