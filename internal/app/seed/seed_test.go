package seed

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"clinic-scribe/internal/app/model"
	"clinic-scribe/internal/app/testutil"
)

func newQuietSeeder(dao *testutil.MockClinicDAO) *Seeder {
	s := NewSeeder(dao)
	s.out = io.Discard
	return s
}

func expectInserts(dao *testutil.MockClinicDAO) *[]model.Appointment {
	insuranceID := 0
	dao.On("InsertInsurance", mock.AnythingOfType("*model.Insurance")).Run(func(args mock.Arguments) {
		insuranceID++
		args.Get(0).(*model.Insurance).ID = insuranceID
	}).Return(nil)

	patientID := 0
	dao.On("InsertPatient", mock.AnythingOfType("*model.Patient")).Run(func(args mock.Arguments) {
		patientID++
		args.Get(0).(*model.Patient).ID = patientID
	}).Return(nil)

	inserted := &[]model.Appointment{}
	appointmentID := 0
	dao.On("InsertAppointment", mock.AnythingOfType("*model.Appointment")).Run(func(args mock.Arguments) {
		appointmentID++
		appt := args.Get(0).(*model.Appointment)
		appt.ID = appointmentID
		*inserted = append(*inserted, *appt)
	}).Return(nil)

	return inserted
}

func TestSeedSingleDay(t *testing.T) {
	dao := new(testutil.MockClinicDAO)
	inserted := expectInserts(dao)

	result, err := newQuietSeeder(dao).Seed([]string{"2025-12-12"}, 2)
	require.NoError(t, err)

	// 09:00 through 15:30 in half-hour steps.
	assert.Equal(t, 14, result.Appointments)
	assert.Equal(t, 7, result.Booked)
	assert.Equal(t, 10, result.Patients)
	assert.Equal(t, 4, result.Insurances)

	slots := *inserted
	require.Len(t, slots, 14)
	assert.Equal(t, "2025-12-12T09:00:00", slots[0].Start)
	assert.Equal(t, "2025-12-12T15:30:00", slots[13].Start)

	// Every other slot booked, assigned round-robin.
	assert.True(t, slots[0].IsBooked())
	assert.False(t, slots[1].IsBooked())
	require.NotNil(t, slots[0].PatientID)
	require.NotNil(t, slots[2].PatientID)
	assert.NotEqual(t, *slots[0].PatientID, *slots[2].PatientID)
}

func TestSeedBookNone(t *testing.T) {
	dao := new(testutil.MockClinicDAO)
	inserted := expectInserts(dao)

	result, err := newQuietSeeder(dao).Seed([]string{"2025-12-15"}, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Booked)

	for _, slot := range *inserted {
		assert.Equal(t, model.AppointmentStatusAvailable, slot.Status)
		assert.Nil(t, slot.PatientID)
	}
}

func TestSeedInvalidDate(t *testing.T) {
	dao := new(testutil.MockClinicDAO)
	expectInserts(dao)

	_, err := newQuietSeeder(dao).Seed([]string{"12/15/2025"}, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid seed date")
}
