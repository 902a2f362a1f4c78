package services

import (
	"context"
	"testing"
	"time"

	"bandmate/internal/adapters/persistence/models"
	"bandmate/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rehearsalFixture struct {
	svc              *RehearsalService
	bandRepo         *fakeBandRepo
	rehearsalRepo    *fakeRehearsalRepo
	resourceRepo     *fakeResourceRepo
	notificationRepo *fakeNotificationRepo
	band             *models.Band
}

// newRehearsalFixture builds a band owned by user 1 with members 2 and 3.
func newRehearsalFixture(t *testing.T) *rehearsalFixture {
	t.Helper()

	bandRepo := newFakeBandRepo()
	rehearsalRepo := newFakeRehearsalRepo()
	resourceRepo := newFakeResourceRepo()
	notificationRepo := newFakeNotificationRepo()
	notifyService := NewNotificationService(notificationRepo, bandRepo, rehearsalRepo)

	band := &models.Band{Name: "The Testers", CreatedByID: 1}
	require.NoError(t, bandRepo.Create(context.Background(), band))
	for _, userID := range []uint{2, 3} {
		require.NoError(t, bandRepo.AddMember(context.Background(), &models.BandMember{
			BandID: band.ID,
			UserID: userID,
			Role:   models.BandRoleMember,
		}))
	}

	return &rehearsalFixture{
		svc:              NewRehearsalService(rehearsalRepo, resourceRepo, notifyService),
		bandRepo:         bandRepo,
		rehearsalRepo:    rehearsalRepo,
		resourceRepo:     resourceRepo,
		notificationRepo: notificationRepo,
		band:             band,
	}
}

func validRehearsalInput() *CreateRehearsalInput {
	starts := time.Now().Add(48 * time.Hour)
	return &CreateRehearsalInput{
		Title:    "Tuesday run-through",
		Location: "Room A",
		StartsAt: starts,
		EndsAt:   starts.Add(2 * time.Hour),
	}
}

func TestCreateRehearsalNotifiesOthers(t *testing.T) {
	fx := newRehearsalFixture(t)

	rehearsal, err := fx.svc.Create(context.Background(), fx.band.ID, 1, validRehearsalInput())
	require.NoError(t, err)

	assert.Equal(t, models.RehearsalScheduled, rehearsal.Status)
	assert.Equal(t, uint(1), rehearsal.CreatedByID)

	// The actor gets no notification; the other two members do
	actorNotifs, _, err := fx.notificationRepo.ListByUserID(context.Background(), 1, false, 0, 100)
	require.NoError(t, err)
	assert.Empty(t, actorNotifs)

	for _, userID := range []uint{2, 3} {
		notifs, _, err := fx.notificationRepo.ListByUserID(context.Background(), userID, false, 0, 100)
		require.NoError(t, err)
		require.Len(t, notifs, 1)
		assert.Equal(t, models.NotifyRehearsalCreated, notifs[0].Type)
	}
}

func TestCreateRehearsalInvalidTimes(t *testing.T) {
	fx := newRehearsalFixture(t)

	input := validRehearsalInput()
	input.EndsAt = input.StartsAt.Add(-time.Hour)
	_, err := fx.svc.Create(context.Background(), fx.band.ID, 1, input)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	input = validRehearsalInput()
	input.StartsAt = time.Time{}
	input.EndsAt = time.Time{}
	_, err = fx.svc.Create(context.Background(), fx.band.ID, 1, input)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestCreateRehearsalWithResource(t *testing.T) {
	fx := newRehearsalFixture(t)

	room := &models.Resource{Name: "Big Room", Type: "room", IsActive: true}
	require.NoError(t, fx.resourceRepo.Create(context.Background(), room))

	input := validRehearsalInput()
	input.ResourceID = &room.ID

	rehearsal, err := fx.svc.Create(context.Background(), fx.band.ID, 1, input)
	require.NoError(t, err)
	require.NotNil(t, rehearsal.ResourceID)
	assert.Equal(t, room.ID, *rehearsal.ResourceID)
}

func TestCreateRehearsalInactiveResource(t *testing.T) {
	fx := newRehearsalFixture(t)

	room := &models.Resource{Name: "Closed Room", Type: "room", IsActive: false}
	require.NoError(t, fx.resourceRepo.Create(context.Background(), room))

	input := validRehearsalInput()
	input.ResourceID = &room.ID

	_, err := fx.svc.Create(context.Background(), fx.band.ID, 1, input)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestUpdateRehearsal(t *testing.T) {
	fx := newRehearsalFixture(t)
	rehearsal, err := fx.svc.Create(context.Background(), fx.band.ID, 1, validRehearsalInput())
	require.NoError(t, err)

	newTitle := "Moved to Thursday"
	updated, err := fx.svc.Update(context.Background(), rehearsal.ID, 1, &UpdateRehearsalInput{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "Moved to Thursday", updated.Title)

	// Update notifications went out on top of the create ones
	notifs, _, err := fx.notificationRepo.ListByUserID(context.Background(), 2, false, 0, 100)
	require.NoError(t, err)
	assert.Len(t, notifs, 2)
}

func TestCancelRehearsalIsIdempotent(t *testing.T) {
	fx := newRehearsalFixture(t)
	rehearsal, err := fx.svc.Create(context.Background(), fx.band.ID, 1, validRehearsalInput())
	require.NoError(t, err)

	cancelled, err := fx.svc.Cancel(context.Background(), rehearsal.ID, 1)
	require.NoError(t, err)
	assert.True(t, cancelled.IsCancelled())

	// Second cancel is a no-op and sends no further notifications
	_, err = fx.svc.Cancel(context.Background(), rehearsal.ID, 1)
	require.NoError(t, err)

	notifs, _, err := fx.notificationRepo.ListByUserID(context.Background(), 2, false, 0, 100)
	require.NoError(t, err)
	assert.Len(t, notifs, 2) // created + cancelled
}

func TestUpdateCancelledRehearsal(t *testing.T) {
	fx := newRehearsalFixture(t)
	rehearsal, err := fx.svc.Create(context.Background(), fx.band.ID, 1, validRehearsalInput())
	require.NoError(t, err)
	_, err = fx.svc.Cancel(context.Background(), rehearsal.ID, 1)
	require.NoError(t, err)

	newTitle := "Too late"
	_, err = fx.svc.Update(context.Background(), rehearsal.ID, 1, &UpdateRehearsalInput{Title: &newTitle})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestRSVPUpserts(t *testing.T) {
	fx := newRehearsalFixture(t)
	rehearsal, err := fx.svc.Create(context.Background(), fx.band.ID, 1, validRehearsalInput())
	require.NoError(t, err)

	_, err = fx.svc.RSVP(context.Background(), rehearsal.ID, 2, &RSVPInput{Status: models.AttendanceYes})
	require.NoError(t, err)

	// Changing the answer replaces, never duplicates
	_, err = fx.svc.RSVP(context.Background(), rehearsal.ID, 2, &RSVPInput{Status: models.AttendanceNo, Comment: "gig clash"})
	require.NoError(t, err)

	attendance, err := fx.svc.ListAttendance(context.Background(), rehearsal.ID)
	require.NoError(t, err)
	require.Len(t, attendance, 1)
	assert.Equal(t, models.AttendanceNo, attendance[0].Status)
	assert.Equal(t, "gig clash", attendance[0].Comment)
}

func TestRSVPValidation(t *testing.T) {
	fx := newRehearsalFixture(t)
	rehearsal, err := fx.svc.Create(context.Background(), fx.band.ID, 1, validRehearsalInput())
	require.NoError(t, err)

	_, err = fx.svc.RSVP(context.Background(), rehearsal.ID, 2, &RSVPInput{Status: "perhaps"})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = fx.svc.RSVP(context.Background(), 999, 2, &RSVPInput{Status: models.AttendanceYes})
	assert.ErrorIs(t, err, domain.ErrRehearsalNotFound)
}

func TestRSVPCancelledRehearsal(t *testing.T) {
	fx := newRehearsalFixture(t)
	rehearsal, err := fx.svc.Create(context.Background(), fx.band.ID, 1, validRehearsalInput())
	require.NoError(t, err)
	_, err = fx.svc.Cancel(context.Background(), rehearsal.ID, 1)
	require.NoError(t, err)

	_, err = fx.svc.RSVP(context.Background(), rehearsal.ID, 2, &RSVPInput{Status: models.AttendanceYes})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestSendRehearsalReminders(t *testing.T) {
	fx := newRehearsalFixture(t)
	notifyService := NewNotificationService(fx.notificationRepo, fx.bandRepo, fx.rehearsalRepo)

	// One rehearsal inside the 24h window, one beyond it
	soon := validRehearsalInput()
	soon.StartsAt = time.Now().Add(3 * time.Hour)
	soon.EndsAt = soon.StartsAt.Add(2 * time.Hour)
	_, err := fx.svc.Create(context.Background(), fx.band.ID, 1, soon)
	require.NoError(t, err)

	later := validRehearsalInput()
	later.StartsAt = time.Now().Add(72 * time.Hour)
	later.EndsAt = later.StartsAt.Add(2 * time.Hour)
	_, err = fx.svc.Create(context.Background(), fx.band.ID, 1, later)
	require.NoError(t, err)

	require.NoError(t, notifyService.SendRehearsalReminders(context.Background()))

	notifs, _, err := fx.notificationRepo.ListByUserID(context.Background(), 2, false, 0, 100)
	require.NoError(t, err)
	var reminders int
	for _, n := range notifs {
		if n.Type == models.NotifyRehearsalReminder {
			reminders++
		}
	}
	assert.Equal(t, 1, reminders)

	// A second pass does not duplicate reminders
	require.NoError(t, notifyService.SendRehearsalReminders(context.Background()))
	notifs, _, err = fx.notificationRepo.ListByUserID(context.Background(), 2, false, 0, 100)
	require.NoError(t, err)
	reminders = 0
	for _, n := range notifs {
		if n.Type == models.NotifyRehearsalReminder {
			reminders++
		}
	}
	assert.Equal(t, 1, reminders)
}
