package services

import (
	"context"
	"testing"

	"gathero_backend/internal/dto"
	"gathero_backend/internal/models"
	"gathero_backend/internal/repositories"
	"gathero_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestParticipationService() ParticipationService {
	return NewParticipationService(
		repositories.NewParticipationRepository(),
		repositories.NewEventRepository(),
		repositories.NewNotificationRepository(),
		repositories.NewUserRepository(),
		NewActivityService(repositories.NewActivityRepository()),
	)
}

func userNotifications(t *testing.T, db *gorm.DB, userID string) []models.Notification {
	t.Helper()
	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ?", userID).Find(&notifications).Error)
	return notifications
}

func TestJoinEventCreatesRequestAndNotifiesOrganizer(t *testing.T) {
	db := openTestDB(t)
	organizer := seedUser(t, db, "dana")
	joiner := seedUser(t, db, "kim")
	event := seedEvent(t, db, organizer)

	svc := newTestParticipationService()
	resp, err := svc.JoinEvent(context.Background(), db, joiner.ID, event.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ParticipationStatusPending, resp.Status)
	assert.Equal(t, joiner.ID, resp.UserID)

	notifications := userNotifications(t, db, organizer.ID)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationTypeJoinRequest, notifications[0].Type)
}

func TestJoinEventRejectsDuplicates(t *testing.T) {
	db := openTestDB(t)
	organizer := seedUser(t, db, "dana")
	joiner := seedUser(t, db, "kim")
	event := seedEvent(t, db, organizer)

	svc := newTestParticipationService()
	_, err := svc.JoinEvent(context.Background(), db, joiner.ID, event.ID)
	require.NoError(t, err)

	_, err = svc.JoinEvent(context.Background(), db, joiner.ID, event.ID)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeAlreadyParticipant, appErr.Code)
}

func TestJoinEventRejectsOrganizer(t *testing.T) {
	db := openTestDB(t)
	organizer := seedUser(t, db, "dana")
	event := seedEvent(t, db, organizer)

	svc := newTestParticipationService()
	_, err := svc.JoinEvent(context.Background(), db, organizer.ID, event.ID)
	require.Error(t, err)
}

func TestJoinEventRejectsWhenFull(t *testing.T) {
	db := openTestDB(t)
	organizer := seedUser(t, db, "dana")
	first := seedUser(t, db, "kim")
	second := seedUser(t, db, "lee")
	event := seedEvent(t, db, organizer)
	require.NoError(t, db.Model(&models.Event{}).Where("id = ?", event.ID).
		Update("max_attendees", 1).Error)
	seedParticipation(t, db, first, event, models.ParticipationStatusApproved)

	svc := newTestParticipationService()
	_, err := svc.JoinEvent(context.Background(), db, second.ID, event.ID)
	require.Error(t, err)
}

func TestJoinEventRejectsNonUpcoming(t *testing.T) {
	db := openTestDB(t)
	organizer := seedUser(t, db, "dana")
	joiner := seedUser(t, db, "kim")
	event := seedEvent(t, db, organizer)
	require.NoError(t, db.Model(&models.Event{}).Where("id = ?", event.ID).
		Update("status", models.EventStatusEnded).Error)

	svc := newTestParticipationService()
	_, err := svc.JoinEvent(context.Background(), db, joiner.ID, event.ID)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeEventNotJoinable, appErr.Code)
}

func TestUpdateStatusApproveNotifiesRequester(t *testing.T) {
	db := openTestDB(t)
	organizer := seedUser(t, db, "dana")
	joiner := seedUser(t, db, "kim")
	event := seedEvent(t, db, organizer)
	participation := seedParticipation(t, db, joiner, event, models.ParticipationStatusPending)

	svc := newTestParticipationService()
	resp, err := svc.UpdateStatus(context.Background(), db, organizer.ID, participation.ID,
		&dto.UpdateParticipationStatusRequest{Status: "approved"})
	require.NoError(t, err)
	assert.Equal(t, models.ParticipationStatusApproved, resp.Status)

	notifications := userNotifications(t, db, joiner.ID)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationTypeJoinApproved, notifications[0].Type)
}

func TestUpdateStatusOnlyOrganizerDecides(t *testing.T) {
	db := openTestDB(t)
	organizer := seedUser(t, db, "dana")
	joiner := seedUser(t, db, "kim")
	event := seedEvent(t, db, organizer)
	participation := seedParticipation(t, db, joiner, event, models.ParticipationStatusPending)

	svc := newTestParticipationService()
	_, err := svc.UpdateStatus(context.Background(), db, joiner.ID, participation.ID,
		&dto.UpdateParticipationStatusRequest{Status: "approved"})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

func TestUpdateStatusRejectsDoubleDecision(t *testing.T) {
	db := openTestDB(t)
	organizer := seedUser(t, db, "dana")
	joiner := seedUser(t, db, "kim")
	event := seedEvent(t, db, organizer)
	participation := seedParticipation(t, db, joiner, event, models.ParticipationStatusApproved)

	svc := newTestParticipationService()
	_, err := svc.UpdateStatus(context.Background(), db, organizer.ID, participation.ID,
		&dto.UpdateParticipationStatusRequest{Status: "rejected"})
	require.Error(t, err)
}

func TestLeaveEvent(t *testing.T) {
	db := openTestDB(t)
	organizer := seedUser(t, db, "dana")
	joiner := seedUser(t, db, "kim")
	event := seedEvent(t, db, organizer)
	participation := seedParticipation(t, db, joiner, event, models.ParticipationStatusApproved)

	svc := newTestParticipationService()
	require.NoError(t, svc.LeaveEvent(context.Background(), db, joiner.ID, event.ID))

	var left models.Participation
	require.NoError(t, db.First(&left, "id = ?", participation.ID).Error)
	assert.Equal(t, models.ParticipationStatusDeleted, left.Status)
}
