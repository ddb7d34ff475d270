package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"gathero_backend/internal/dto"
	"gathero_backend/internal/models"
	"gathero_backend/internal/repositories"
	"gathero_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeMedia records every storage interaction so tests can assert the
// upload-before-transaction and delete-after-commit ordering.
type fakeMedia struct {
	uploads []string
	removed []string
	counter int
}

func (f *fakeMedia) Upload(ctx context.Context, reader io.Reader, mimeType string) (string, error) {
	f.counter++
	key := fmt.Sprintf("events/upload-%d.png", f.counter)
	f.uploads = append(f.uploads, key)
	return key, nil
}

func (f *fakeMedia) SignedURL(ctx context.Context, key *string) string {
	if key == nil || *key == "" {
		return ""
	}
	return "http://media.test/" + *key
}

func (f *fakeMedia) Remove(ctx context.Context, key string) bool {
	f.removed = append(f.removed, key)
	return true
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Participation{},
		&models.Notification{},
		&models.Settings{},
		&models.ActivityLog{},
	))
	return db
}

func seedSettings(t *testing.T, db *gorm.DB, ceiling int) {
	t.Helper()
	payload, err := json.Marshal(map[string]int{"maxAttendeesPerEvent": ceiling})
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Settings{EventSettings: datatypes.JSON(payload)}).Error)
}

func seedUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        name + "@example.com",
		PasswordHash: "x",
		Name:         name,
		Role:         models.UserRoleUser,
		Status:       models.UserStatusActive,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedEvent(t *testing.T, db *gorm.DB, organizer *models.User) *models.Event {
	t.Helper()
	starts := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	ends := starts.Add(3 * time.Hour)
	event := &models.Event{
		OrganizerID:  organizer.ID,
		Title:        "Autumn Meetup",
		Description:  "Talks and pizza",
		Location:     "Main hall",
		StartsAt:     starts,
		EndsAt:       &ends,
		MaxAttendees: 100,
		IsPublic:     true,
		Status:       models.EventStatusUpcoming,
	}
	require.NoError(t, db.Create(event).Error)
	return event
}

func seedParticipation(t *testing.T, db *gorm.DB, user *models.User, event *models.Event, status models.ParticipationStatus) *models.Participation {
	t.Helper()
	p := &models.Participation{UserID: user.ID, EventID: event.ID, Status: status}
	require.NoError(t, db.Create(p).Error)
	return p
}

func newTestEventService(media MediaService) EventService {
	return NewEventService(
		repositories.NewEventRepository(),
		repositories.NewParticipationRepository(),
		repositories.NewNotificationRepository(),
		repositories.NewSettingsRepository(),
		repositories.NewUserRepository(),
		media,
		NewActivityService(repositories.NewActivityRepository()),
		UploadLimits{
			MaxSize:      1 << 20,
			AllowedTypes: []string{"image/png", "image/jpeg"},
		},
	)
}

// makeImageFile builds a real multipart.FileHeader the way gin would
// hand one to the handler.
func makeImageFile(t *testing.T, contentType string, payload []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="image.png"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["image"][0]
}

func notificationsFor(t *testing.T, db *gorm.DB, eventID string) []models.Notification {
	t.Helper()
	var notifications []models.Notification
	require.NoError(t, db.Find(&notifications).Error)

	var matched []models.Notification
	for _, n := range notifications {
		var data map[string]interface{}
		if len(n.Data) > 0 {
			_ = json.Unmarshal(n.Data, &data)
		}
		if data["eventId"] == eventID {
			matched = append(matched, n)
		}
	}
	return matched
}

func TestUpdateEventNotifiesApprovedParticipants(t *testing.T) {
	db := openTestDB(t)
	seedSettings(t, db, 500)

	organizer := seedUser(t, db, "dana")
	approvedOne := seedUser(t, db, "kim")
	approvedTwo := seedUser(t, db, "lee")
	pending := seedUser(t, db, "sam")
	event := seedEvent(t, db, organizer)

	seedParticipation(t, db, approvedOne, event, models.ParticipationStatusApproved)
	seedParticipation(t, db, approvedTwo, event, models.ParticipationStatusApproved)
	seedParticipation(t, db, pending, event, models.ParticipationStatusPending)

	svc := newTestEventService(&fakeMedia{})
	resp, err := svc.UpdateEvent(context.Background(), db, organizer.ID, event.ID,
		&dto.UpdateEventRequest{Title: strPtr("Winter Meetup")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Winter Meetup", resp.Title)

	notifications := notificationsFor(t, db, event.ID)
	require.Len(t, notifications, 2)

	recipients := map[string]bool{}
	for _, n := range notifications {
		assert.Equal(t, models.NotificationTypeEventUpdate, n.Type)
		assert.Contains(t, n.Message, "Winter Meetup")
		recipients[n.UserID] = true
	}
	assert.True(t, recipients[approvedOne.ID])
	assert.True(t, recipients[approvedTwo.ID])
	assert.False(t, recipients[pending.ID])
	assert.False(t, recipients[organizer.ID])
}

func TestUpdateEventNotificationInsertFailureRollsBackUpdate(t *testing.T) {
	db := openTestDB(t)
	seedSettings(t, db, 500)

	organizer := seedUser(t, db, "dana")
	participant := seedUser(t, db, "kim")
	event := seedEvent(t, db, organizer)
	seedParticipation(t, db, participant, event, models.ParticipationStatusApproved)

	// Make the batch insert fail mid-transaction: the fan-out shares
	// the update's transaction, so the otherwise-valid title change
	// must roll back with it.
	require.NoError(t, db.Migrator().DropTable(&models.Notification{}))

	svc := newTestEventService(&fakeMedia{})
	_, err := svc.UpdateEvent(context.Background(), db, organizer.ID, event.ID,
		&dto.UpdateEventRequest{Title: strPtr("Winter Meetup")}, nil)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotificationFailed, appErr.Code)

	var unchanged models.Event
	require.NoError(t, db.First(&unchanged, "id = ?", event.ID).Error)
	assert.Equal(t, "Autumn Meetup", unchanged.Title)
}

func TestUpdateEventNoMaterialChangeNoNotifications(t *testing.T) {
	db := openTestDB(t)
	seedSettings(t, db, 500)

	organizer := seedUser(t, db, "dana")
	participant := seedUser(t, db, "kim")
	event := seedEvent(t, db, organizer)
	seedParticipation(t, db, participant, event, models.ParticipationStatusApproved)

	svc := newTestEventService(&fakeMedia{})
	_, err := svc.UpdateEvent(context.Background(), db, organizer.ID, event.ID,
		&dto.UpdateEventRequest{Title: strPtr(event.Title), MaxAttendees: intPtr(50)}, nil)
	require.NoError(t, err)

	assert.Empty(t, notificationsFor(t, db, event.ID))

	var updated models.Event
	require.NoError(t, db.First(&updated, "id = ?", event.ID).Error)
	assert.Equal(t, 50, updated.MaxAttendees)
}

func TestUpdateEventCapacityAboveCeilingRejected(t *testing.T) {
	db := openTestDB(t)
	seedSettings(t, db, 500)

	organizer := seedUser(t, db, "dana")
	participant := seedUser(t, db, "kim")
	event := seedEvent(t, db, organizer)
	seedParticipation(t, db, participant, event, models.ParticipationStatusApproved)

	svc := newTestEventService(&fakeMedia{})
	_, err := svc.UpdateEvent(context.Background(), db, organizer.ID, event.ID,
		&dto.UpdateEventRequest{Title: strPtr("Renamed"), MaxAttendees: intPtr(501)}, nil)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeCapacityExceeded, appErr.Code)
	assert.Equal(t, 400, appErr.HTTPCode)

	var unchanged models.Event
	require.NoError(t, db.First(&unchanged, "id = ?", event.ID).Error)
	assert.Equal(t, "Autumn Meetup", unchanged.Title)
	assert.Empty(t, notificationsFor(t, db, event.ID))
}

func TestUpdateEventMissingSettingsIsServerError(t *testing.T) {
	db := openTestDB(t)

	organizer := seedUser(t, db, "dana")
	event := seedEvent(t, db, organizer)

	svc := newTestEventService(&fakeMedia{})
	_, err := svc.UpdateEvent(context.Background(), db, organizer.ID, event.ID,
		&dto.UpdateEventRequest{Title: strPtr("Renamed")}, nil)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeConfigMissing, appErr.Code)
	assert.Equal(t, 500, appErr.HTTPCode)
}

func TestUpdateEventOnlyOrganizerMayEdit(t *testing.T) {
	db := openTestDB(t)
	seedSettings(t, db, 500)

	organizer := seedUser(t, db, "dana")
	stranger := seedUser(t, db, "kim")
	event := seedEvent(t, db, organizer)

	svc := newTestEventService(&fakeMedia{})
	_, err := svc.UpdateEvent(context.Background(), db, stranger.ID, event.ID,
		&dto.UpdateEventRequest{Title: strPtr("Hijacked")}, nil)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

func TestUpdateEventUnknownIDNotFound(t *testing.T) {
	db := openTestDB(t)
	seedSettings(t, db, 500)
	organizer := seedUser(t, db, "dana")

	svc := newTestEventService(&fakeMedia{})
	_, err := svc.UpdateEvent(context.Background(), db, organizer.ID,
		"00000000-0000-0000-0000-000000000000",
		&dto.UpdateEventRequest{Title: strPtr("Renamed")}, nil)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeEventNotFound, appErr.Code)
}

func TestUpdateEventReplacesImageAfterCommit(t *testing.T) {
	db := openTestDB(t)
	seedSettings(t, db, 500)

	organizer := seedUser(t, db, "dana")
	event := seedEvent(t, db, organizer)
	oldKey := "events/old.png"
	require.NoError(t, db.Model(&models.Event{}).Where("id = ?", event.ID).
		Update("image_key", oldKey).Error)

	media := &fakeMedia{}
	svc := newTestEventService(media)
	file := makeImageFile(t, "image/png", []byte("png-bytes"))

	resp, err := svc.UpdateEvent(context.Background(), db, organizer.ID, event.ID,
		&dto.UpdateEventRequest{}, file)
	require.NoError(t, err)

	require.Len(t, media.uploads, 1)
	newKey := media.uploads[0]
	assert.Equal(t, []string{oldKey}, media.removed)
	assert.Equal(t, "http://media.test/"+newKey, resp.ImageURL)

	var updated models.Event
	require.NoError(t, db.First(&updated, "id = ?", event.ID).Error)
	require.NotNil(t, updated.ImageKey)
	assert.Equal(t, newKey, *updated.ImageKey)

	// An image swap alone is a material change.
	assert.Len(t, notificationsFor(t, db, event.ID), 0) // no approved participants seeded
}

func TestUpdateEventAbortDiscardsFreshUpload(t *testing.T) {
	db := openTestDB(t)
	seedSettings(t, db, 500)

	organizer := seedUser(t, db, "dana")
	event := seedEvent(t, db, organizer)

	media := &fakeMedia{}
	svc := newTestEventService(media)
	file := makeImageFile(t, "image/png", []byte("png-bytes"))

	// EndsAt before StartsAt fails record validation after the upload
	// already happened.
	badEnd := event.StartsAt.Add(-time.Hour)
	_, err := svc.UpdateEvent(context.Background(), db, organizer.ID, event.ID,
		&dto.UpdateEventRequest{EndsAt: &badEnd}, file)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodePersistFailed, appErr.Code)

	require.Len(t, media.uploads, 1)
	assert.Equal(t, media.uploads, media.removed)

	var unchanged models.Event
	require.NoError(t, db.First(&unchanged, "id = ?", event.ID).Error)
	assert.Nil(t, unchanged.ImageKey)
}

func TestUpdateEventRejectsBadUploads(t *testing.T) {
	db := openTestDB(t)
	seedSettings(t, db, 500)

	organizer := seedUser(t, db, "dana")
	event := seedEvent(t, db, organizer)
	media := &fakeMedia{}
	svc := newTestEventService(media)

	t.Run("unsupported type", func(t *testing.T) {
		file := makeImageFile(t, "application/pdf", []byte("%PDF"))
		_, err := svc.UpdateEvent(context.Background(), db, organizer.ID, event.ID,
			&dto.UpdateEventRequest{}, file)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.CodeInvalidUploadFormat, appErr.Code)
		assert.Empty(t, media.uploads)
	})

	t.Run("oversized file", func(t *testing.T) {
		file := makeImageFile(t, "image/png", bytes.Repeat([]byte("a"), (1<<20)+1))
		_, err := svc.UpdateEvent(context.Background(), db, organizer.ID, event.ID,
			&dto.UpdateEventRequest{}, file)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.CodeFileTooLarge, appErr.Code)
		assert.Empty(t, media.uploads)
	})
}

func TestCreateEventDefaultsCapacityToCeiling(t *testing.T) {
	db := openTestDB(t)
	seedSettings(t, db, 500)
	organizer := seedUser(t, db, "dana")

	svc := newTestEventService(&fakeMedia{})
	starts := time.Now().Add(24 * time.Hour)
	resp, err := svc.CreateEvent(context.Background(), db, organizer.ID, &dto.CreateEventRequest{
		Title:    "Book Club",
		StartsAt: starts,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, 500, resp.MaxAttendees)
	assert.Equal(t, models.EventStatusUpcoming, resp.Status)
	assert.True(t, resp.IsPublic)
	assert.Equal(t, organizer.ID, resp.OrganizerID)
}

func TestCreateEventAboveCeilingRejected(t *testing.T) {
	db := openTestDB(t)
	seedSettings(t, db, 500)
	organizer := seedUser(t, db, "dana")

	svc := newTestEventService(&fakeMedia{})
	_, err := svc.CreateEvent(context.Background(), db, organizer.ID, &dto.CreateEventRequest{
		Title:        "Book Club",
		StartsAt:     time.Now().Add(24 * time.Hour),
		MaxAttendees: intPtr(501),
	}, nil)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeCapacityExceeded, appErr.Code)

	var count int64
	require.NoError(t, db.Model(&models.Event{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteEventCascadesAndRemovesMedia(t *testing.T) {
	db := openTestDB(t)
	seedSettings(t, db, 500)

	organizer := seedUser(t, db, "dana")
	participant := seedUser(t, db, "kim")
	event := seedEvent(t, db, organizer)
	key := "events/cover.png"
	require.NoError(t, db.Model(&models.Event{}).Where("id = ?", event.ID).
		Update("image_key", key).Error)
	participation := seedParticipation(t, db, participant, event, models.ParticipationStatusApproved)

	media := &fakeMedia{}
	svc := newTestEventService(media)
	require.NoError(t, svc.DeleteEvent(context.Background(), db, organizer.ID, models.UserRoleUser, event.ID))

	var deleted models.Event
	require.NoError(t, db.First(&deleted, "id = ?", event.ID).Error)
	assert.Equal(t, models.EventStatusDeleted, deleted.Status)

	var cascaded models.Participation
	require.NoError(t, db.First(&cascaded, "id = ?", participation.ID).Error)
	assert.Equal(t, models.ParticipationStatusDeleted, cascaded.Status)

	assert.Equal(t, []string{key}, media.removed)

	// Soft-deleted events read as absent.
	_, err := svc.GetEvent(context.Background(), db, event.ID)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeEventNotFound, appErr.Code)
}

func TestDeleteEventAuthorization(t *testing.T) {
	db := openTestDB(t)
	seedSettings(t, db, 500)

	organizer := seedUser(t, db, "dana")
	stranger := seedUser(t, db, "kim")
	admin := seedUser(t, db, "root")
	event := seedEvent(t, db, organizer)

	svc := newTestEventService(&fakeMedia{})

	err := svc.DeleteEvent(context.Background(), db, stranger.ID, models.UserRoleUser, event.ID)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)

	require.NoError(t, svc.DeleteEvent(context.Background(), db, admin.ID, models.UserRoleAdmin, event.ID))
}
