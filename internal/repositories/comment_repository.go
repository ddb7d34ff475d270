package repositories

import (
	"errors"

	"gathero_backend/internal/models"

	"gorm.io/gorm"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentRepository interface {
	Create(db *gorm.DB, comment *models.Comment) error
	FindByID(db *gorm.DB, id string) (*models.Comment, error)
	FindByEvent(db *gorm.DB, eventID string, limit, offset int) ([]models.Comment, int64, error)
	Delete(db *gorm.DB, id string) error
}

type CommentRepositoryImpl struct{}

func NewCommentRepository() CommentRepository {
	return &CommentRepositoryImpl{}
}

func (r *CommentRepositoryImpl) Create(db *gorm.DB, comment *models.Comment) error {
	return db.Create(comment).Error
}

func (r *CommentRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Comment, error) {
	var comment models.Comment
	if err := db.First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepositoryImpl) FindByEvent(db *gorm.DB, eventID string, limit, offset int) ([]models.Comment, int64, error) {
	query := db.Model(&models.Comment{}).Where("event_id = ?", eventID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit < 1 {
		limit = 50
	}

	var comments []models.Comment
	err := query.Preload("User").
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *CommentRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Comment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}
