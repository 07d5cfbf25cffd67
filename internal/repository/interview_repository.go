package repository

import (
	"github.com/Nik-Maltcev/careeros-sub000/internal/model"
	"gorm.io/gorm"
)

type InterviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) *InterviewRepository {
	return &InterviewRepository{db}
}

func (r *InterviewRepository) CreateSession(session *model.InterviewSession) error {
	return r.db.Create(session).Error
}

func (r *InterviewRepository) FindSessionByID(id string) (*model.InterviewSession, error) {
	var session model.InterviewSession
	err := r.db.First(&session, "id = ?", id).Error
	return &session, err
}

func (r *InterviewRepository) ListSessions(page, pageSize int) ([]model.InterviewSession, int64, error) {
	var sessions []model.InterviewSession
	var total int64

	if err := r.db.Model(&model.InterviewSession{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&sessions).Error
	return sessions, total, err
}
