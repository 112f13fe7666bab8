package service

import (
	"context"

	"lectern/internal/domain"
)

type Repository interface {
	FindAll(ctx context.Context) ([]domain.Lesson, error)
	FindByID(ctx context.Context, lessonID int) (*domain.Lesson, error)
}

type LessonsService struct {
	repo Repository
}

func NewService(repo Repository) *LessonsService {
	return &LessonsService{repo: repo}
}

func (s *LessonsService) GetAllLessons(ctx context.Context) ([]domain.Lesson, error) {
	return s.repo.FindAll(ctx)
}

func (s *LessonsService) GetLessonByID(ctx context.Context, lessonID int) (*domain.Lesson, error) {
	return s.repo.FindByID(ctx, lessonID)
}
