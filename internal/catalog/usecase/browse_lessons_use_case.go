package usecase

import (
	"context"

	"lectern/internal/domain"
	"lectern/internal/dto"
)

type Service interface {
	GetAllLessons(ctx context.Context) ([]domain.Lesson, error)
	GetLessonByID(ctx context.Context, lessonID int) (*domain.Lesson, error)
}

type BrowseUseCase struct {
	service Service
}

func NewBrowseUseCase(service Service) *BrowseUseCase {
	return &BrowseUseCase{service: service}
}

func (uc *BrowseUseCase) ListLessons(ctx context.Context) ([]dto.LessonDTO, error) {
	lessons, err := uc.service.GetAllLessons(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]dto.LessonDTO, 0, len(lessons))
	for _, l := range lessons {
		dtos = append(dtos, toDTO(l))
	}

	return dtos, nil
}

func (uc *BrowseUseCase) GetLesson(ctx context.Context, lessonID int) (*dto.LessonDTO, error) {
	lesson, err := uc.service.GetLessonByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	d := toDTO(*lesson)
	return &d, nil
}

func toDTO(l domain.Lesson) dto.LessonDTO {
	return dto.LessonDTO{
		ID:                l.ID,
		Title:             l.Title,
		Location:          l.Location,
		Price:             l.Price,
		AvailableCapacity: l.AvailableCapacity,
	}
}
