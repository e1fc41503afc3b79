package service

import (
	"errors"

	"github.com/wolfeagle1193/tukki-api-sub000/internal/app/model"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/app/repository"
	"github.com/wolfeagle1193/tukki-api-sub000/pkg/logger"
	"gorm.io/gorm"
)

// EntityService handles admin CRUD and public reads for the five content
// collections. Engagement mutations go through EngagementService instead.
type EntityService interface {
	Create(kind model.EntityKind, req *model.EntityUpsertRequest) (model.Entity, error)
	GetByID(kind model.EntityKind, id uint) (model.Entity, error)
	List(kind model.EntityKind, q *model.EntityListQuery) (interface{}, int64, error)
	Update(kind model.EntityKind, id uint, req *model.EntityUpsertRequest) (model.Entity, error)
	Delete(kind model.EntityKind, id uint) error
}

type entityService struct {
	entityRepo repository.EntityRepository
}

func NewEntityService(entityRepo repository.EntityRepository) EntityService {
	return &entityService{entityRepo: entityRepo}
}

func (s *entityService) Create(kind model.EntityKind, req *model.EntityUpsertRequest) (model.Entity, error) {
	if !kind.Valid() {
		return nil, ErrInvalidEntityKind
	}

	entity := model.NewEntity(kind)
	entity.Apply(req)

	if err := s.entityRepo.Create(entity); err != nil {
		return nil, err
	}

	logger.Info("Entity created", map[string]interface{}{
		"kind":      kind,
		"entity_id": entity.GetID(),
		"title":     req.Title,
	})
	return entity, nil
}

func (s *entityService) GetByID(kind model.EntityKind, id uint) (model.Entity, error) {
	if !kind.Valid() {
		return nil, ErrInvalidEntityKind
	}

	entity, err := s.entityRepo.FindByID(kind, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntityNotFound
		}
		return nil, err
	}
	return entity, nil
}

func (s *entityService) List(kind model.EntityKind, q *model.EntityListQuery) (interface{}, int64, error) {
	if !kind.Valid() {
		return nil, 0, ErrInvalidEntityKind
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}

	return s.entityRepo.List(kind, q)
}

func (s *entityService) Update(kind model.EntityKind, id uint, req *model.EntityUpsertRequest) (model.Entity, error) {
	if !kind.Valid() {
		return nil, ErrInvalidEntityKind
	}

	entity, err := s.entityRepo.FindByID(kind, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntityNotFound
		}
		return nil, err
	}

	entity.Apply(req)
	if err := s.entityRepo.Update(entity); err != nil {
		return nil, err
	}

	logger.Info("Entity updated", map[string]interface{}{
		"kind":      kind,
		"entity_id": id,
	})
	return entity, nil
}

func (s *entityService) Delete(kind model.EntityKind, id uint) error {
	if !kind.Valid() {
		return ErrInvalidEntityKind
	}

	if err := s.entityRepo.Delete(kind, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntityNotFound
		}
		return err
	}

	logger.Info("Entity deleted", map[string]interface{}{
		"kind":      kind,
		"entity_id": id,
	})
	return nil
}
