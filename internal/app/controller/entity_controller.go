package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/app/model"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/app/service"
	apperrors "github.com/wolfeagle1193/tukki-api-sub000/internal/errors"
	"github.com/wolfeagle1193/tukki-api-sub000/internal/middleware"
)

// EntityController serves CRUD for all five content collections. Handlers
// are closed over the kind so one controller backs every route group.
type EntityController struct {
	entityService service.EntityService
}

func NewEntityController(entityService service.EntityService) *EntityController {
	return &EntityController{
		entityService: entityService,
	}
}

// parseIDParam reads a positive numeric path parameter.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid ID in URL")
		return 0, false
	}
	return uint(id), true
}

// List handles GET /api/v1/{kind}
func (ctrl *EntityController) List(kind model.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := middleware.GetLoggerFromContext(c)

		var q model.EntityListQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid query parameters")
			return
		}

		items, total, err := ctrl.entityService.List(kind, &q)
		if err != nil {
			log.Error("Failed to list entities", err, map[string]interface{}{
				"kind": kind,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, string(kind))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"items": items,
			"total": total,
			"page":  q.Page,
			"limit": q.Limit,
		})
	}
}

// Get handles GET /api/v1/{kind}/:id
func (ctrl *EntityController) Get(kind model.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := middleware.GetLoggerFromContext(c)

		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		entity, err := ctrl.entityService.GetByID(kind, id)
		if err != nil {
			if errors.Is(err, service.ErrEntityNotFound) {
				apperrors.NotFound(c, apperrors.EntityNotFound, "Not found")
				return
			}
			log.Error("Failed to get entity", err, map[string]interface{}{
				"kind":      kind,
				"entity_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, string(kind))
			return
		}

		c.JSON(http.StatusOK, entity)
	}
}

// Create handles POST /api/v1/{kind} (admin only)
func (ctrl *EntityController) Create(kind model.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := middleware.GetLoggerFromContext(c)

		var req model.EntityUpsertRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Warn("Invalid entity create request", map[string]interface{}{
				"kind":  kind,
				"error": err.Error(),
			})
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid entity details")
			return
		}

		entity, err := ctrl.entityService.Create(kind, &req)
		if err != nil {
			log.Error("Failed to create entity", err, map[string]interface{}{
				"kind": kind,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, string(kind))
			return
		}

		c.JSON(http.StatusCreated, entity)
	}
}

// Update handles PUT /api/v1/{kind}/:id (admin only)
func (ctrl *EntityController) Update(kind model.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := middleware.GetLoggerFromContext(c)

		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		var req model.EntityUpsertRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid entity details")
			return
		}

		entity, err := ctrl.entityService.Update(kind, id, &req)
		if err != nil {
			if errors.Is(err, service.ErrEntityNotFound) {
				apperrors.NotFound(c, apperrors.EntityNotFound, "Not found")
				return
			}
			log.Error("Failed to update entity", err, map[string]interface{}{
				"kind":      kind,
				"entity_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, string(kind))
			return
		}

		c.JSON(http.StatusOK, entity)
	}
}

// Delete handles DELETE /api/v1/{kind}/:id (admin only)
func (ctrl *EntityController) Delete(kind model.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := middleware.GetLoggerFromContext(c)

		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		if err := ctrl.entityService.Delete(kind, id); err != nil {
			if errors.Is(err, service.ErrEntityNotFound) {
				apperrors.NotFound(c, apperrors.EntityNotFound, "Not found")
				return
			}
			log.Error("Failed to delete entity", err, map[string]interface{}{
				"kind":      kind,
				"entity_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, string(kind))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Deleted successfully",
		})
	}
}
