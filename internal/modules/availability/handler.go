package availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"stayhub/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/properties/:id/availability", h.Check)
}

// Check answers GET /properties/:id/availability?from=2026-09-01&to=2026-09-04&rooms=2
func (h *Handler) Check(c *gin.Context) {
	propertyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || propertyID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid property id")
		return
	}

	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid 'from' date, expected YYYY-MM-DD")
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid 'to' date, expected YYYY-MM-DD")
		return
	}

	rooms := 1
	if raw := c.Query("rooms"); raw != "" {
		rooms, err = strconv.Atoi(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid 'rooms' count")
			return
		}
	}

	res, err := h.service.Check(c.Request.Context(), CheckRequest{
		PropertyID: propertyID,
		DateFrom:   from,
		DateTo:     to,
		Rooms:      rooms,
	})
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Availability check failed")
		return
	}

	response.Success(c, http.StatusOK, res)
}
