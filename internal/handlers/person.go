package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"peopledex/internal/models"
	"peopledex/internal/services"
	"peopledex/pkg/logger"
)

type PersonHandler struct {
	personService *services.PersonService
	searchService *services.SearchService
}

func NewPersonHandler(personService *services.PersonService, searchService *services.SearchService) *PersonHandler {
	return &PersonHandler{
		personService: personService,
		searchService: searchService,
	}
}

// SearchPeople handles GET /people?query=<q>. A missing query is a bad
// request; an empty match set is a 404, distinct from a search failure.
func (h *PersonHandler) SearchPeople(c *gin.Context) {
	query, ok := c.GetQuery("query")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter is required"})
		return
	}

	people, err := h.searchService.Search(c.Request.Context(), query)
	if err != nil {
		logger.WithError(err).Errorf("Search failed for query %q", query)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if len(people) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "no people found"})
		return
	}

	c.JSON(http.StatusOK, people)
}

// GetPerson handles GET /people/:id
func (h *PersonHandler) GetPerson(c *gin.Context) {
	person, err := h.personService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		var notFound *services.NotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "person not found"})
			return
		}
		logger.WithError(err).Error("Failed to get person")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, person)
}

// CreatePerson handles POST /people. Validation runs server-side even
// when the client already validated the form.
func (h *PersonHandler) CreatePerson(c *gin.Context) {
	var form models.PersonForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON"})
		return
	}

	person, err := h.personService.Create(c.Request.Context(), &form)
	if err != nil {
		var invalid *services.ValidationError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": invalid.Fields})
			return
		}
		logger.WithError(err).Error("Failed to create person")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, person)
}

// UpdatePerson handles PUT /people/:id with a partial patch.
func (h *PersonHandler) UpdatePerson(c *gin.Context) {
	id := c.Param("id")

	var patch models.PersonPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON"})
		return
	}

	person, err := h.personService.Update(c.Request.Context(), id, &patch)
	if err != nil {
		var (
			invalid   *services.ValidationError
			duplicate *services.DuplicateEmailError
			notFound  *services.NotFoundError
		)
		switch {
		case errors.As(err, &invalid):
			c.JSON(http.StatusBadRequest, gin.H{"errors": invalid.Fields})
		case errors.As(err, &duplicate):
			c.JSON(http.StatusConflict, gin.H{"error": duplicate.Error()})
		case errors.As(err, &notFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "person not found"})
		default:
			logger.WithError(err).Errorf("Failed to update person %s", id)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, person)
}
