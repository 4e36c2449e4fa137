package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"showcase/internal/auth"
	apperrors "showcase/internal/errors"
	"showcase/internal/service"
)

// ProjectHandler handles project endpoints.
type ProjectHandler struct {
	svc service.ProjectService
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(svc service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// UpdateProjectRequest is the JSON form of a partial project update.
type UpdateProjectRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}

// List godoc
// @Summary List projects, newest first
// @Tags projects
// @Produce json
// @Success 200 {array} model.Project
// @Failure 500 {object} errors.ErrorResponse
// @Router /projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// Get godoc
// @Summary Get project by id
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} model.Project
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	project, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// Create godoc
// @Summary Create a project
// @Tags projects
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param category formData string false "Category"
// @Param projectImage formData file true "JPEG, PNG or GIF, at most 5 MiB"
// @Success 201 {object} model.Project
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	identity, err := auth.IdentityFrom(c)
	if err != nil {
		return err
	}

	image, err := formFile(c, service.ImageField)
	if err != nil {
		return err
	}

	project, err := h.svc.Create(c.Request().Context(), identity.UserID, service.CreateProjectInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		Image:       image,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, project)
}

// Update godoc
// @Summary Update a project
// @Description Only fields present in the request are changed. Accepts multipart/form-data or JSON.
// @Tags projects
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param title formData string false "Title"
// @Param description formData string false "Description"
// @Param category formData string false "Category"
// @Param projectImage formData file false "Replacement image"
// @Success 200 {object} model.Project
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	identity, err := auth.IdentityFrom(c)
	if err != nil {
		return err
	}

	var in service.UpdateProjectInput
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		var req UpdateProjectRequest
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}
		in.Title, in.Description, in.Category = req.Title, req.Description, req.Category
	} else {
		if _, err := c.FormParams(); err != nil {
			return formError(err)
		}
		form := c.Request().PostForm
		in.Title = optionalValue(form, "title")
		in.Description = optionalValue(form, "description")
		in.Category = optionalValue(form, "category")
		if in.Image, err = formFile(c, service.ImageField); err != nil {
			return err
		}
	}

	project, err := h.svc.Update(c.Request().Context(), c.Param("id"), identity.UserID, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// Delete godoc
// @Summary Delete a project with its comments and image
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	identity, err := auth.IdentityFrom(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), c.Param("id"), identity.UserID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "project deleted successfully"})
}

// formFile returns the uploaded file for field, or nil when the request carries none.
func formFile(c echo.Context, field string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(field)
	switch {
	case err == nil:
		return fh, nil
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return nil, nil
	default:
		return nil, formError(err)
	}
}

func formError(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code == http.StatusRequestEntityTooLarge {
		return apperrors.ErrPayloadTooLarge
	}
	return echo.NewHTTPError(http.StatusBadRequest, "invalid form body")
}

func optionalValue(form url.Values, key string) *string {
	values, ok := form[key]
	if !ok || len(values) == 0 {
		return nil
	}
	v := values[0]
	return &v
}
