package company

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"kyc-backend/internal/shared/server/middleware"
	"kyc-backend/internal/shared/server/respond"
	"kyc-backend/internal/shared/util"
)

// maxFileSize caps each uploaded document.
const maxFileSize = 10 << 20

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Handler exposes the company-details endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches routes behind the auth middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/company-details", h.submit)
	rg.GET("/company-details", h.get)
	rg.PUT("/company-details/:id", h.update)
}

func (h *Handler) submit(c *gin.Context) {
	h.handleSubmit(c, "")
}

// update is the legacy record-id path. The record is user-scoped, so the id
// only has to match the caller's own record.
func (h *Handler) update(c *gin.Context) {
	h.handleSubmit(c, c.Param("id"))
}

func (h *Handler) handleSubmit(c *gin.Context, recordID string) {
	userID := middleware.UserIDFromContext(c)

	if recordID != "" {
		existing, err := h.Svc.Get(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				respond.Error(c, http.StatusNotFound, "Company details not found")
				return
			}
			respond.Error(c, http.StatusInternalServerError, "Error updating company details")
			return
		}
		if existing.Record.ID != recordID {
			respond.Error(c, http.StatusNotFound, "Company details not found")
			return
		}
	}

	form, err := c.MultipartForm()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	uploads, err := readUploads(form)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	option := c.PostForm("option")

	populated, created, err := h.Svc.Submit(c.Request.Context(), userID, option, uploads)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserRequired),
			errors.Is(err, ErrOptionRequired),
			errors.Is(err, ErrInvalidOption):
			respond.Error(c, http.StatusBadRequest, err.Error())
		default:
			respond.Error(c, http.StatusInternalServerError, "Error processing company details")
		}
		return
	}

	status := http.StatusOK
	message := "Company details updated successfully"
	if created {
		status = http.StatusCreated
		message = "Company details created successfully"
	}
	respond.Success(c, status, message, RecordJSON(populated))
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	populated, err := h.Svc.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "Company details not found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "Error fetching company details")
		return
	}

	respond.Success(c, http.StatusOK, "", RecordJSON(populated))
}

// readUploads validates and buffers every recognized file field.
func readUploads(form *multipart.Form) (map[Slot]Upload, error) {
	uploads := make(map[Slot]Upload)
	for field, headers := range form.File {
		slot, ok := ParseSlot(field)
		if !ok || len(headers) == 0 {
			continue
		}
		fh := headers[0]

		if fh.Size > maxFileSize {
			return nil, fmt.Errorf("file for %s exceeds the 10MB limit", field)
		}
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		if !allowedExtensions[ext] {
			return nil, fmt.Errorf("file type %s is not allowed", ext)
		}

		name, err := util.SanitizeFileName(fh.Filename)
		if err != nil {
			return nil, fmt.Errorf("invalid file name for %s", field)
		}

		data, err := readFileHeader(fh)
		if err != nil {
			return nil, fmt.Errorf("could not read file for %s", field)
		}

		uploads[slot] = Upload{FileName: name, Data: data}
	}
	return uploads, nil
}

func readFileHeader(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxFileSize+1))
}
