package httpapi

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/storeline/storefront-api/internal/platform/objectstore"
	"github.com/storeline/storefront-api/internal/shared/apierrors"
	"github.com/storeline/storefront-api/internal/shared/envelope"
)

const maxUploadBytes = 5 << 20

// UploadAPI accepts image uploads and returns their public URL.
type UploadAPI struct {
	store     objectstore.Store
	responder *apierrors.Responder
}

func NewUploadAPI(store objectstore.Store) UploadAPI {
	return UploadAPI{store: store, responder: apierrors.NewResponder()}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload /api/uploads
func (api *UploadAPI) Upload(c *gin.Context) {
	retailer := currentRetailer(c)
	if retailer == nil {
		apierrors.Respond(c, apierrors.ErrUnauthorized)
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		apierrors.Respond(c, apierrors.ErrValidation.WithMessage("file field is required"))
		return
	}
	if header.Size > maxUploadBytes {
		apierrors.Respond(c, apierrors.ErrValidation.WithMessage("file exceeds the 5MB limit"))
		return
	}

	file, err := header.Open()
	if err != nil {
		api.responder.RespondError(c, fmt.Errorf("open upload: %w", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		api.responder.RespondError(c, fmt.Errorf("read upload: %w", err))
		return
	}
	if len(data) > maxUploadBytes {
		apierrors.Respond(c, apierrors.ErrValidation.WithMessage("file exceeds the 5MB limit"))
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg":
	default:
		apierrors.Respond(c, apierrors.ErrValidation.WithMessage("unsupported file type"))
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("%s/%s%s", retailer.ID, uuid.NewString(), ext)
	url, err := api.store.Put(c.Request.Context(), key, contentType, data)
	if err != nil {
		api.responder.RespondError(c, fmt.Errorf("store upload: %w", err))
		return
	}
	envelope.Created(c, "file uploaded", uploadResponse{URL: url})
}
