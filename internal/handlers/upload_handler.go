package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yelo29/barangayreservetest-1/internal/httperr"
	"github.com/yelo29/barangayreservetest-1/internal/httpresp"
	"github.com/yelo29/barangayreservetest-1/internal/media"
	"github.com/yelo29/barangayreservetest-1/internal/middleware"
)

// UploadHandler stores a single image and returns its URL for a later
// booking or verification submission.
type UploadHandler struct {
	uploader *media.Uploader
	log      *zap.Logger
}

func NewUploadHandler(uploader *media.Uploader, log *zap.Logger) *UploadHandler {
	return &UploadHandler{uploader: uploader, log: log}
}

var verificationNamespaces = map[string]string{
	"profileImage": media.NamespaceProfileImage,
	"idImage":      media.NamespaceIDImage,
}

func (h *UploadHandler) Receipt(c *gin.Context) {
	h.store(c, "receipt", media.NamespaceReceipt)
}

func (h *UploadHandler) Verification(c *gin.Context) {
	ns, ok := verificationNamespaces[c.PostForm("type")]
	if !ok {
		httperr.BadRequest(c, "type must be profileImage or idImage")
		return
	}
	h.store(c, "image", ns)
}

func (h *UploadHandler) store(c *gin.Context, field, namespace string) {
	fh, err := c.FormFile(field)
	if err != nil {
		httperr.BadRequest(c, "No "+field+" file uploaded")
		return
	}

	res, err := h.uploader.UploadFile(c.Request.Context(), namespace, middleware.CallerFrom(c).ID, fh)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.With(c, http.StatusOK, "File uploaded", gin.H{
		"imageUrl": res.URL,
		"data":     res,
	})
}
