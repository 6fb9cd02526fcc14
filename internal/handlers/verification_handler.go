package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yelo29/barangayreservetest-1/internal/httperr"
	"github.com/yelo29/barangayreservetest-1/internal/httpresp"
	"github.com/yelo29/barangayreservetest-1/internal/media"
	"github.com/yelo29/barangayreservetest-1/internal/middleware"
	"github.com/yelo29/barangayreservetest-1/internal/usecase/verification"
)

type VerificationHandler struct {
	submit    *verification.SubmitRequest
	decide    *verification.DecideRequest
	pending   *verification.ListPending
	reconcile *verification.Reconcile
	uploader  *media.Uploader
	log       *zap.Logger
}

func NewVerificationHandler(
	submit *verification.SubmitRequest,
	decide *verification.DecideRequest,
	pending *verification.ListPending,
	reconcile *verification.Reconcile,
	uploader *media.Uploader,
	log *zap.Logger,
) *VerificationHandler {
	return &VerificationHandler{
		submit:    submit,
		decide:    decide,
		pending:   pending,
		reconcile: reconcile,
		uploader:  uploader,
		log:       log,
	}
}

// --------- Requests ---------

// SubmitVerificationRequest binds from JSON with image URLs, or from a
// multipart form carrying the "profileImage" and "idImage" files.
type SubmitVerificationRequest struct {
	Name             string `json:"name" form:"name"`
	ContactNumber    string `json:"contactNumber" form:"contactNumber"`
	Address          string `json:"address" form:"address"`
	VerificationType string `json:"verificationType" form:"verificationType"`
	ProfileImageURL  string `json:"profileImageUrl" form:"profileImageUrl"`
	IDImageURL       string `json:"idImageUrl" form:"idImageUrl"`
}

// --------- Handlers ---------

func (h *VerificationHandler) Submit(c *gin.Context) {
	caller := middleware.CallerFrom(c)

	var req SubmitVerificationRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	// Both images are stored before the request record exists.
	if isMultipart(c) {
		for _, field := range []struct {
			name      string
			namespace string
			target    *string
		}{
			{"profileImage", media.NamespaceProfileImage, &req.ProfileImageURL},
			{"idImage", media.NamespaceIDImage, &req.IDImageURL},
		} {
			fh, err := c.FormFile(field.name)
			if err != nil {
				continue
			}
			res, err := h.uploader.UploadFile(c.Request.Context(), field.namespace, caller.ID, fh)
			if err != nil {
				httperr.Respond(c, h.log, err)
				return
			}
			*field.target = res.URL
		}
	}

	ar, err := h.submit.Execute(c.Request.Context(), caller, verification.SubmitInput{
		Name:             req.Name,
		ContactNumber:    req.ContactNumber,
		Address:          req.Address,
		VerificationType: req.VerificationType,
		ProfileImageURL:  req.ProfileImageURL,
		IDImageURL:       req.IDImageURL,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.With(c, http.StatusCreated, "Verification request submitted", gin.H{
		"requestId": ar.ID,
		"data":      ar,
	})
}

func (h *VerificationHandler) Pending(c *gin.Context) {
	list, err := h.pending.Execute(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, list)
}

func (h *VerificationHandler) Decide(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Status is required")
		return
	}

	ar, err := h.decide.Execute(c.Request.Context(), middleware.CallerFrom(c), c.Param("id"), req.Status)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.With(c, http.StatusOK, "Request "+ar.Status, gin.H{"data": ar})
}

func (h *VerificationHandler) Reconcile(c *gin.Context) {
	report, err := h.reconcile.Execute(c.Request.Context(), middleware.CallerFrom(c).ID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, report)
}
