package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yelo29/barangayreservetest-1/internal/httperr"
	"github.com/yelo29/barangayreservetest-1/internal/httpresp"
	"github.com/yelo29/barangayreservetest-1/internal/media"
	"github.com/yelo29/barangayreservetest-1/internal/middleware"
	"github.com/yelo29/barangayreservetest-1/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create   *booking.CreateBooking
	list     *booking.ListBookings
	update   *booking.UpdateBookingStatus
	avail    *booking.GetAvailability
	uploader *media.Uploader
	log      *zap.Logger
}

func NewBookingHandler(
	create *booking.CreateBooking,
	list *booking.ListBookings,
	update *booking.UpdateBookingStatus,
	avail *booking.GetAvailability,
	uploader *media.Uploader,
	log *zap.Logger,
) *BookingHandler {
	return &BookingHandler{
		create:   create,
		list:     list,
		update:   update,
		avail:    avail,
		uploader: uploader,
		log:      log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// CreateBookingRequest binds from JSON or from multipart form fields. A
// multipart request may carry the receipt image itself in "receipt".
type CreateBookingRequest struct {
	FacilityID    string `json:"facilityId" form:"facilityId"`
	BookingDate   string `json:"bookingDate" form:"bookingDate"`
	TimeSlot      string `json:"timeSlot" form:"timeSlot"`
	Purpose       string `json:"purpose" form:"purpose"`
	ContactNumber string `json:"contactNumber" form:"contactNumber"`
	Address       string `json:"address" form:"address"`
	ReceiptURL    string `json:"receiptUrl" form:"receiptUrl"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	caller := middleware.CallerFrom(c)

	var req CreateBookingRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "Invalid request body")
		return
	}

	in := booking.CreateBookingInput{
		FacilityID:    req.FacilityID,
		BookingDate:   req.BookingDate,
		TimeSlot:      req.TimeSlot,
		Purpose:       req.Purpose,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
	}

	// The receipt goes to storage only once the booking itself is valid, and
	// before anything references it; a failed upload creates no booking.
	if isMultipart(c) {
		if fh, err := c.FormFile("receipt"); err == nil {
			if err := h.create.Check(c.Request.Context(), in); err != nil {
				httperr.Respond(c, h.log, err)
				return
			}
			res, err := h.uploader.UploadFile(c.Request.Context(), media.NamespaceReceipt, caller.ID, fh)
			if err != nil {
				httperr.Respond(c, h.log, err)
				return
			}
			req.ReceiptURL = res.URL
		}
	}

	if url := strings.TrimSpace(req.ReceiptURL); url != "" {
		in.ReceiptURL = &url
	}

	b, err := h.create.Execute(c.Request.Context(), caller, in)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.With(c, http.StatusCreated, "Booking created successfully", gin.H{
		"bookingId": b.ID,
		"data":      b,
	})
}

// ======================================================
// LISTINGS
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	list, err := h.list.ForCaller(c.Request.Context(), middleware.CallerFrom(c), c.Query("user_email"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, list)
}

func (h *BookingHandler) ByUser(c *gin.Context) {
	list, err := h.list.ByUser(c.Request.Context(), middleware.CallerFrom(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, list)
}

func (h *BookingHandler) ByEmail(c *gin.Context) {
	list, err := h.list.ByEmail(c.Request.Context(), middleware.CallerFrom(c), c.Param("email"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, list)
}

func (h *BookingHandler) Pending(c *gin.Context) {
	list, err := h.list.Pending(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, list)
}

func (h *BookingHandler) ByFacilityDate(c *gin.Context) {
	list, err := h.list.ByFacilityDate(c.Request.Context(), middleware.CallerFrom(c), c.Param("id"), c.Param("date"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, list)
}

func (h *BookingHandler) ByFacilityRange(c *gin.Context) {
	list, err := h.list.ByFacilityRange(
		c.Request.Context(),
		middleware.CallerFrom(c),
		c.Param("id"),
		c.Param("start"),
		c.Param("end"),
	)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, list)
}

// ======================================================
// STATUS / AVAILABILITY
// ======================================================

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Status is required")
		return
	}

	b, err := h.update.Execute(c.Request.Context(), middleware.CallerFrom(c), c.Param("id"), req.Status)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.With(c, http.StatusOK, "Booking "+b.Status, gin.H{"data": b})
}

func (h *BookingHandler) Timeslots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "date is required")
		return
	}

	av, err := h.avail.Execute(c.Request.Context(), middleware.CallerFrom(c), c.Param("id"), date)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, av)
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}
