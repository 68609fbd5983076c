package api

import (
	"errors"
	"net/http"

	"ecotrade/internal/service/otp"

	"github.com/gin-gonic/gin"
)

type OTPHandler struct {
	otp *otp.Service
}

func NewOTPHandler(otpService *otp.Service) *OTPHandler {
	return &OTPHandler{otp: otpService}
}

// SendOTP handles POST /otp/send
func (h *OTPHandler) SendOTP(c *gin.Context) {
	var req struct {
		PhoneNumber string `json:"phoneNumber"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "phoneNumber is required"})
		return
	}

	if err := h.otp.Send(c.Request.Context(), req.PhoneNumber); err != nil {
		h.respondOTPError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP sent"})
}

// VerifyOTP handles POST /otp/verify
func (h *OTPHandler) VerifyOTP(c *gin.Context) {
	var req struct {
		PhoneNumber string `json:"phoneNumber"`
		OTP         string `json:"otp"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "phoneNumber and otp are required"})
		return
	}

	if err := h.otp.Verify(c.Request.Context(), req.PhoneNumber, req.OTP); err != nil {
		h.respondOTPError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "OTP verified"})
}

// ResendOTP handles POST /otp/resend
func (h *OTPHandler) ResendOTP(c *gin.Context) {
	h.SendOTP(c)
}

func (h *OTPHandler) respondOTPError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, otp.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, otp.ErrCooldown):
		c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, otp.ErrCodeExpired),
		errors.Is(err, otp.ErrCodeMismatch),
		errors.Is(err, otp.ErrTooManyAttempts):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
	}
}
