package inbound

import (
	"github.com/bodyclone/healthhub/internal/pkg/router"
	"github.com/bodyclone/healthhub/internal/verification/usecase"
)

// HTTPEndpoint exposes HTTP handlers for the phone verification exchange.
type HTTPEndpoint struct {
	uc uc
}

// SendOTP issues a fresh verification code to a phone number.
func (h *HTTPEndpoint) SendOTP(r *router.Request) (any, error) {
	var req SendOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Issue(r.Context(), usecase.IssueInput{Dest: req.Dest})
	if err != nil {
		return nil, err
	}

	return SendOTPResponse{Message: resp.Message}, nil
}

// VerifyOTP checks a verification code and reports how to proceed.
func (h *HTTPEndpoint) VerifyOTP(r *router.Request) (any, error) {
	var req VerifyOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	in := usecase.VerifyInput{
		Dest: req.Dest,
		OTP:  req.OTP,
	}
	if req.UserData != nil {
		in.UserData = &usecase.VerifyUserData{
			Email:    req.UserData.Email,
			Password: req.UserData.Password,
			FullName: req.UserData.FullName,
			Role:     req.UserData.Role,
			Age:      req.UserData.Age,
			Gender:   req.UserData.Gender,
		}
	}

	resp, err := h.uc.Verify(r.Context(), in)
	if err != nil {
		return nil, err
	}

	return VerifyOTPResponse{
		Success:     resp.Success,
		IsNewUser:   resp.IsNewUser,
		UserCreated: resp.UserCreated,
		Message:     resp.Message,
		Phone:       resp.Phone,
	}, nil
}
