package inbound

type SendOTPRequest struct {
	Dest string `json:"dest"`
}

type SendOTPResponse struct {
	Message string `json:"message"`
}

type VerifyOTPRequest struct {
	Dest     string             `json:"dest"`
	OTP      string             `json:"otp"`
	UserData *VerifyOTPUserData `json:"userData,omitempty"`
}

type VerifyOTPUserData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Role     string `json:"role,omitempty"`
	Age      *int32 `json:"age,omitempty"`
	Gender   string `json:"gender,omitempty"`
}

type VerifyOTPResponse struct {
	Success     bool   `json:"success"`
	IsNewUser   bool   `json:"isNewUser"`
	UserCreated *bool  `json:"userCreated,omitempty"`
	Message     string `json:"message"`
	Phone       string `json:"phone"`
}
