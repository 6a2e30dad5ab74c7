package inbound

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Role     string `json:"role,omitempty"`
	Age      *int32 `json:"age,omitempty"`
	Gender   string `json:"gender,omitempty"`
}

type SignUpResponse struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInResponse struct {
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
	TokenType    string     `json:"tokenType"`
	ExpiresIn    int64      `json:"expiresIn"`
	User         SignInUser `json:"user"`
}

type SignInUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type PasswordForgotRequest struct {
	Email string `json:"email"`
}

type PasswordForgotResponse struct {
	Message string `json:"message"`
}

type PasswordUpdateRequest struct {
	Password string `json:"password"`
}

type PasswordUpdateResponse struct {
	Message string `json:"message"`
}

type ProfileResponse struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	Age         *int32 `json:"age,omitempty"`
	Gender      string `json:"gender,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	Role        string `json:"role"`
}

type ProfileUpdateRequest struct {
	FullName    string  `json:"fullName"`
	Age         *int32  `json:"age,omitempty"`
	Gender      string  `json:"gender,omitempty"`
	PhoneNumber string  `json:"phoneNumber,omitempty"`
	AvatarURL   *string `json:"avatarUrl,omitempty"`
}

type ProfileUpdateResponse struct {
	Message string `json:"message"`
}

type AvatarUploadResponse struct {
	AvatarURL string `json:"avatarUrl"`
	Message   string `json:"message"`
}

type AvatarRemoveResponse struct {
	Message string `json:"message"`
}
