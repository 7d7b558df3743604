package api

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenPair представляет пару токенов, выданных сервером
type TokenPair struct {
	AccessToken  string `json:"access_token"`  // JWT access token
	RefreshToken string `json:"refresh_token"` // refresh token
}

// RefreshRequest представляет запрос на обновление токенов
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Dob      string `json:"dob"` // дата рождения, YYYY-MM-DD
	Sex      string `json:"sex"`
}

// VerifyOTPRequest repeats the registration payload together with the one-time code.
type VerifyOTPRequest struct {
	RegisterRequest
	OTP string `json:"otp"`
}

// UpdateProfileRequest представляет запрос на изменение профиля
type UpdateProfileRequest struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Dob     string  `json:"dob"`
	Sex     string  `json:"sex"`
	Address Address `json:"address"`
}
