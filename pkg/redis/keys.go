package redis

import "fmt"

// Key builders keep the namespace layout in one place.

// RefreshSessionKey addresses a stored refresh session for a user/session pair.
func RefreshSessionKey(userID, sessionID string) string {
	return fmt.Sprintf("auth:refresh:%s:%s", userID, sessionID)
}

// RefreshSessionScanPattern matches every refresh session for a user.
func RefreshSessionScanPattern(userID string) string {
	return fmt.Sprintf("auth:refresh:%s:*", userID)
}

// LoginEmailRateKey counts login attempts per email.
func LoginEmailRateKey(email string) string {
	return fmt.Sprintf("ratelimit:login:email:%s", email)
}

// LoginIPRateKey counts login attempts per client address.
func LoginIPRateKey(ip string) string {
	return fmt.Sprintf("ratelimit:login:ip:%s", ip)
}

// SignupEmailRateKey counts signup attempts per email.
func SignupEmailRateKey(email string) string {
	return fmt.Sprintf("ratelimit:signup:email:%s", email)
}

// SignupIPRateKey counts signup attempts per client address.
func SignupIPRateKey(ip string) string {
	return fmt.Sprintf("ratelimit:signup:ip:%s", ip)
}
