package auth

// AuthCookieName is the httpOnly cookie used for browser session auth.
// Shared across HTTP middleware and WebSocket upgrade auth.
const AuthCookieName = "und_token"
