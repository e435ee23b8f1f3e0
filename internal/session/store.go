package session

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
)

// Session is the only cross-request state in the system: at most one access
// token and item id for one linked aggregation connection. It round-trips
// through the browser inside a single encrypted cookie (the encryptcookie
// middleware handles the encryption), so the server holds no copy of it.
type Session struct {
	AccessToken string `json:"access_token,omitempty"`
	ItemID      string `json:"item_id,omitempty"`
}

// HasAccessToken reports whether a linking exchange has completed. Protected
// reads must fail closed (401) when this is false.
func (s Session) HasAccessToken() bool {
	return s.AccessToken != ""
}

type Store struct {
	cookieName string
	secure     bool
}

func NewStore(cookieName string, secure bool) *Store {
	return &Store{
		cookieName: cookieName,
		secure:     secure,
	}
}

// Load decrypts the session cookie. A missing, tampered or malformed cookie
// is an empty session, never an error — the user just isn't linked.
func (s *Store) Load(ctx *fiber.Ctx) Session {
	raw := ctx.Cookies(s.cookieName)
	if raw == "" {
		return Session{}
	}

	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return Session{}
	}
	return sess
}

// Save re-serializes the session into the cookie. Expiry is left to the
// cookie mechanism; there is no server-side lifetime to manage.
func (s *Store) Save(ctx *fiber.Ctx, sess Session) {
	raw, err := json.Marshal(sess)
	if err != nil {
		return
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     s.cookieName,
		Value:    string(raw),
		Path:     "/",
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
