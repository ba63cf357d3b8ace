package middlewares

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/sessions"
	"github.com/synctv-org/authd/utils"
)

const (
	stateCookieName = "authd_oauth"
	stateMaxAge     = 5 * time.Minute
	sidKey          = "sid"
	stateKey        = "state"
)

// Cookies carries the opaque session id and the oauth2 state in signed
// cookies. The id itself is only meaningful to the session backend.
type Cookies struct {
	store *sessions.CookieStore
	name  string
}

func NewCookies(secret, name string, ttl time.Duration, secure bool) *Cookies {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(int(ttl / time.Second))
	return &Cookies{store: store, name: name}
}

func (c *Cookies) Name() string {
	return c.name
}

// SessionID returns the id in the request cookie, or "" when there is none
// or its signature does not verify.
func (c *Cookies) SessionID(r *http.Request) string {
	s, err := c.store.Get(r, c.name)
	if err != nil {
		return ""
	}
	id, _ := s.Values[sidKey].(string)
	return id
}

func (c *Cookies) SetSessionID(w http.ResponseWriter, r *http.Request, id string) error {
	s, _ := c.store.Get(r, c.name)
	s.Values[sidKey] = id
	opts := *c.store.Options
	s.Options = &opts
	return s.Save(r, w)
}

// ClearSession expires the session cookie at path /.
func (c *Cookies) ClearSession(w http.ResponseWriter, r *http.Request) error {
	return c.expire(w, r, c.name)
}

func (c *Cookies) NewState(w http.ResponseWriter, r *http.Request) (string, error) {
	state, err := utils.RandToken(24)
	if err != nil {
		return "", err
	}
	s, _ := c.store.Get(r, stateCookieName)
	s.Values[stateKey] = state
	opts := *c.store.Options
	opts.MaxAge = int(stateMaxAge / time.Second)
	s.Options = &opts
	return state, s.Save(r, w)
}

// VerifyState consumes the state cookie and reports whether it matches.
// err is set when the cookie could not be expired; ok is still valid.
func (c *Cookies) VerifyState(w http.ResponseWriter, r *http.Request, state string) (ok bool, err error) {
	s, gerr := c.store.Get(r, stateCookieName)
	if gerr != nil {
		return false, nil
	}
	want, _ := s.Values[stateKey].(string)
	err = c.expire(w, r, stateCookieName)
	return want != "" && subtle.ConstantTimeCompare([]byte(want), []byte(state)) == 1, err
}

// written reports whether a Set-Cookie for the session cookie is already
// queued on h.
func (c *Cookies) written(h http.Header) bool {
	prefix := c.name + "="
	for _, v := range h.Values("Set-Cookie") {
		if strings.HasPrefix(v, prefix) {
			return true
		}
	}
	return false
}

func (c *Cookies) expire(w http.ResponseWriter, r *http.Request, name string) error {
	s, _ := c.store.Get(r, name)
	s.Values = make(map[any]any)
	opts := *c.store.Options
	opts.MaxAge = -1
	s.Options = &opts
	return s.Save(r, w)
}
