package model

import (
	"errors"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/synctv-org/authd/internal/password"
)

const maxPasswordLen = password.MaxLength

var emailReg = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var (
	ErrEmptyEmail         = errors.New("email is required")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrEmptyPassword      = errors.New("password is required")
	ErrPasswordTooLong    = errors.New("password too long")
	ErrEmptyName          = errors.New("name is required")
	ErrNameTooLong        = errors.New("name too long")
	ErrInvalidOAuth2Code  = errors.New("invalid oauth2 code")
	ErrInvalidOAuth2State = errors.New("invalid oauth2 state")
)

type SignupReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (s *SignupReq) Decode(ctx *gin.Context) error {
	return decodeBody(ctx, s, map[string]*string{
		"email":    &s.Email,
		"password": &s.Password,
		"name":     &s.Name,
	})
}

func (s *SignupReq) Validate() error {
	switch {
	case s.Email == "":
		return ErrEmptyEmail
	case !emailReg.MatchString(s.Email):
		return ErrInvalidEmail
	case s.Password == "":
		return ErrEmptyPassword
	case len(s.Password) > maxPasswordLen:
		return ErrPasswordTooLong
	case s.Name == "":
		return ErrEmptyName
	case len(s.Name) > 255:
		return ErrNameTooLong
	}
	return nil
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (l *LoginReq) Decode(ctx *gin.Context) error {
	return decodeBody(ctx, l, map[string]*string{
		"email":    &l.Email,
		"password": &l.Password,
	})
}

func (l *LoginReq) Validate() error {
	switch {
	case l.Email == "":
		return ErrEmptyEmail
	case l.Password == "":
		return ErrEmptyPassword
	case len(l.Password) > maxPasswordLen:
		return ErrPasswordTooLong
	}
	return nil
}

type OAuth2CallbackReq struct {
	Code  string `form:"code"`
	State string `form:"state"`
	Error string `form:"error"`
}

func NewOAuth2CallbackReq(ctx *gin.Context) *OAuth2CallbackReq {
	return &OAuth2CallbackReq{
		Code:  ctx.Query("code"),
		State: ctx.Query("state"),
		Error: ctx.Query("error"),
	}
}

func (o *OAuth2CallbackReq) Validate() error {
	if o.Code == "" {
		return ErrInvalidOAuth2Code
	}
	if o.State == "" {
		return ErrInvalidOAuth2State
	}
	return nil
}
