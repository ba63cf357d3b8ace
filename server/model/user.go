package model

import (
	dbModel "github.com/synctv-org/authd/internal/model"
)

type UserInfoResp struct {
	ID            uint     `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email,omitempty"`
	EmailVerified bool     `json:"emailVerified"`
	HasPassword   bool     `json:"hasPassword"`
	Providers     []string `json:"providers"`
	CreatedAt     int64    `json:"createdAt"`
}

func NewUserInfoResp(u *dbModel.User, links []*dbModel.UserProvider) *UserInfoResp {
	ps := make([]string, 0, len(links))
	for _, l := range links {
		ps = append(ps, string(l.Provider))
	}
	return &UserInfoResp{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.EmailString(),
		EmailVerified: u.EmailVerified,
		HasPassword:   u.HasPassword(),
		Providers:     ps,
		CreatedAt:     u.CreatedAt.UnixMilli(),
	}
}
