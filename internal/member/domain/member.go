package domain

import (
	"time"

	"learning_platform_service/pkg/encrypt"
)

// MemberStatus member account state
type MemberStatus int

// 0=offline, 1=online, 2=ban, 3=delete
const (
	// MemberStatusOffLine member is offline
	MemberStatusOffLine MemberStatus = iota
	// MemberStatusOnLine member is online
	MemberStatusOnLine
	// MemberStatusBan member is blocked
	MemberStatusBan
	// MemberStatusDelete member is deleted
	MemberStatusDelete
)

// Member platform account, learner or career guider
type Member struct {
	ID          int64
	MemberID    string
	Email       string
	Password    string
	DisplayName string
	Role        string
	Status      MemberStatus
}

// MemberSession login session kept in redis
type MemberSession struct {
	Token        string    `json:"Token"`
	MemberID     string    `json:"MemberID"`
	CreatedAt    time.Time `json:"CreatedAt"`
	LastActivity time.Time `json:"LastActivity"`
	ExpiredAt    time.Time `json:"ExpiredAt"`
}

// IsPasswordMatch compare the stored hash with the input password
func (m *Member) IsPasswordMatch(inputPwd string) error {
	err := encrypt.CheckPassword(m.Password, inputPwd)
	return err
}

// IsExpired check the session expiry
func (s *MemberSession) IsExpired() bool {
	return time.Now().After(s.ExpiredAt)
}

// MemberQuery join conditions are used to query members
type MemberQuery struct {
	ID       *int64  `db:"id"`
	MemberID *string `db:"member_id"`
	Email    *string `db:"email"`
}
