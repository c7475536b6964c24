package model

import (
	"time"

	"gorm.io/gorm"
)

// 成员角色
const (
	MemberRoleMember  int8 = 1 // 普通成员
	MemberRoleOfficer int8 = 2 // 官员
	MemberRoleLeader  int8 = 3 // 会长
)

// CabalMember 公会成员关联表
// 一个角色同一时间至多有一条在籍（is_active=true）记录；
// 退会/被移除只置 inactive 并盖 left_at 时间戳，保留历史用于分析
type CabalMember struct {
	gorm.Model
	CabalUuid string `gorm:"type:char(20);index;not null;comment:公会ID"`
	ChadUuid  string `gorm:"type:char(40);index;not null;comment:角色ID"`
	Role      int8   `gorm:"default:1;comment:1普通成员 2官员 3会长"`

	Contribution        int  `gorm:"default:0;comment:贡献值（推荐与参战累加，只增不减）"`
	BattlesParticipated int  `gorm:"default:0;comment:累计参战次数"`
	IsActive            bool `gorm:"default:true;index;comment:是否在籍"`

	JoinedAt time.Time  `gorm:"comment:入会时间"`
	LeftAt   *time.Time `gorm:"comment:离会时间"`

	// 每日报名计数，UTC 日期变更时重置
	DailyOptIns int    `gorm:"default:0;comment:当日报名次数"`
	OptInDate   string `gorm:"type:char(10);comment:报名计数归属日期 yyyy-mm-dd"`
}

func (CabalMember) TableName() string {
	return "cabal_members"
}
