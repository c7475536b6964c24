// Package stats 提供角色战斗属性的读取服务
// 属性由角色养成系统维护，本引擎只读
package stats

import (
	"cabal_battles_server/internal/dao/mysql/repository"
	"cabal_battles_server/internal/model"
	"cabal_battles_server/pkg/errorx"
)

// StatSheet 角色四维属性快照
type StatSheet struct {
	Power      int `json:"power"`      // 力量
	Aggression int `json:"aggression"` // 攻击性
	Resistance int `json:"resistance"` // 抗性
	Style      int `json:"style"`      // 风格
}

// Total 四维属性总和，用于判定对战胜负
func (s *StatSheet) Total() int {
	return s.Power + s.Aggression + s.Resistance + s.Style
}

// Provider 属性读取接口
// 对战与官员模块通过此接口获取角色属性，测试时可注入固定属性
type Provider interface {
	// GetStats 获取角色当前属性（角色不存在返回 NotFound）
	GetStats(chadUuid string) (*StatSheet, error)
}

// repoProvider 基于数据库的属性读取实现
type repoProvider struct {
	statsRepo repository.CharacterStatsRepository
}

// NewProvider 创建属性读取服务
func NewProvider(statsRepo repository.CharacterStatsRepository) Provider {
	return &repoProvider{statsRepo: statsRepo}
}

func (p *repoProvider) GetStats(chadUuid string) (*StatSheet, error) {
	record, err := p.statsRepo.FindByChad(chadUuid)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Newf(errorx.CodeNotFound, "角色属性不存在: %s", chadUuid)
		}
		return nil, err
	}
	return SheetFromModel(record), nil
}

// SheetFromModel 由数据库记录构造属性快照
func SheetFromModel(record *model.CharacterStats) *StatSheet {
	return &StatSheet{
		Power:      record.Power,
		Aggression: record.Aggression,
		Resistance: record.Resistance,
		Style:      record.Style,
	}
}
