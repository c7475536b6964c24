package model

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// 对战类型
const (
	BattleTypePvp      = "pvp"       // 1v1 角色对战
	BattleTypeCabalWar = "cabal_war" // 公会对战
)

// 对战状态机: pending → in_progress → completed，pending → cancelled 为唯一旁路
// completed / cancelled 均为终态，状态只进不退
const (
	BattleStatusPending    = "pending"
	BattleStatusInProgress = "in_progress"
	BattleStatusCompleted  = "completed"
	BattleStatusCancelled  = "cancelled"
)

// 对战动作，分别作用于四个属性维度
const (
	ActionRoast   = "roast"   // 进攻：己方攻击性 - 对方抗性/2，下限 1
	ActionFlex    = "flex"    // 自增益：力量
	ActionDefend  = "defend"  // 防御增益：抗性
	ActionSpecial = "special" // 风度特技
)

// ValidAction 校验动作类型
func ValidAction(action string) bool {
	switch action {
	case ActionRoast, ActionFlex, ActionDefend, ActionSpecial:
		return true
	}
	return false
}

// BattleLogEntry 战斗日志条目，按回合有序追加
type BattleLogEntry struct {
	Turn      int    `json:"turn"`
	Timestamp string `json:"timestamp"`
	Actor     string `json:"actor,omitempty"`  // 行动角色uuid，系统事件为空
	Action    string `json:"action,omitempty"` // 动作类型
	Event     string `json:"event,omitempty"`  // 系统事件 battle_started/battle_ended/battle_tied
	Result    string `json:"result"`           // 结果描述
}

// Battle 对战实例表（1v1 与公会变体共用）
// 日志以 JSON 数组存储在 battle_log 列，只追加不修改
type Battle struct {
	gorm.Model
	Uuid   string `gorm:"column:uuid;uniqueIndex;type:char(20);not null;comment:对战唯一id"`
	Type   string `gorm:"type:varchar(20);not null;default:pvp;comment:类型 pvp/cabal_war"`
	Status string `gorm:"type:varchar(20);not null;default:pending;index;comment:状态"`

	InitiatorUuid string `gorm:"type:char(40);index;not null;comment:发起角色ID"`
	DefenderUuid  string `gorm:"type:char(40);index;not null;comment:应战角色ID"`

	// 公会对战变体，1v1 时为空
	InitiatorCabalUuid string `gorm:"type:char(20);comment:发起方公会ID"`
	DefenderCabalUuid  string `gorm:"type:char(20);comment:应战方公会ID"`

	WagerAmount int `gorm:"default:0;comment:金币赌注"`
	CurrentTurn int `gorm:"default:0;comment:当前回合，奇数发起方行动"`
	TurnCount   int `gorm:"default:0;comment:已执行动作数"`

	// 每方在动作中累计的增益值，计入日志展示
	InitiatorBonus int `gorm:"default:0;comment:发起方累计增益"`
	DefenderBonus  int `gorm:"default:0;comment:应战方累计增益"`

	WinnerUuid string `gorm:"type:char(40);comment:胜者角色ID，平局为空"`
	LoserUuid  string `gorm:"type:char(40);comment:败者角色ID，平局为空"`

	RewardCoins int    `gorm:"default:0;comment:已发放金币奖励"`
	RewardPaid  bool   `gorm:"default:false;comment:奖励是否已发放（幂等标记）"`
	BattleLog   string `gorm:"type:text;comment:战斗日志 JSON 数组"`

	StartedAt   *time.Time `gorm:"comment:开战时间"`
	CompletedAt *time.Time `gorm:"comment:结束时间"`
}

func (Battle) TableName() string {
	return "battles"
}

// LogEntries 反序列化战斗日志
func (b *Battle) LogEntries() []BattleLogEntry {
	if b.BattleLog == "" {
		return nil
	}
	var entries []BattleLogEntry
	if err := json.Unmarshal([]byte(b.BattleLog), &entries); err != nil {
		return nil
	}
	return entries
}

// AppendLog 追加一条战斗日志
func (b *Battle) AppendLog(entry BattleLogEntry) {
	entries := append(b.LogEntries(), entry)
	data, err := json.Marshal(entries)
	if err != nil {
		return
	}
	b.BattleLog = string(data)
}
