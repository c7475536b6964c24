package constants

const (
	CHANNEL_SIZE = 100 // 事件通道大小

	INVITE_CODE_LENGTH = 6 // 邀请码长度（大写字母+数字）

	CABAL_NAME_MAX_LEN = 50  // 公会名称最大长度
	CABAL_DESC_MAX_LEN = 500 // 公会简介最大长度

	REFERRAL_CONTRIBUTION = 50  // 推荐人获得的贡献值
	REFERRAL_CABAL_XP     = 100 // 推荐成功时公会获得的经验
	REFERRAL_COIN_REWARD  = 50  // 推荐人获得的金币奖励

	WEEKLY_BATTLE_LIMIT     = 3  // 每个公会每周（UTC 自然周）未完成对战上限
	SCHEDULE_MAX_AHEAD_DAYS = 14 // 对战最多可提前安排的天数

	BATTLE_ACTION_CAP   = 10  // 对战固定动作数上限，打满即结算
	DEFAULT_COIN_REWARD = 100 // 无赌注对战的默认金币奖励
	WINNER_XP_REWARD    = 100 // 胜者经验奖励
	LOSER_XP_REWARD     = 25  // 败者经验奖励

	PARTICIPATION_CONTRIBUTION = 10 // 报名参战获得的贡献值
)
