package config

import "time"

const (
	// Task cooldowns per channel. The web window is longer on purpose:
	// the chat channel paces users with conversational delays already.
	WebTaskCooldown     = 30 * time.Second
	ChatTaskCooldownMin = 10 * time.Second
	ChatTaskCooldownMax = 15 * time.Second

	// Task reward range (points per correct answer)
	TaskRewardMin = 1
	TaskRewardMax = 2

	// Referral bonus credited to the inviter on each signup
	ReferralBonus = 50

	// Points-to-cash conversion
	ConvertPointCost = 200
	ConvertCashMin   = 2.00
	ConvertCashMax   = 2.50

	// Withdrawal floor
	MinWithdrawalAmount = 300

	// Activation code policies
	UserCodePrefix  = "IFD-"
	UserCodeLength  = 46
	AdminCodePrefix = "ACT-"
	AdminCodeLength = 8

	// Attempts before code generation gives up on finding a free code
	CodeGenMaxAttempts = 10

	// Web session tokens
	TokenTTL = 72 * time.Hour

	// Background jobs
	SolvencyCheckInterval = 5 * time.Minute
	StaleChatStateCleanup = 60 * time.Second
	StaleChatStateAge     = 10 * time.Minute

	// Chat reply pacing between scheduled steps
	ChatStepDelay = 2 * time.Second
)
