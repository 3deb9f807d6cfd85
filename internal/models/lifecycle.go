package models

// LifecycleStage classifies a hashtag's maturity from its age and scores.
type LifecycleStage string

const (
	StageEmerging  LifecycleStage = "emerging"
	StageTrending  LifecycleStage = "trending"
	StageMature    LifecycleStage = "mature"
	StageStable    LifecycleStage = "stable"
	StageDeclining LifecycleStage = "declining"
)
