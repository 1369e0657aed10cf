// Package mangexis 是漫画站的推荐引擎。
//
// 设计要点：
// - Pipeline-first: 推荐逻辑通过 Node 串联（Recall → Filter → Rank → ReRank → PostProcess）
// - 双路打分: 有阅读历史走五路个性化加权，冷启动走热度/评分简化打分
// - Labels-first: labels 全链路透传与标准化 merge，推荐理由从链路标签生成
// - 确定性: 相同目录 + 相同历史 + 相同时间源必得相同结果，排序稳定
package mangexis

import "github.com/Enmxy/mangexis-vercel-sub000/pipeline"

// 轻量 facade：便于用户直接 import 根包使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindFilter      = pipeline.KindFilter
	KindRank        = pipeline.KindRank
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
