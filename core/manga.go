package core

import (
	"strings"
	"time"
)

// Manga 是内容目录中的一部作品，是推荐链路的原始输入。
// 字段允许缺失（脏数据容忍）：缺失的评分/热度/年份在特征抽取时落默认值，
// 不在这里报错。
type Manga struct {
	Slug        string    `json:"slug"`        // 唯一标识
	Title       string    `json:"title"`       // 标题
	Genre       string    `json:"genre"`       // 逗号分隔的题材串，来自上游目录，按需解析
	Description string    `json:"description"` // 简介自由文本，用于标签/受众分类
	Status      string    `json:"status"`      // ongoing / completed / 其他
	Rating      float64   `json:"rating"`      // 评分（0 视为缺失）
	Views       int64     `json:"views"`       // 浏览计数
	Year        int       `json:"year"`        // 开始连载年份（0 视为缺失）
	Chapters    []Chapter `json:"chapters"`    // 章节列表，发布日期可缺失
}

// Chapter 是一话/一章，发布日期用于估算更新频率。
type Chapter struct {
	Number      float64   `json:"number"`
	PublishedAt time.Time `json:"published_at"` // 零值表示未知
}

// StatusCompleted 是完结状态的规范值。
const StatusCompleted = "completed"

// Completed 判断作品是否完结（大小写不敏感）。
func (m *Manga) Completed() bool {
	return strings.EqualFold(strings.TrimSpace(m.Status), StatusCompleted)
}

// ReadingRecord 是单个用户的一条阅读历史。
// Manga 是交互时刻的作品快照，偏好画像直接从快照抽特征，不回查目录。
type ReadingRecord struct {
	Slug      string  `json:"slug"`
	Manga     *Manga  `json:"manga"`     // 交互时的作品快照
	Progress  float64 `json:"progress"`  // 阅读进度 [0,100]
	Timestamp int64   `json:"timestamp"` // 最近一次交互的 unix 秒
}

// Rating 是用户对单部作品的打分。
type Rating struct {
	Value float64 `json:"rating"`
}
