package core

import (
	"sort"
	"strings"
)

// StringSet 是题材/标签的集合表示。
// 目录侧用逗号分隔串存储，推荐链路内统一解析为集合，每次调用解析一次，
// 不回写原始目录数据。
type StringSet map[string]struct{}

// NewStringSet 由若干值构建集合，空串被忽略。
func NewStringSet(vals ...string) StringSet {
	s := make(StringSet, len(vals))
	for _, v := range vals {
		if v != "" {
			s[v] = struct{}{}
		}
	}
	return s
}

// ParseGenres 解析逗号分隔的题材串：按逗号切分、去首尾空白、统一小写、丢弃空 token。
func ParseGenres(raw string) StringSet {
	s := make(StringSet)
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok != "" {
			s[tok] = struct{}{}
		}
	}
	return s
}

// Add 加入一个值。
func (s StringSet) Add(v string) {
	s[v] = struct{}{}
}

// Has 判断值是否在集合中。
func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Len 返回集合大小。
func (s StringSet) Len() int { return len(s) }

// Values 返回排序后的全部值。map 遍历无序，排序保证链路输出可复现。
func (s StringSet) Values() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Overlap 返回与另一集合的交集元素个数。
func (s StringSet) Overlap(o StringSet) int {
	small, big := s, o
	if len(big) < len(small) {
		small, big = big, small
	}
	n := 0
	for v := range small {
		if _, ok := big[v]; ok {
			n++
		}
	}
	return n
}

// Jaccard 返回与另一集合的 Jaccard 相似度（交/并），双空集合记为 0。
func (s StringSet) Jaccard(o StringSet) float64 {
	inter := s.Overlap(o)
	union := len(s) + len(o) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// 受众分层的规范取值。
const (
	DemographicShounen = "shounen"
	DemographicSeinen  = "seinen"
	DemographicShoujo  = "shoujo"
	DemographicJosei   = "josei"
	DemographicGeneral = "general"
)

// FeatureVector 是一部作品的归一化特征视图。
// 它是输入的纯函数：每次调用重新计算，不持久化、不缓存。
type FeatureVector struct {
	Genres          StringSet // 题材集合（ParseGenres 产物）
	Tags            StringSet // 语义标签（TagClassifier 产物）
	Demographic     string    // 受众分层（DemographicXXX 常量之一）
	Year            int
	Popularity      int64
	Rating          float64
	ChapterCount    int
	IsCompleted     bool
	UpdateFrequency float64 // [0,1]，由章节发布间隔估算
}
