package feature

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Enmxy/mangexis-vercel-sub000/core"
)

// TagClassifier 从简介自由文本派生语义标签。
//
// 匹配方式是刻意粗糙的子串匹配：标签对应的任一关键词作为子串出现在
// 小写化的简介里即命中。不做分词/词干化，"power" 会命中 "powerless"。
// 这是已知的口径限制，换 NLP 方案属于行为变更，不在这里悄悄修。
type TagClassifier struct {
	// Table 标签 → 关键词列表，可整表替换或从 YAML 加载
	Table map[string][]string
}

// DefaultTagTable 返回内置关键词表。
func DefaultTagTable() map[string][]string {
	return map[string][]string{
		"action":        {"fight", "battle", "struggle", "power"},
		"romance":       {"love", "romance", "relationship", "heart"},
		"comedy":        {"funny", "comedy", "humor", "gag"},
		"fantasy":       {"magic", "dragon", "demon", "sword", "kingdom"},
		"school":        {"school", "student", "classroom", "academy"},
		"psychological": {"mind", "psychological", "memory", "sanity"},
		"horror":        {"horror", "ghost", "curse", "terror"},
		"sports":        {"tournament", "team", "champion", "training"},
		"isekai":        {"reincarnat", "another world", "summoned"},
		"slice-of-life": {"everyday", "daily life", "ordinary days"},
	}
}

// NewTagClassifier 创建标签分类器，table 为 nil 时使用内置表。
func NewTagClassifier(table map[string][]string) *TagClassifier {
	if table == nil {
		table = DefaultTagTable()
	}
	return &TagClassifier{Table: table}
}

// Classify 返回简介命中的标签集合。
func (c *TagClassifier) Classify(description string) core.StringSet {
	tags := core.NewStringSet()
	if description == "" || len(c.Table) == 0 {
		return tags
	}

	text := strings.ToLower(description)
	for tag, keywords := range c.Table {
		for _, kw := range keywords {
			if kw != "" && strings.Contains(text, kw) {
				tags.Add(tag)
				break
			}
		}
	}
	return tags
}

// LoadTagTable 从 YAML 文件加载关键词表，格式为 tag: [keyword, ...]。
func LoadTagTable(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var table map[string][]string
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return table, nil
}
