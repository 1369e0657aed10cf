package feature

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Enmxy/mangexis-vercel-sub000/core"
)

// DemographicRule 是受众分层的一条判定规则。
// 三类条件按字段组合：
//   - Labels：题材串或简介中出现任一词即命中（显式标注）
//   - Genres：题材集合包含任一题材即命中（启发式）
//   - Description：简介包含任一关键词；与 Genres 同时给出时两者都要满足
type DemographicRule struct {
	Demographic string   `yaml:"demographic"`
	Labels      []string `yaml:"labels,omitempty"`
	Genres      []string `yaml:"genres,omitempty"`
	Description []string `yaml:"description,omitempty"`
}

// DemographicClassifier 按规则顺序为作品指派受众分层。
// 首条命中的规则直接胜出，不打分、不平票；全部未命中取 general。
type DemographicClassifier struct {
	Rules []DemographicRule
}

// DefaultDemographicRules 返回内置规则：显式标注优先于题材启发。
func DefaultDemographicRules() []DemographicRule {
	return []DemographicRule{
		{Demographic: core.DemographicShounen, Labels: []string{core.DemographicShounen}},
		{Demographic: core.DemographicSeinen, Labels: []string{core.DemographicSeinen}},
		{Demographic: core.DemographicShoujo, Labels: []string{core.DemographicShoujo}},
		{Demographic: core.DemographicJosei, Labels: []string{core.DemographicJosei}},
		{Demographic: core.DemographicShounen, Genres: []string{"action", "adventure"}},
		{Demographic: core.DemographicShoujo, Genres: []string{"romance"}, Description: []string{"school"}},
		{Demographic: core.DemographicSeinen, Genres: []string{"psychological", "thriller"}},
	}
}

// NewDemographicClassifier 创建受众分类器，rules 为 nil 时使用内置规则。
func NewDemographicClassifier(rules []DemographicRule) *DemographicClassifier {
	if rules == nil {
		rules = DefaultDemographicRules()
	}
	return &DemographicClassifier{Rules: rules}
}

// Classify 返回作品的受众分层。
func (c *DemographicClassifier) Classify(genreRaw, description string) string {
	genres := core.ParseGenres(genreRaw)
	text := strings.ToLower(genreRaw + " " + description)
	desc := strings.ToLower(description)

	for _, rule := range c.Rules {
		if rule.matches(genres, text, desc) {
			return rule.Demographic
		}
	}
	return core.DemographicGeneral
}

func (r *DemographicRule) matches(genres core.StringSet, combined, desc string) bool {
	for _, label := range r.Labels {
		if label != "" && strings.Contains(combined, label) {
			return true
		}
	}

	if len(r.Genres) == 0 && len(r.Description) == 0 {
		return false
	}

	if len(r.Genres) > 0 {
		hit := false
		for _, g := range r.Genres {
			if genres.Has(g) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}

	if len(r.Description) > 0 {
		hit := false
		for _, kw := range r.Description {
			if kw != "" && strings.Contains(desc, kw) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}

	return true
}

// LoadDemographicRules 从 YAML 文件加载规则列表，顺序即优先级。
func LoadDemographicRules(path string) ([]DemographicRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var rules []DemographicRule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return rules, nil
}
