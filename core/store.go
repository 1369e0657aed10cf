package core

import "context"

// Store 是存储的领域接口。
//
// 接口定义在领域层（core），由基础设施层（store）实现，避免循环依赖。
// 推荐引擎本身不做持久化，它只从协作方存储读取目录/历史/评分。
type Store interface {
	// Name 返回存储后端名称（用于观测）
	Name() string

	// Get 读取单个 key 的值
	Get(ctx context.Context, key string) ([]byte, error)

	// Set 写入单个 key-value
	Set(ctx context.Context, key string, value []byte, ttl ...int) error

	// Delete 删除单个 key
	Delete(ctx context.Context, key string) error

	// BatchGet 批量读取（减少网络往返）
	BatchGet(ctx context.Context, keys []string) (map[string][]byte, error)

	// BatchSet 批量写入
	BatchSet(ctx context.Context, kvs map[string][]byte, ttl ...int) error

	// Close 关闭连接/释放资源
	Close() error
}

// KeyValueStore 是 Store 的扩展接口，支持更丰富的 KV 操作。
//
//   - 有序集合：热度榜、阅读时间线
//   - 哈希表：目录条目、用户评分
//
// 后端不支持某操作时返回 ErrStoreNotSupported。
type KeyValueStore interface {
	Store

	// ZAdd 向有序集合添加成员
	ZAdd(ctx context.Context, key string, score float64, member string) error

	// ZRange 按分数降序获取有序集合成员（用于 TopN）
	ZRange(ctx context.Context, key string, start, stop int64) ([]string, error)

	// ZScore 获取成员的分数
	ZScore(ctx context.Context, key string, member string) (float64, error)

	// HGet 读取 Hash 字段
	HGet(ctx context.Context, key, field string) ([]byte, error)

	// HSet 写入 Hash 字段
	HSet(ctx context.Context, key, field string, value []byte) error

	// HGetAll 读取整个 Hash
	HGetAll(ctx context.Context, key string) (map[string][]byte, error)
}

// CatalogProvider 提供全量内容目录。调用方负责控制目录规模，
// 引擎不做分页（打分是 O(候选数 × 历史长度)）。
type CatalogProvider interface {
	ListManga(ctx context.Context) ([]*Manga, error)
}

// HistoryStore 提供单个用户的阅读历史。
type HistoryStore interface {
	GetHistory(ctx context.Context, userID string) ([]ReadingRecord, error)
}

// RatingStore 提供单个用户的评分表，key 为作品 slug。
type RatingStore interface {
	GetRatings(ctx context.Context, userID string) (map[string]Rating, error)
}

// Store 错误定义（使用统一的 DomainError）
var (
	// ErrStoreNotFound 表示 key 不存在
	ErrStoreNotFound = NewDomainError(ModuleStore, ErrorCodeNotFound, "store: key not found")

	// ErrStoreNotSupported 表示操作不支持
	ErrStoreNotSupported = NewDomainError(ModuleStore, ErrorCodeNotSupported, "store: operation not supported")
)

// IsStoreNotFound 判断是否为存储层的 NOT_FOUND。
func IsStoreNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Module == ModuleStore && domainErr.Code == ErrorCodeNotFound
	}
	return false
}
