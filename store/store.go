package store

// 此包只包含实现，接口定义在 core 包：
//   - core.Store / core.KeyValueStore：通用 KV
//   - core.CatalogProvider / core.HistoryStore / core.RatingStore：领域存储
//
// MemoryStore 适合测试/原型，RedisStore 适合线上；
// 领域存储由 adapter.go 里的 JSON 适配器铺在任一 KeyValueStore 之上。
