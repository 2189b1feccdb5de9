package timeline

import "fmt"

// ConfigError 表示静态配置非法。
// 只在构造阶段产生；构造成功后所有每帧操作都是全函数，不再失败。
type ConfigError struct {
	Field  string // 出错的配置字段，如 "stops[2]"
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("timeline config: %s: %s", e.Field, e.Reason)
}
