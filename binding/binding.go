// Package binding 负责课程内容中 ${path.to.value} 占位符的替换。
package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Scope 包装一份 JSON 解码后的数据（map[string]any / []any / 标量）。
// 零值 Scope 不解析任何路径。
type Scope struct {
	data any
}

// NewScope 以 data 为根创建作用域。
func NewScope(data any) Scope { return Scope{data: data} }

// Empty 表示作用域没有数据，Interpolate 原样返回文本。
func (s Scope) Empty() bool { return s.data == nil }

// Interpolate 将文本中的 ${path} 替换为数据中的值。
// 占位符可以带默认值：${student.name|friend}；路径不存在且没有默认值时保留原占位符。
func (s Scope) Interpolate(text string) string {
	if !strings.Contains(text, "${") {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		path, fallback, hasFallback := splitExpr(match[2 : len(match)-1])
		if path == "" {
			return match
		}
		if val, ok := s.Lookup(path); ok {
			return format(val)
		}
		if hasFallback {
			return fallback
		}
		return match
	})
}

// Unresolved 返回文本中无法解析且没有默认值的路径，按出现顺序去重。
func (s Scope) Unresolved(text string) []string {
	var out []string
	seen := map[string]bool{}
	for _, groups := range exprPattern.FindAllStringSubmatch(text, -1) {
		path, _, hasFallback := splitExpr(groups[1])
		if path == "" || hasFallback || seen[path] {
			continue
		}
		if _, ok := s.Lookup(path); !ok {
			seen[path] = true
			out = append(out, path)
		}
	}
	return out
}

// Lookup 解析 a.b[0].c 形式的路径。
func (s Scope) Lookup(path string) (any, bool) {
	if s.data == nil {
		return nil, false
	}
	current := s.data
	for _, segment := range strings.Split(path, ".") {
		name, indexes, ok := parseSegment(segment)
		if !ok {
			return nil, false
		}
		if name != "" {
			if current, ok = descendMap(current, name); !ok {
				return nil, false
			}
		}
		for _, idx := range indexes {
			if current, ok = descendArray(current, idx); !ok {
				return nil, false
			}
		}
	}
	return current, true
}

// Interpolate 是 NewScope(data).Interpolate(text) 的简写。
func Interpolate(text string, data any) string {
	return NewScope(data).Interpolate(text)
}

func splitExpr(expr string) (path, fallback string, hasFallback bool) {
	path = expr
	if i := strings.IndexByte(expr, '|'); i >= 0 {
		path, fallback, hasFallback = expr[:i], strings.TrimSpace(expr[i+1:]), true
	}
	return strings.TrimSpace(path), fallback, hasFallback
}

// parseSegment 拆分 name[0][1]；索引不是整数或括号不闭合时 ok=false。
func parseSegment(segment string) (name string, indexes []int, ok bool) {
	i := strings.IndexByte(segment, '[')
	if i == -1 {
		return segment, nil, true
	}
	name, rest := segment[:i], segment[i:]
	for rest != "" {
		end := strings.IndexByte(rest, ']')
		if rest[0] != '[' || end == -1 {
			return "", nil, false
		}
		idx, err := strconv.Atoi(strings.TrimSpace(rest[1:end]))
		if err != nil {
			return "", nil, false
		}
		indexes = append(indexes, idx)
		rest = rest[end+1:]
	}
	return name, indexes, true
}

func descendMap(current any, key string) (any, bool) {
	switch c := current.(type) {
	case map[string]any:
		val, ok := c[key]
		return val, ok
	case map[string]string:
		val, ok := c[key]
		return val, ok
	default:
		return nil, false
	}
}

func descendArray(current any, idx int) (any, bool) {
	switch c := current.(type) {
	case []any:
		if idx < 0 || idx >= len(c) {
			return nil, false
		}
		return c[idx], true
	case []string:
		if idx < 0 || idx >= len(c) {
			return nil, false
		}
		return c[idx], true
	default:
		return nil, false
	}
}

// format 输出标量；JSON 数字为 float64，整数值不带小数部分。
func format(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprint(t)
	}
}
