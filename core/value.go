// Package core 定义 yakson 的共享契约: 封闭的五类 Value 值树与错误分类。
//
// Value 是解析与序列化之间唯一的交换格式。五种类别之外不存在第六类:
// 所有消费方对 Kind 做穷举分支，编译期即可保证不会悄悄出现新类别。
//
// 生命周期: 一棵 Value 树由一次解析调用原子地产出，此后作为不可变数据
// 传给序列化器; 本模块的任何部分都不会在构建完成后修改它。
package core

import "strconv"

// Kind JSON 值类别
type Kind uint8

const (
	KindNull   Kind = iota // null
	KindBool               // true / false
	KindNumber             // 整数或浮点数（见 NumKind）
	KindString             // 字符串
	KindArray              // 数组（有序）
	KindObject             // 对象（保持插入顺序）
)

// String 返回类别名称
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// NumKind 数字的三种表示，解析时按 32 位整数 → 64 位整数 → 浮点数
// 的固定顺序选取第一个能精确解析的表示。
type NumKind uint8

const (
	NumInt    NumKind = iota // 32 位有符号整数
	NumLong                  // 64 位有符号整数
	NumDouble                // 64 位浮点数
)

// Value JSON 值树节点
//
// 结构布局沿用紧凑多字段模式（o/a/s/t 同置一个结构体，按类别取用），
// 对象成员用有序切片而非 map，保持 JSON 中的字段顺序。
type Value struct {
	o  []member // KindObject: 有序键值对
	a  []*Value // KindArray: 子值
	s  string   // KindString: 字符串内容
	i  int64    // KindNumber(NumInt/NumLong): 整数值
	f  float64  // KindNumber(NumDouble): 浮点值
	t  Kind     // 值类别
	nk NumKind  // KindNumber: 数字表示
	b  bool     // KindBool: 布尔值
}

type member struct {
	k string
	v *Value
}

// ─── 全局单例: null/true/false 不逐个分配 ───

var (
	valueNull  = &Value{t: KindNull}
	valueTrue  = &Value{t: KindBool, b: true}
	valueFalse = &Value{t: KindBool, b: false}
)

// ─── 构造 ───

// Null 返回 null 值
func Null() *Value { return valueNull }

// Bool 返回布尔值
func Bool(b bool) *Value {
	if b {
		return valueTrue
	}
	return valueFalse
}

// Int 构造 32 位整数值
func Int(n int32) *Value { return &Value{t: KindNumber, nk: NumInt, i: int64(n)} }

// Long 构造 64 位整数值
func Long(n int64) *Value { return &Value{t: KindNumber, nk: NumLong, i: n} }

// Double 构造浮点数值
func Double(f float64) *Value { return &Value{t: KindNumber, nk: NumDouble, f: f} }

// Str 构造字符串值
func Str(s string) *Value { return &Value{t: KindString, s: s} }

// NewArray 构造空数组
func NewArray() *Value { return &Value{t: KindArray} }

// NewObject 构造空对象
func NewObject() *Value { return &Value{t: KindObject} }

// Append 追加数组元素，返回 v 以便链式构建。非数组时为 no-op。
func (v *Value) Append(elem *Value) *Value {
	if v == nil || v.t != KindArray {
		return v
	}
	v.a = append(v.a, elem)
	return v
}

// Set 设置对象成员（已存在则覆盖，后写胜出），返回 v 以便链式构建。
// 键唯一性只在解析期强制; 调用方自建的树由调用方自己负责。
func (v *Value) Set(key string, val *Value) *Value {
	if v == nil || v.t != KindObject {
		return v
	}
	for i := range v.o {
		if v.o[i].k == key {
			v.o[i].v = val
			return v
		}
	}
	v.o = append(v.o, member{k: key, v: val})
	return v
}

// SetNew 插入对象成员，键已存在时返回 false 且不修改对象。
// 解析器用它实现重复键硬错误。
func (v *Value) SetNew(key string, val *Value) bool {
	if v == nil || v.t != KindObject {
		return false
	}
	for i := range v.o {
		if v.o[i].k == key {
			return false
		}
	}
	v.o = append(v.o, member{k: key, v: val})
	return true
}

// ─── 类别判断 ───

// Kind 返回值类别; nil 视为 null
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.t
}

// NumKind 返回数字表示; 非数字返回 NumInt 零值
func (v *Value) NumKind() NumKind {
	if v == nil || v.t != KindNumber {
		return NumInt
	}
	return v.nk
}

// IsNull 是否为 null
func (v *Value) IsNull() bool { return v == nil || v.t == KindNull }

// IsObject 是否为对象
func (v *Value) IsObject() bool { return v != nil && v.t == KindObject }

// IsArray 是否为数组
func (v *Value) IsArray() bool { return v != nil && v.t == KindArray }

// ─── 直接取值（类型不匹配返回零值） ───

// Bool 返回布尔值
func (v *Value) Bool() bool { return v != nil && v.t == KindBool && v.b }

// Str 返回字符串内容
func (v *Value) Str() string {
	if v == nil || v.t != KindString {
		return ""
	}
	return v.s
}

// Int64 返回整数值; NumDouble 做截断转换
func (v *Value) Int64() int64 {
	if v == nil || v.t != KindNumber {
		return 0
	}
	if v.nk == NumDouble {
		return int64(v.f)
	}
	return v.i
}

// Float64 返回浮点值; 整数表示做精确提升
func (v *Value) Float64() float64 {
	if v == nil || v.t != KindNumber {
		return 0
	}
	if v.nk == NumDouble {
		return v.f
	}
	return float64(v.i)
}

// NumberText 返回数字的规范十进制文本。整数直接十进制格式化;
// 浮点数取最短往返形式，整值浮点补 ".0" 以保住浮点表示
// （否则重新解析会收窄成整数）。非有限值的拒绝在序列化器中处理。
func (v *Value) NumberText() string {
	if v == nil || v.t != KindNumber {
		return ""
	}
	if v.nk != NumDouble {
		return strconv.FormatInt(v.i, 10)
	}
	s := strconv.FormatFloat(v.f, 'g', -1, 64)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '.' || c == 'e' || (c < '0' || c > '9') && c != '-' {
			// 已含小数点/指数，或是 NaN/Inf 文本: 原样返回
			return s
		}
	}
	return s + ".0"
}

// ─── 路径取值 ───

// Get 按路径获取嵌套值; 对象按键查找，数组按十进制下标查找
//
//	v.Get("user", "name")  // {"user":{"name":...}} 中的 name
//	v.Get("items", "0")    // 数组第 0 个元素
func (v *Value) Get(keys ...string) *Value {
	for _, key := range keys {
		if v == nil {
			return nil
		}
		switch v.t {
		case KindObject:
			v = v.memberGet(key)
		case KindArray:
			idx, ok := parseIdx(key)
			if !ok || idx < 0 || idx >= len(v.a) {
				return nil
			}
			v = v.a[idx]
		default:
			return nil
		}
	}
	return v
}

// memberGet 线性扫描查键（JSON 对象通常字段少）
func (v *Value) memberGet(key string) *Value {
	for i := range v.o {
		if v.o[i].k == key {
			return v.o[i].v
		}
	}
	return nil
}

// GetString 按路径获取字符串值
func (v *Value) GetString(keys ...string) string { return v.Get(keys...).Str() }

// GetInt 按路径获取整数值
func (v *Value) GetInt(keys ...string) int { return int(v.Get(keys...).Int64()) }

// GetInt64 按路径获取 64 位整数值
func (v *Value) GetInt64(keys ...string) int64 { return v.Get(keys...).Int64() }

// GetFloat64 按路径获取浮点值
func (v *Value) GetFloat64(keys ...string) float64 { return v.Get(keys...).Float64() }

// GetBool 按路径获取布尔值
func (v *Value) GetBool(keys ...string) bool { return v.Get(keys...).Bool() }

// Len 返回数组元素数或对象成员数
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	switch v.t {
	case KindArray:
		return len(v.a)
	case KindObject:
		return len(v.o)
	default:
		return 0
	}
}

// At 返回数组第 i 个元素; 越界或非数组返回 nil
func (v *Value) At(i int) *Value {
	if v == nil || v.t != KindArray || i < 0 || i >= len(v.a) {
		return nil
	}
	return v.a[i]
}

// ArrayEach 按序遍历数组元素，回调返回 false 时停止
func (v *Value) ArrayEach(fn func(i int, elem *Value) bool) {
	if v == nil || v.t != KindArray {
		return
	}
	for i, elem := range v.a {
		if !fn(i, elem) {
			return
		}
	}
}

// ObjectEach 按插入顺序遍历对象成员，回调返回 false 时停止
func (v *Value) ObjectEach(fn func(key string, val *Value) bool) {
	if v == nil || v.t != KindObject {
		return
	}
	for i := range v.o {
		if !fn(v.o[i].k, v.o[i].v) {
			return
		}
	}
}

// Keys 返回对象键的有序副本
func (v *Value) Keys() []string {
	if v == nil || v.t != KindObject || len(v.o) == 0 {
		return nil
	}
	keys := make([]string, len(v.o))
	for i := range v.o {
		keys[i] = v.o[i].k
	}
	return keys
}

// ─── 辅助 ───

func parseIdx(s string) (int, bool) {
	if len(s) == 0 || len(s) > 10 {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
		if n < 0 {
			return 0, false // 溢出保护（32 位平台）
		}
	}
	return n, true
}
