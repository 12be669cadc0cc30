// Package yakson 统一API入口
//
// yakson 是一个自足的 JSON 编解码库: 读侧把字符流解析成内存值树，
// 写侧把值树渲染回 JSON 文本。面向嵌入使用，没有独立命令行、
// 没有模式校验、没有流式事件 API。
//
// 在严格 JSON 之上有两处刻意的宽松: 尾随逗号，以及按
// true/false/null/数字解释的未加引号裸 token。数字解析按
// 32 位整数 → 64 位整数 → 浮点数的固定顺序收窄到最窄表示。
//
// 用法:
//
//	v, err := yakson.Parse(`{"name": "yak", version: 1,}`)
//	name := v.GetString("name") // "yak"
//	out, err := yakson.Write(v, 2)
package yakson

import (
	"io"
	"strings"

	"github.com/uniyakcom/yakson/core"
	"github.com/uniyakcom/yakson/parse"
	"github.com/uniyakcom/yakson/write"
)

// Value 导出值树类型
type Value = core.Value

// Kind 导出值类别
type Kind = core.Kind

// NumKind 导出数字表示类别
type NumKind = core.NumKind

// Code 导出错误分类码
type Code = core.Code

// SyntaxError 导出解析侧错误类型
type SyntaxError = core.SyntaxError

// WriteError 导出序列化侧错误类型
type WriteError = core.WriteError

// Parser 导出解析器类型
type Parser = parse.Parser

const (
	KindNull   = core.KindNull
	KindBool   = core.KindBool
	KindNumber = core.KindNumber
	KindString = core.KindString
	KindArray  = core.KindArray
	KindObject = core.KindObject

	NumInt    = core.NumInt
	NumLong   = core.NumLong
	NumDouble = core.NumDouble

	ErrUnexpectedEOF      = core.ErrUnexpectedEOF
	ErrUnterminatedString = core.ErrUnterminatedString
	ErrIllegalEscape      = core.ErrIllegalEscape
	ErrMalformedObject    = core.ErrMalformedObject
	ErrMalformedArray     = core.ErrMalformedArray
	ErrDuplicateKey       = core.ErrDuplicateKey
	ErrMissingValue       = core.ErrMissingValue
	ErrInvalidLiteral     = core.ErrInvalidLiteral
	ErrIllegalCursorState = core.ErrIllegalCursorState
	ErrNonFiniteNumber    = core.ErrNonFiniteNumber
	ErrUnsupportedType    = core.ErrUnsupportedType
)

// ═══════════════════════════════════════════════════════════════════
// 第零层：零配置入口
// ═══════════════════════════════════════════════════════════════════

// Parse 解析字符串中的一个 JSON 值。
// 只读取恰好一个值; 尾随内容由调用方自行处置。
func Parse(s string) (*Value, error) {
	return parse.NewString(s).ParseValue()
}

// Write 把值树序列化为字符串。indentFactor 为 0 时完全紧凑，
// >0 时按该宽度美化缩进。
func Write(v *Value, indentFactor int) (string, error) {
	var sb strings.Builder
	if err := write.Value(&sb, v, indentFactor, 0); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// ═══════════════════════════════════════════════════════════════════
// 第一层：按形态的入口
// ═══════════════════════════════════════════════════════════════════

// ParseReader 解析字符源中的一个 JSON 值。
// 源不会被缓冲，慢源请自行包一层 bufio.Reader。
func ParseReader(r io.RuneReader) (*Value, error) {
	return parse.New(r).ParseValue()
}

// ParseObject 解析字符串中的一个 JSON 对象; 顶层值不是对象时报错。
func ParseObject(s string) (*Value, error) {
	return parse.NewString(s).ParseObject()
}

// ParseArray 解析字符串中的一个 JSON 数组; 顶层值不是数组时报错。
func ParseArray(s string) (*Value, error) {
	return parse.NewString(s).ParseArray()
}

// WriteTo 把值树序列化到 sink。sink 的 I/O 错误原样传出。
func WriteTo(w io.Writer, v *Value, indentFactor int) error {
	return write.Value(w, v, indentFactor, 0)
}

// WriteAny 在边界处归类任意 Go 聚合后序列化到 sink。
func WriteAny(w io.Writer, x any, indentFactor int) error {
	return write.Any(w, x, indentFactor, 0)
}

// ═══════════════════════════════════════════════════════════════════
// 第二层：值树构建
// ═══════════════════════════════════════════════════════════════════

// From 把任意 Go 聚合归类到封闭的 Value 联合
func From(x any) (*Value, error) { return core.From(x) }

// Null 返回 null 值
func Null() *Value { return core.Null() }

// Bool 返回布尔值
func Bool(b bool) *Value { return core.Bool(b) }

// Int 构造 32 位整数值
func Int(n int32) *Value { return core.Int(n) }

// Long 构造 64 位整数值
func Long(n int64) *Value { return core.Long(n) }

// Double 构造浮点数值
func Double(f float64) *Value { return core.Double(f) }

// Str 构造字符串值
func Str(s string) *Value { return core.Str(s) }

// NewArray 构造空数组
func NewArray() *Value { return core.NewArray() }

// NewObject 构造空对象
func NewObject() *Value { return core.NewObject() }
