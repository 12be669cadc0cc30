package core

import "fmt"

// Code 错误分类码
//
// 解析侧与序列化侧共用同一套分类码，便于调用方用一个 switch 处理。
// 分类是封闭的: 不存在未列出的失败类别。
type Code uint8

const (
	// ─── 解析侧（SyntaxError） ───

	ErrUnexpectedEOF      Code = iota + 1 // 需要字符处输入已结束
	ErrUnterminatedString                 // 字符串字面量内出现裸换行或输入结束
	ErrIllegalEscape                      // 不认识的反斜杠转义
	ErrMalformedObject                    // 对象结构符缺失或错位
	ErrMalformedArray                     // 数组结构符缺失或错位
	ErrDuplicateKey                       // 同一对象内键重复
	ErrMissingValue                       // 需要值处立即遇到边界字符
	ErrInvalidLiteral                     // 裸 token 不是 true/false/null/数字
	ErrIllegalCursorState                 // 游标契约违规（连续两次回退等）

	// ─── 序列化侧（WriteError） ───

	ErrNonFiniteNumber // 数字为 Inf/NaN
	ErrUnsupportedType // 值不属于五种受支持的类别
)

// String 返回分类码名称
func (c Code) String() string {
	switch c {
	case ErrUnexpectedEOF:
		return "unexpected EOF"
	case ErrUnterminatedString:
		return "unterminated string"
	case ErrIllegalEscape:
		return "illegal escape"
	case ErrMalformedObject:
		return "malformed object"
	case ErrMalformedArray:
		return "malformed array"
	case ErrDuplicateKey:
		return "duplicate key"
	case ErrMissingValue:
		return "missing value"
	case ErrInvalidLiteral:
		return "invalid literal"
	case ErrIllegalCursorState:
		return "illegal cursor state"
	case ErrNonFiniteNumber:
		return "non-finite number"
	case ErrUnsupportedType:
		return "unsupported type"
	default:
		return "unknown"
	}
}

// SyntaxError 解析侧错误: 消息 + 失败点位置
//
// 位置信息由游标提供，index 为绝对字符序号，line/column 从 1 开始计数。
// 对当前解析调用是致命的: 调用方只能丢弃部分状态，不存在局部恢复。
type SyntaxError struct {
	Code   Code
	Msg    string
	Index  int64
	Line   int64
	Column int64
}

// Error 渲染 "消息 at <index> [character <column> line <line>]"
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at %d [character %d line %d]", e.Msg, e.Index, e.Column, e.Line)
}

// WriteError 序列化侧错误: 不携带位置（输入是内存中的值树，没有流位置）
type WriteError struct {
	Code Code
	Msg  string
}

// Error 返回错误消息
func (e *WriteError) Error() string {
	return e.Msg
}

// CodeOf 提取错误的分类码; 非本包错误（如底层 I/O 错误）返回 0
func CodeOf(err error) Code {
	switch e := err.(type) {
	case *SyntaxError:
		return e.Code
	case *WriteError:
		return e.Code
	default:
		return 0
	}
}
