package parse

import (
	"strconv"

	"github.com/uniyakcom/yakson/core"
)

// 裸 token 的数字收窄: 按 32 位整数 → 64 位整数 → 64 位浮点数的固定
// 顺序做不抛错的试解析，第一个精确命中的表示即为该数字的类别。
// 顺序本身就是"选最窄类型"的机制，不可调换。

// tryNumber 依次尝试三种数字表示; ok=false 表示 token 不是数字。
func tryNumber(tok string) (v *core.Value, ok bool) {
	if n, ok := tryInt32(tok); ok {
		return core.Int(n), true
	}
	if n, ok := tryInt64(tok); ok {
		return core.Long(n), true
	}
	if f, ok := tryFloat64(tok); ok {
		return core.Double(f), true
	}
	return nil, false
}

// tryInt32 试解析 32 位有符号整数（标准十进制，允许前导符号）
func tryInt32(tok string) (int32, bool) {
	n, err := strconv.ParseInt(tok, 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(n), true
}

// tryInt64 试解析 64 位有符号整数
func tryInt64(tok string) (int64, bool) {
	n, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// tryFloat64 试解析 64 位浮点数
//
// 先做字符集预检，把 strconv.ParseFloat 接受的扩展形式
// （"inf"、"NaN"、0x 十六进制浮点、下划线分隔）挡在文法之外:
// 裸 token 只接受标准的十进制/指数语法。
func tryFloat64(tok string) (float64, bool) {
	for i := 0; i < len(tok); i++ {
		c := tok[i]
		if c >= '0' && c <= '9' {
			continue
		}
		switch c {
		case '+', '-', '.', 'e', 'E':
			continue
		}
		return 0, false
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
