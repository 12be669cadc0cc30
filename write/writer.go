// Package write 实现值树到 JSON 文本的递归序列化器。
//
// 两种输出模式由 indentFactor 控制: 0 为完全紧凑（不插入任何空白与
// 换行）; >0 为美化输出，每层嵌套缩进该数量的空格。所有入口都显式
// 接收当前缩进参数，嵌套调用据此计算子级缩进。
//
// 序列化器调用之间不保留任何状态; 只要各调用的 sink 互相独立、
// 值树不可变（或各自独立），从多个 goroutine 并发调用是安全的。
// sink 的 I/O 错误原样向上传递，与 WriteError 分属两类。
package write

import (
	"fmt"
	"io"
	"math"

	"github.com/uniyakcom/yakson/core"
)

// ─── 值分派 ───

// Value 把 v 写入 w。分派只在封闭的 Value 联合上进行:
// nil 树写作 null，五种类别各走各的产生式。
func Value(w io.Writer, v *core.Value, indentFactor, indent int) error {
	switch v.Kind() {
	case core.KindNull:
		return writeLiteral(w, "null")
	case core.KindBool:
		if v.Bool() {
			return writeLiteral(w, "true")
		}
		return writeLiteral(w, "false")
	case core.KindNumber:
		return Number(w, v)
	case core.KindString:
		return String(w, v.Str())
	case core.KindArray:
		return Array(w, v, indentFactor, indent)
	case core.KindObject:
		return Object(w, v, indentFactor, indent)
	default:
		return &core.WriteError{
			Code: core.ErrUnsupportedType,
			Msg:  fmt.Sprintf("Invalid value: unknown kind %d", v.Kind()),
		}
	}
}

// Any 在边界处把调用方提供的任意聚合归类到封闭联合后写入。
// 递归写入器本身从不做开放式运行时类型检查（归类只发生这一次）。
func Any(w io.Writer, x any, indentFactor, indent int) error {
	v, err := core.From(x)
	if err != nil {
		return err
	}
	return Value(w, v, indentFactor, indent)
}

// ─── 数字 ───

// Number 写数字的规范十进制文本; Inf/NaN 拒绝为 ErrNonFiniteNumber。
// 不做定宽、不裁尾零，文本即该表示自身的规范形式。
func Number(w io.Writer, v *core.Value) error {
	if v.Kind() != core.KindNumber {
		return &core.WriteError{
			Code: core.ErrUnsupportedType,
			Msg:  fmt.Sprintf("Invalid number: expected number value, found %s", v.Kind()),
		}
	}
	if v.NumKind() == core.NumDouble {
		f := v.Float64()
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return &core.WriteError{
				Code: core.ErrNonFiniteNumber,
				Msg:  fmt.Sprintf("Expected finite number, found `%v`", f),
			}
		}
	}
	return writeLiteral(w, v.NumberText())
}

// ─── 字符串 ───

var hexDigit = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}

// String 写带引号的转义字符串。
//
// 转义规则: \ 和 " 加反斜杠; \b \t \n \f \r 用两字符短形式;
// '/' 仅在同一字符串中紧邻的前一个输出字符是 '<' 时转义——这是针对
// JSON 内嵌 HTML 时 `</script>` 提前闭合的防护，属于既有消费方依赖
// 的契约，必须原样保留; 码点 < U+0020、U+0080–U+009F、U+2000–U+20FF
// 的字符写成 \u 加 4 位小写十六进制; 其余字符原样通过。
func String(w io.Writer, s string) error {
	buf := make([]byte, 0, len(s)+2)
	buf = append(buf, '"')
	var prev rune
	for _, c := range s {
		switch c {
		case '\\', '"':
			buf = append(buf, '\\', byte(c))
		case '/':
			if prev == '<' {
				buf = append(buf, '\\')
			}
			buf = append(buf, '/')
		case '\b':
			buf = append(buf, '\\', 'b')
		case '\t':
			buf = append(buf, '\\', 't')
		case '\n':
			buf = append(buf, '\\', 'n')
		case '\f':
			buf = append(buf, '\\', 'f')
		case '\r':
			buf = append(buf, '\\', 'r')
		default:
			if c < ' ' || (c >= 0x80 && c < 0xA0) || (c >= 0x2000 && c < 0x2100) {
				buf = append(buf, '\\', 'u',
					hexDigit[(c>>12)&0xF], hexDigit[(c>>8)&0xF],
					hexDigit[(c>>4)&0xF], hexDigit[c&0xF])
			} else {
				buf = appendRune(buf, c)
			}
		}
		prev = c
	}
	buf = append(buf, '"')
	_, err := w.Write(buf)
	return err
}

// ─── 数组 ───

// Array 写数组。紧凑模式输出 [v1,v2,...]，不含任何空格;
// 美化模式每个元素独占一行、缩进比数组自身深一层，闭合 ']' 回到
// 数组自身的缩进层。空数组同样走完整的换行/缩进骨架，只是没有
// 逐元素内容——与单元素时的分隔结构完全一致。
func Array(w io.Writer, v *core.Value, indentFactor, indent int) error {
	if v.Kind() != core.KindArray {
		return &core.WriteError{
			Code: core.ErrUnsupportedType,
			Msg:  fmt.Sprintf("Invalid array: expected array value, found %s", v.Kind()),
		}
	}
	if err := writeLiteral(w, "["); err != nil {
		return err
	}
	newIndent := indent + indentFactor
	n := v.Len()
	for i := 0; i < n; i++ {
		if i > 0 {
			if err := writeLiteral(w, ","); err != nil {
				return err
			}
		}
		if indentFactor > 0 {
			if err := writeLiteral(w, "\n"); err != nil {
				return err
			}
		}
		if err := writeIndent(w, newIndent); err != nil {
			return err
		}
		if err := Value(w, v.At(i), indentFactor, newIndent); err != nil {
			return err
		}
	}
	if indentFactor > 0 {
		if err := writeLiteral(w, "\n"); err != nil {
			return err
		}
	}
	if err := writeIndent(w, indent); err != nil {
		return err
	}
	return writeLiteral(w, "]")
}

// ─── 对象 ───

// Object 写对象。骨架与数组一致，但有一个单成员特例: 恰好一个键时，
// 整个成员与 '{'、'}' 写在同一行（美化模式仅在 ':' 后补一个空格），
// 不产生任何换行/缩进——这一与多成员及数组的不对称是既有契约，
// 必须原样保留。零成员写作 {}。
func Object(w io.Writer, v *core.Value, indentFactor, indent int) error {
	if v.Kind() != core.KindObject {
		return &core.WriteError{
			Code: core.ErrUnsupportedType,
			Msg:  fmt.Sprintf("Invalid object: expected object value, found %s", v.Kind()),
		}
	}
	if err := writeLiteral(w, "{"); err != nil {
		return err
	}
	n := v.Len()
	switch {
	case n == 1:
		var werr error
		v.ObjectEach(func(key string, val *core.Value) bool {
			werr = writeMember(w, key, val, indentFactor, indent)
			return false
		})
		if werr != nil {
			return werr
		}
	case n > 1:
		newIndent := indent + indentFactor
		i := 0
		var werr error
		v.ObjectEach(func(key string, val *core.Value) bool {
			if i > 0 {
				if werr = writeLiteral(w, ","); werr != nil {
					return false
				}
			}
			if indentFactor > 0 {
				if werr = writeLiteral(w, "\n"); werr != nil {
					return false
				}
			}
			if werr = writeIndent(w, newIndent); werr != nil {
				return false
			}
			if werr = writeMember(w, key, val, indentFactor, newIndent); werr != nil {
				return false
			}
			i++
			return true
		})
		if werr != nil {
			return werr
		}
		if indentFactor > 0 {
			if err := writeLiteral(w, "\n"); err != nil {
				return err
			}
		}
		if err := writeIndent(w, indent); err != nil {
			return err
		}
	}
	return writeLiteral(w, "}")
}

// writeMember 写 "key":value，美化模式在 ':' 后补一个空格
func writeMember(w io.Writer, key string, val *core.Value, indentFactor, indent int) error {
	if err := String(w, key); err != nil {
		return err
	}
	if err := writeLiteral(w, ":"); err != nil {
		return err
	}
	if indentFactor > 0 {
		if err := writeLiteral(w, " "); err != nil {
			return err
		}
	}
	return Value(w, val, indentFactor, indent)
}

// ─── sink 辅助 ───

// writeLiteral 经 io.WriteString 写字符串，sink 实现 io.StringWriter
// 时直接走它的快速路径。
func writeLiteral(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

// indentPad 缩进填充块，按块切片避免逐空格写 sink
const indentPad = "                                " // 32 个空格

func writeIndent(w io.Writer, n int) error {
	for n > 0 {
		chunk := n
		if chunk > len(indentPad) {
			chunk = len(indentPad)
		}
		if err := writeLiteral(w, indentPad[:chunk]); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// appendRune 追加 UTF-8 编码的字符
func appendRune(buf []byte, r rune) []byte {
	if r < 0x80 {
		return append(buf, byte(r))
	}
	return append(buf, string(r)...)
}
