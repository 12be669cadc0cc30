// Package cursor 提供带位置追踪与单字符回退的字符游标。
//
// 游标是解析器的唯一输入通道: 每个语法构造都先窥视一个字符、回退、
// 再分派。回退深度严格限定为一层——这是整套文法依赖的硬性前置条件，
// 因此游标的可变状态全部封闭在本包内，调用方无法绕过方法直接改字段。
//
// 游标本身不做缓冲; 底层源较慢时调用方应自行包一层 bufio.Reader
// （它实现 io.RuneReader）。
package cursor

import (
	"fmt"
	"io"
	"strings"

	"github.com/uniyakcom/yakson/core"
)

// EOF 输入结束哨兵。NextOrEOF 在源耗尽时返回它而不报错。
const EOF rune = -1

// Cursor 位置追踪游标
//
// 状态: 绝对字符序号、从 1 开始的行号与列号、一格回退缓冲、EOF 标志。
// 单个 Cursor 是线程封闭的可变会话，不能跨 goroutine 共享。
type Cursor struct {
	r       io.RuneReader
	index   int64
	line    int64
	column  int64
	prev    rune
	usePrev bool
	eof     bool
}

// New 创建从 r 逐字符读取的游标
func New(r io.RuneReader) *Cursor {
	return &Cursor{r: r, line: 1, column: 1}
}

// NewString 创建从内存字符串读取的游标
func NewString(s string) *Cursor {
	return New(strings.NewReader(s))
}

// NextOrEOF 读取下一个字符; 源耗尽时返回 EOF 哨兵，永不因 EOF 报错。
//
// 回退缓冲若有内容则先消费它。行列簿记: 换行符使行号加一、列号归零;
// 孤立回车同样按行终止符处理，其后紧跟的换行不会重复计行。
// 底层源的 I/O 错误原样向上传递，不包装成语法错误。
func (c *Cursor) NextOrEOF() (rune, error) {
	if c.eof {
		return EOF, nil
	}
	var r rune
	if c.usePrev {
		c.usePrev = false
		r = c.prev
	} else {
		rr, _, err := c.r.ReadRune()
		if err == io.EOF {
			c.eof = true
			return EOF, nil
		}
		if err != nil {
			return 0, err
		}
		r = rr
	}
	c.index++
	switch {
	case c.prev == '\r':
		c.line++
		if r == '\n' {
			c.column = 0
		} else {
			c.column = 1
		}
	case r == '\n':
		c.line++
		c.column = 0
	default:
		c.column++
	}
	c.prev = r
	return r, nil
}

// Next 读取下一个字符; 源已耗尽时返回 ErrUnexpectedEOF。
func (c *Cursor) Next() (rune, error) {
	r, err := c.NextOrEOF()
	if err != nil {
		return 0, err
	}
	if r == EOF {
		return 0, c.SyntaxError(core.ErrUnexpectedEOF, "Unexpected end of file")
	}
	return r, nil
}

// NextN 读取恰好 n 个字符拼成字符串; 不足 n 个时返回 ErrUnexpectedEOF，
// 已读的部分不会进入返回值。
func (c *Cursor) NextN(n int) (string, error) {
	if n == 0 {
		return "", nil
	}
	buf := make([]rune, n)
	for i := 0; i < n; i++ {
		r, err := c.Next()
		if err != nil {
			return "", err
		}
		buf[i] = r
	}
	return string(buf), nil
}

// NextNonBlank 跳过码点 <= 空格的字符，返回第一个大于该阈值的字符;
// 跳完仍未遇到时返回 ErrUnexpectedEOF。
func (c *Cursor) NextNonBlank() (rune, error) {
	for {
		r, err := c.Next()
		if err != nil {
			return 0, err
		}
		if r > ' ' {
			return r, nil
		}
	}
}

// PushBack 回退恰好一个字符。
//
// 两次回退之间没有前向读取、或尚未读过任何字符时，返回
// ErrIllegalCursorState——这是编程契约违规，不是数据错误。
// 回退同时清除 EOF 标志，使回退的字符可被重新读出。
func (c *Cursor) PushBack() error {
	if c.usePrev || c.index <= 0 {
		return c.SyntaxError(core.ErrIllegalCursorState, "Stepping back two steps is not supported")
	}
	c.index--
	c.column--
	c.usePrev = true
	c.eof = false
	return nil
}

// Prev 返回最近一次前向读取交付的字符（用于错误消息）
func (c *Cursor) Prev() rune { return c.prev }

// ReachedEOF 返回是否已经读到输入结束
func (c *Cursor) ReachedEOF() bool { return c.eof }

// PositionString 渲染 " at <index> [character <column> line <line>]"，
// 供拼接进错误消息。
func (c *Cursor) PositionString() string {
	return fmt.Sprintf(" at %d [character %d line %d]", c.index, c.column, c.line)
}

// SyntaxError 构造携带当前位置的语法错误
func (c *Cursor) SyntaxError(code core.Code, msg string) error {
	return &core.SyntaxError{
		Code:   code,
		Msg:    msg,
		Index:  c.index,
		Line:   c.line,
		Column: c.column,
	}
}
