// Package parse 实现基于游标的递归下降 JSON 解析器。
//
// 在严格 JSON 之上有两处刻意的宽松: 对象和数组接受尾随逗号;
// 未加引号的裸 token 按 true/false/null/数字字面量解释（因此对象键
// 可以不带引号）。除此之外不支持注释等任何 JSON5 扩展。
//
// 解析器在顶层调用之间无状态，只有共享游标的位置在前进;
// 单个 Parser 与其游标构成一个线程封闭的可变会话。
package parse

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/uniyakcom/yakson/core"
	"github.com/uniyakcom/yakson/cursor"
)

// rawBoundary 裸 token 的边界字符集（码点 <= 空格的字符同样是边界）
const rawBoundary = "[]{},:=#"

// Parser JSON 解析器
//
// 用法:
//
//	p := parse.NewString(`{"key": "value"}`)
//	v, err := p.ParseValue()
//	fmt.Println(v.GetString("key")) // "value"
type Parser struct {
	cur *cursor.Cursor
}

// New 创建从 r 读取的解析器。r 不会被缓冲，慢源请包 bufio.Reader。
func New(r io.RuneReader) *Parser {
	return &Parser{cur: cursor.New(r)}
}

// NewString 创建从内存字符串读取的解析器
func NewString(s string) *Parser {
	return &Parser{cur: cursor.NewString(s)}
}

// ─── 公开入口 ───

// ParseValue 解析一个任意 JSON 值。
// 只读取恰好一个值，游标停在它之后; 尾随内容由调用方自行处置。
func (p *Parser) ParseValue() (*core.Value, error) {
	return p.nextItem()
}

// ParseObject 解析一个 JSON 对象; 顶层值不是对象时报错。
func (p *Parser) ParseObject() (*core.Value, error) {
	return p.parseObject()
}

// ParseArray 解析一个 JSON 数组; 顶层值不是数组时报错。
func (p *Parser) ParseArray() (*core.Value, error) {
	return p.parseArray()
}

// PositionString 返回游标当前位置的诊断文本
func (p *Parser) PositionString() string {
	return p.cur.PositionString()
}

// String 返回 "Parser at <index> [character <column> line <line>]"
func (p *Parser) String() string {
	return "Parser" + p.cur.PositionString()
}

// ─── 值分派 ───

// nextItem 唯一的值入口: 窥视一个非空白字符、回退、按首字符分派。
// 嵌套容器递归回到这里。
func (p *Parser) nextItem() (*core.Value, error) {
	c, err := p.cur.NextNonBlank()
	if err != nil {
		return nil, err
	}
	if err := p.cur.PushBack(); err != nil {
		return nil, err
	}
	switch c {
	case '"':
		return p.nextString()
	case '{':
		return p.parseObject()
	case '[':
		return p.parseArray()
	default:
		return p.nextRawToken()
	}
}

// ─── 字符串 ───

// nextString 解析带引号的字符串字面量。
//
// 引号内的裸换行/回车是硬错误: 字符串不能不转义地跨物理行。
// \uXXXX 产生一个 UTF-16 码元; 合法的高低代理对合并为一个字符，
// 落单的代理写入 U+FFFD（Go 字符串装不下裸代理）。
func (p *Parser) nextString() (*core.Value, error) {
	c, err := p.cur.NextNonBlank()
	if err != nil {
		return nil, err
	}
	if c != '"' {
		if err := p.cur.PushBack(); err != nil {
			return nil, err
		}
		return nil, p.cur.SyntaxError(core.ErrMissingValue,
			fmt.Sprintf("Invalid string: expected `\"`, found `%c`", c))
	}

	var sb strings.Builder
	pendingHigh := rune(0) // 暂存的高代理，等待低代理合并
	flushPending := func() {
		if pendingHigh != 0 {
			sb.WriteRune(utf8.RuneError)
			pendingHigh = 0
		}
	}

	for {
		c, err := p.cur.NextOrEOF()
		if err != nil {
			return nil, err
		}
		switch c {
		case cursor.EOF:
			return nil, p.cur.SyntaxError(core.ErrUnterminatedString,
				"Unterminated string: Expected end of string (\"), found end of input")
		case '\n', '\r':
			return nil, p.cur.SyntaxError(core.ErrUnterminatedString,
				"Unterminated string: Expected end of string (\"), found newline")
		case '"':
			flushPending()
			return core.Str(sb.String()), nil
		case '\\':
			e, err := p.cur.Next()
			if err != nil {
				return nil, err
			}
			switch e {
			case 'b':
				flushPending()
				sb.WriteByte('\b')
			case 't':
				flushPending()
				sb.WriteByte('\t')
			case 'n':
				flushPending()
				sb.WriteByte('\n')
			case 'f':
				flushPending()
				sb.WriteByte('\f')
			case 'r':
				flushPending()
				sb.WriteByte('\r')
			case '"', '\'', '\\', '/':
				flushPending()
				sb.WriteRune(e)
			case 'u':
				hex, err := p.cur.NextN(4)
				if err != nil {
					return nil, err
				}
				cu, ok := hex4(hex)
				if !ok {
					return nil, p.cur.SyntaxError(core.ErrIllegalEscape,
						fmt.Sprintf("Illegal escape: Expected 4 hex digits after \\u, found `%s`", hex))
				}
				switch {
				case cu >= 0xD800 && cu <= 0xDBFF: // 高代理
					flushPending()
					pendingHigh = cu
				case cu >= 0xDC00 && cu <= 0xDFFF: // 低代理
					if pendingHigh != 0 {
						sb.WriteRune(0x10000 + (pendingHigh-0xD800)<<10 + (cu - 0xDC00))
						pendingHigh = 0
					} else {
						sb.WriteRune(utf8.RuneError)
					}
				default:
					flushPending()
					sb.WriteRune(cu)
				}
			default:
				return nil, p.cur.SyntaxError(core.ErrIllegalEscape,
					fmt.Sprintf("Illegal escape: Expected \\b, \\t, \\n, \\f, \\r, \\u, \\\", \\', \\\\ or \\/, found `%c`", e))
			}
		default:
			flushPending()
			sb.WriteRune(c)
		}
	}
}

// hex4 解析恰好 4 位十六进制
func hex4(s string) (rune, bool) {
	var r rune
	if len(s) != 4 {
		return 0, false
	}
	for i := 0; i < 4; i++ {
		c := s[i]
		r <<= 4
		switch {
		case c >= '0' && c <= '9':
			r |= rune(c - '0')
		case c >= 'a' && c <= 'f':
			r |= rune(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			r |= rune(c - 'A' + 10)
		default:
			return 0, false
		}
	}
	return r, true
}

// ─── 裸 token ───

// nextRawToken 累积字符直到输入结束或边界字符（[]{},:=# 及码点 <= 空格），
// 边界字符回退给下一个读取者（EOF 哨兵不回退）。
// 空 token: 输入已结束报 ErrUnexpectedEOF，否则报 ErrMissingValue。
// 然后按 true/false/null（不分大小写）→ 数字收窄 → ErrInvalidLiteral 判定。
func (p *Parser) nextRawToken() (*core.Value, error) {
	var sb strings.Builder
	for {
		c, err := p.cur.NextOrEOF()
		if err != nil {
			return nil, err
		}
		if c == cursor.EOF {
			break
		}
		if c <= ' ' || strings.ContainsRune(rawBoundary, c) {
			if err := p.cur.PushBack(); err != nil {
				return nil, err
			}
			break
		}
		sb.WriteRune(c)
	}

	tok := sb.String()
	if tok == "" {
		if p.cur.ReachedEOF() {
			return nil, p.cur.SyntaxError(core.ErrUnexpectedEOF, "Unexpected end of file")
		}
		return nil, p.cur.SyntaxError(core.ErrMissingValue,
			fmt.Sprintf("Missing value: Expected item, found `%c`", p.cur.Prev()))
	}
	if strings.EqualFold(tok, "true") {
		return core.Bool(true), nil
	}
	if strings.EqualFold(tok, "false") {
		return core.Bool(false), nil
	}
	if strings.EqualFold(tok, "null") {
		return core.Null(), nil
	}
	if v, ok := tryNumber(tok); ok {
		return v, nil
	}
	return nil, p.cur.SyntaxError(core.ErrInvalidLiteral,
		fmt.Sprintf("Invalid item: expected true, false, null or number, found `%s`", tok))
}

// ─── 对象 ───

// parseObject 解析对象。键经由 nextItem 分派后字符串化，因此带引号和
// 裸 token 的键都被接受; 重复键是硬错误而不是静默覆盖。
func (p *Parser) parseObject() (*core.Value, error) {
	c, err := p.cur.NextNonBlank()
	if err != nil {
		return nil, err
	}
	if c != '{' {
		if err := p.cur.PushBack(); err != nil {
			return nil, err
		}
		return nil, p.cur.SyntaxError(core.ErrMalformedObject,
			fmt.Sprintf("Invalid json object: Expected `{`, found `%c`", c))
	}

	obj := core.NewObject()
	for {
		c, err := p.cur.NextNonBlank()
		if err != nil {
			return nil, err
		}
		if c == '}' {
			return obj, nil
		}
		if err := p.cur.PushBack(); err != nil {
			return nil, err
		}
		keyItem, err := p.nextItem()
		if err != nil {
			return nil, err
		}
		key, err := p.stringifyKey(keyItem)
		if err != nil {
			return nil, err
		}

		// 键后必须是 ':'
		c, err = p.cur.NextNonBlank()
		if err != nil {
			return nil, err
		}
		if c != ':' {
			return nil, p.cur.SyntaxError(core.ErrMalformedObject,
				fmt.Sprintf("Expected `:` after key, found `%c`", c))
		}
		val, err := p.nextItem()
		if err != nil {
			return nil, err
		}
		if !obj.SetNew(key, val) {
			return nil, p.cur.SyntaxError(core.ErrDuplicateKey,
				fmt.Sprintf("Expected unique key, found duplicate key \"%s\"", key))
		}

		// 成员之间用 ','; 尾随逗号后紧跟 '}' 时直接收尾
		c, err = p.cur.NextNonBlank()
		if err != nil {
			return nil, err
		}
		switch c {
		case ',':
			c, err = p.cur.NextNonBlank()
			if err != nil {
				return nil, err
			}
			if c == '}' {
				return obj, nil
			}
			if err := p.cur.PushBack(); err != nil {
				return nil, err
			}
		case '}':
			return obj, nil
		default:
			return nil, p.cur.SyntaxError(core.ErrMalformedObject,
				fmt.Sprintf("Expected `,` or `}`, found `%c`", c))
		}
	}
}

// stringifyKey 把标量键归一成字符串; 容器不能做键。
func (p *Parser) stringifyKey(v *core.Value) (string, error) {
	switch v.Kind() {
	case core.KindString:
		return v.Str(), nil
	case core.KindNumber:
		return v.NumberText(), nil
	case core.KindBool:
		if v.Bool() {
			return "true", nil
		}
		return "false", nil
	case core.KindNull:
		return "null", nil
	default:
		return "", p.cur.SyntaxError(core.ErrMalformedObject,
			fmt.Sprintf("Invalid key: expected scalar, found %s", v.Kind()))
	}
}

// ─── 数组 ───

// parseArray 解析数组。需要值的位置上出现裸 ',' 是硬错误;
// 尾随逗号的处理与对象一致。
func (p *Parser) parseArray() (*core.Value, error) {
	c, err := p.cur.NextNonBlank()
	if err != nil {
		return nil, err
	}
	if c != '[' {
		if err := p.cur.PushBack(); err != nil {
			return nil, err
		}
		return nil, p.cur.SyntaxError(core.ErrMalformedArray,
			fmt.Sprintf("Invalid json array input: expected `[`, found `%c`", c))
	}

	arr := core.NewArray()
	c, err = p.cur.NextNonBlank()
	if err != nil {
		return nil, err
	}
	if c == ']' {
		return arr, nil
	}
	if err := p.cur.PushBack(); err != nil {
		return nil, err
	}

	for {
		c, err := p.cur.NextNonBlank()
		if err != nil {
			return nil, err
		}
		if c == ',' {
			return nil, p.cur.SyntaxError(core.ErrMalformedArray,
				"Invalid json array: expected item, found `,`")
		}
		if err := p.cur.PushBack(); err != nil {
			return nil, err
		}
		elem, err := p.nextItem()
		if err != nil {
			return nil, err
		}
		arr.Append(elem)

		c, err = p.cur.NextNonBlank()
		if err != nil {
			return nil, err
		}
		switch c {
		case ',':
			c, err = p.cur.NextNonBlank()
			if err != nil {
				return nil, err
			}
			if c == ']' {
				return arr, nil
			}
			if err := p.cur.PushBack(); err != nil {
				return nil, err
			}
		case ']':
			return arr, nil
		default:
			return nil, p.cur.SyntaxError(core.ErrMalformedArray,
				"Expected a ',' or ']'")
		}
	}
}
