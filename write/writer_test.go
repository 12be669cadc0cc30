package write

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/uniyakcom/yakson/core"
)

func render(t *testing.T, v *core.Value, indentFactor int) string {
	t.Helper()
	var sb strings.Builder
	if err := Value(&sb, v, indentFactor, 0); err != nil {
		t.Fatalf("Value() error: %v", err)
	}
	return sb.String()
}

// TestWriteScalars 标量的两种模式输出一致
func TestWriteScalars(t *testing.T) {
	cases := []struct {
		v    *core.Value
		want string
	}{
		{core.Null(), "null"},
		{nil, "null"},
		{core.Bool(true), "true"},
		{core.Bool(false), "false"},
		{core.Int(42), "42"},
		{core.Long(-99999999999), "-99999999999"},
		{core.Double(1.5), "1.5"},
		{core.Str("hi"), `"hi"`},
	}
	for _, tc := range cases {
		if got := render(t, tc.v, 0); got != tc.want {
			t.Errorf("compact: got %q, want %q", got, tc.want)
		}
		if got := render(t, tc.v, 2); got != tc.want {
			t.Errorf("pretty: got %q, want %q", got, tc.want)
		}
	}
}

// TestWriteIntegralDouble 整值浮点补 .0，重新解析不会掉回整数
func TestWriteIntegralDouble(t *testing.T) {
	if got := render(t, core.Double(3), 0); got != "3.0" {
		t.Errorf("Double(3): got %q, want \"3.0\"", got)
	}
	if got := render(t, core.Double(-4), 0); got != "-4.0" {
		t.Errorf("Double(-4): got %q, want \"-4.0\"", got)
	}
	// 已含指数的文本不再补
	if got := render(t, core.Double(1e21), 0); got != "1e+21" {
		t.Errorf("Double(1e21): got %q", got)
	}
}

// TestWriteNonFinite Inf/NaN 拒绝为 ErrNonFiniteNumber
func TestWriteNonFinite(t *testing.T) {
	for _, f := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		var sb strings.Builder
		err := Value(&sb, core.Double(f), 0, 0)
		if core.CodeOf(err) != core.ErrNonFiniteNumber {
			t.Errorf("Double(%v): code = %v, want ErrNonFiniteNumber", f, core.CodeOf(err))
		}
	}
}

// TestWriteStringEscapes 转义表: 短形式、\u 范围、原样通过
func TestWriteStringEscapes(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain", `"plain"`},
		{"say \"hi\"", `"say \"hi\""`},
		{"back\\slash", `"back\\slash"`},
		{"\b\t\n\f\r", `"\b\t\n\f\r"`},
		{"\x01", `"\u0001"`},
		{"\u0085", `"\u0085"`}, // C1 控制区
		{"\u2028", `"\u2028"`}, // U+2000–U+20FF 区
		{"\u20ff", `"\u20ff"`}, // 区间上界（含）
		{"\u2100", "\"\u2100\""}, // 区间外原样通过
		{"\u00a0", "\"\u00a0\""}, // 0xA0 不在 C1 区内
		{"中文", `"中文"`},
	}
	for _, tc := range cases {
		var sb strings.Builder
		if err := String(&sb, tc.in); err != nil {
			t.Fatalf("String(%q) error: %v", tc.in, err)
		}
		if sb.String() != tc.want {
			t.Errorf("String(%q) = %q, want %q", tc.in, sb.String(), tc.want)
		}
	}
}

// TestWriteSlashAfterAngle '/' 只在前一个字符是 '<' 时转义
func TestWriteSlashAfterAngle(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"</script>", `"<\/script>"`},
		{"a/b", `"a/b"`},
		{"/", `"/"`},
		{"<</>>", `"<<\/>>"`},
	}
	for _, tc := range cases {
		var sb strings.Builder
		String(&sb, tc.in)
		if sb.String() != tc.want {
			t.Errorf("String(%q) = %q, want %q", tc.in, sb.String(), tc.want)
		}
	}
}

// TestWriteArrayCompact 紧凑数组不含任何空白
func TestWriteArrayCompact(t *testing.T) {
	arr := core.NewArray().Append(core.Int(1)).Append(core.Str("x")).Append(core.Null())
	if got := render(t, arr, 0); got != `[1,"x",null]` {
		t.Errorf("got %q", got)
	}
	if got := render(t, core.NewArray(), 0); got != "[]" {
		t.Errorf("empty: got %q", got)
	}
}

// TestWriteArrayPretty 美化数组: 元素各占一行，空数组保留换行骨架
func TestWriteArrayPretty(t *testing.T) {
	arr := core.NewArray().Append(core.Int(1)).Append(core.Int(2))
	want := "[\n  1,\n  2\n]"
	if got := render(t, arr, 2); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	// 空数组同样走换行骨架
	if got := render(t, core.NewArray(), 2); got != "[\n]" {
		t.Errorf("empty pretty: got %q, want %q", got, "[\n]")
	}

	// 嵌套数组的缩进逐层加深
	nested := core.NewArray().Append(core.Int(1)).
		Append(core.NewArray().Append(core.Int(2)))
	want = "[\n  1,\n  [\n    2\n  ]\n]"
	if got := render(t, nested, 2); got != want {
		t.Errorf("nested: got %q, want %q", got, want)
	}
}

// TestWriteObjectCompact 紧凑对象与成员顺序
func TestWriteObjectCompact(t *testing.T) {
	obj := core.NewObject().Set("a", core.Int(1)).Set("b", core.Int(2))
	if got := render(t, obj, 0); got != `{"a":1,"b":2}` {
		t.Errorf("got %q", got)
	}
	if got := render(t, core.NewObject(), 0); got != "{}" {
		t.Errorf("empty: got %q", got)
	}
	if got := render(t, core.NewObject(), 2); got != "{}" {
		t.Errorf("empty pretty: got %q", got)
	}
}

// TestWriteObjectSingleEntryInline 单成员对象整行输出，不换行不缩进
func TestWriteObjectSingleEntryInline(t *testing.T) {
	obj := core.NewObject().Set("k", core.Int(1))
	if got := render(t, obj, 0); got != `{"k":1}` {
		t.Errorf("compact: got %q", got)
	}
	if got := render(t, obj, 2); got != `{"k": 1}` {
		t.Errorf("pretty: got %q", got)
	}

	// 嵌套的单成员对象同样内联
	outer := core.NewObject().Set("o", obj)
	if got := render(t, outer, 2); got != `{"o": {"k": 1}}` {
		t.Errorf("nested inline: got %q", got)
	}
}

// TestWriteObjectPretty 多成员对象逐行输出
func TestWriteObjectPretty(t *testing.T) {
	obj := core.NewObject().Set("a", core.Int(1)).Set("b", core.Int(2))
	want := "{\n  \"a\": 1,\n  \"b\": 2\n}"
	if got := render(t, obj, 2); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	// 多成员对象里嵌套数组
	obj = core.NewObject().Set("a", core.Int(1)).
		Set("xs", core.NewArray().Append(core.Int(2)))
	want = "{\n  \"a\": 1,\n  \"xs\": [\n    2\n  ]\n}"
	if got := render(t, obj, 2); got != want {
		t.Errorf("with array: got %q, want %q", got, want)
	}
}

// TestWriteAny 边界归类后写入
func TestWriteAny(t *testing.T) {
	var sb strings.Builder
	err := Any(&sb, map[string]any{"b": 2, "a": 1}, 0, 0)
	if err != nil {
		t.Fatalf("Any() error: %v", err)
	}
	// map 键排序保证确定性输出
	if got := sb.String(); got != `{"a":1,"b":2}` {
		t.Errorf("got %q", got)
	}

	sb.Reset()
	err = Any(&sb, struct{ X int }{1}, 0, 0)
	if core.CodeOf(err) != core.ErrUnsupportedType {
		t.Errorf("struct: code = %v, want ErrUnsupportedType", core.CodeOf(err))
	}
}

// failWriter 写入 n 字节后开始失败的 sink
type failWriter struct {
	budget int
	err    error
}

func (w *failWriter) Write(p []byte) (int, error) {
	if w.budget <= 0 {
		return 0, w.err
	}
	w.budget -= len(p)
	return len(p), nil
}

// TestWriteSinkErrorPropagation sink 错误原样传出，不包装成 WriteError
func TestWriteSinkErrorPropagation(t *testing.T) {
	sinkErr := errors.New("pipe closed")
	obj := core.NewObject().Set("a", core.Int(1)).Set("b", core.Int(2))
	w := &failWriter{budget: 3, err: sinkErr}
	err := Value(w, obj, 2, 0)
	if !errors.Is(err, sinkErr) {
		t.Fatalf("expected sink error, got %v", err)
	}
	var we *core.WriteError
	if errors.As(err, &we) {
		t.Error("sink error must not be wrapped as WriteError")
	}
}

// TestWriteDeepIndent 缩进宽度超过填充块时分块写出
func TestWriteDeepIndent(t *testing.T) {
	// 10 层、每层 8 空格，最深处缩进 80 超过 32 字节填充块
	v := core.Int(7)
	for i := 0; i < 10; i++ {
		v = core.NewArray().Append(v)
	}
	got := render(t, v, 8)
	if !strings.Contains(got, "\n"+strings.Repeat(" ", 80)+"7\n") {
		t.Error("deepest element not indented to 80 spaces")
	}
	if !strings.HasSuffix(got, "\n]") {
		t.Errorf("output does not close at zero indent: %q", got[len(got)-10:])
	}
}
