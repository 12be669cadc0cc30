package yakson

import (
	"strings"
	"testing"
)

// TestEdgeCaseDeepNesting 深层嵌套数组完整往返
func TestEdgeCaseDeepNesting(t *testing.T) {
	depth := 200
	if testing.Short() {
		depth = 30
	}
	src := strings.Repeat("[", depth) + "1" + strings.Repeat("]", depth)

	v, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse failed at depth %d: %v", depth, err)
	}
	for i := 0; i < depth; i++ {
		if !v.IsArray() || v.Len() != 1 {
			t.Fatalf("level %d: not a single-element array", i)
		}
		v = v.At(0)
	}
	if v.Int64() != 1 {
		t.Errorf("innermost = %d, want 1", v.Int64())
	}
}

// TestEdgeCaseWhitespaceSoup 结构符之间任意 <= 空格的填充
func TestEdgeCaseWhitespaceSoup(t *testing.T) {
	src := " \t\r\n {  \"a\" \t: \n [ 1 , \r\n 2 , ] , b : true \n } \t"
	v, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if v.GetInt("a", "1") != 2 {
		t.Errorf("a[1] = %d", v.GetInt("a", "1"))
	}
	if !v.GetBool("b") {
		t.Error("b must be true")
	}
}

// TestEdgeCaseUnicodeRoundTrip 基本平面外字符原样通过序列化
func TestEdgeCaseUnicodeRoundTrip(t *testing.T) {
	orig := Str("汉字 и ελληνικά 🚀")
	out, err := Write(orig, 0)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	v, err := Parse(out)
	if err != nil {
		t.Fatalf("reparse failed: %v", err)
	}
	if v.Str() != orig.Str() {
		t.Errorf("round trip changed string: %q → %q", orig.Str(), v.Str())
	}
}

// TestEdgeCaseHTMLGuardRoundTrip '<' 后的 '/' 转义在往返中无损
func TestEdgeCaseHTMLGuardRoundTrip(t *testing.T) {
	out, err := Write(Str("</script>"), 0)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if out != `"<\/script>"` {
		t.Errorf("Write = %q", out)
	}
	v, err := Parse(out)
	if err != nil {
		t.Fatalf("reparse failed: %v", err)
	}
	if v.Str() != "</script>" {
		t.Errorf("round trip = %q", v.Str())
	}
}

// TestEdgeCaseSingleEntryInline 单成员内联特例贯穿门面
func TestEdgeCaseSingleEntryInline(t *testing.T) {
	v, err := Parse(`{"outer": {"inner": [1]}}`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	out, err := Write(v, 2)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	want := "{\"outer\": {\"inner\": [\n  1\n]}}"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

// TestEdgeCaseNumericBoundaries 边界数字文本往返不变
func TestEdgeCaseNumericBoundaries(t *testing.T) {
	for _, text := range []string{
		"2147483647", "-2147483648",
		"2147483648", "9223372036854775807",
		"0", "-1",
	} {
		v, err := Parse(text)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", text, err)
		}
		out, err := Write(v, 0)
		if err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		if out != text {
			t.Errorf("%q: round trip changed text to %q", text, out)
		}
	}
}

// TestEdgeCaseTrailingContent Parse 只消费一个值，尾随内容不报错
func TestEdgeCaseTrailingContent(t *testing.T) {
	v, err := Parse("true garbage")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !v.Bool() {
		t.Error("expected true")
	}

	v, err = Parse(`{"a": 1} {"b": 2}`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if v.Len() != 1 || v.GetInt("a") != 1 {
		t.Error("only the first document must be consumed")
	}
}

// TestEdgeCaseNilWrite nil 树写作 null
func TestEdgeCaseNilWrite(t *testing.T) {
	out, err := Write(nil, 2)
	if err != nil {
		t.Fatalf("Write(nil) failed: %v", err)
	}
	if out != "null" {
		t.Errorf("got %q", out)
	}
}

// TestEdgeCaseErrorDeepInside 深处的重复键带着出错位置冒泡到顶
func TestEdgeCaseErrorDeepInside(t *testing.T) {
	src := `{"a": {"b": [1, {"x": 1, "x": 2}]}}`
	_, err := Parse(src)
	if err == nil {
		t.Fatal("expected duplicate key error")
	}
	se, ok := err.(*SyntaxError)
	if !ok {
		t.Fatalf("expected *SyntaxError, got %T", err)
	}
	if se.Code != ErrDuplicateKey {
		t.Errorf("code = %v, want ErrDuplicateKey", se.Code)
	}
	if se.Index == 0 {
		t.Error("error must carry a non-zero position")
	}
}
