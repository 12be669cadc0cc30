package core

import (
	"fmt"
	"math"
	"reflect"
	"sort"
)

// MaxConvertDepth From 转换的最大递归深度
//
// 写路径假定值树无环且有限; From 是外部数据进入写路径的唯一边界，
// 深度上限把自引用的 map/slice 变成干净的错误而不是无限递归。
const MaxConvertDepth = 1000

// From 把调用方提供的任意聚合在边界处一次性归类到封闭的 Value 联合。
//
// 归类规则:
//   - nil → null
//   - *Value → 原样
//   - bool / string → 对应类别
//   - 有符号整数 → NumInt（放得下 32 位时）或 NumLong
//   - 无符号整数 → NumLong; 超出 int64 范围时提升为 NumDouble
//   - 浮点数 → NumDouble
//   - map → 对象（键经 fmt 字符串化; Go map 无序，按键排序保证确定性）
//   - slice / array → 数组
//
// 其余类型一律 ErrUnsupportedType，错误消息点名实际运行时类型。
// 递归写入器只在封闭联合上分派，不做开放式运行时类型检查。
func From(x any) (*Value, error) {
	return fromDepth(x, 0)
}

func fromDepth(x any, depth int) (*Value, error) {
	if depth > MaxConvertDepth {
		return nil, &WriteError{
			Code: ErrUnsupportedType,
			Msg:  fmt.Sprintf("Max conversion depth %d exceeded (cyclic structure?)", MaxConvertDepth),
		}
	}
	if x == nil {
		return valueNull, nil
	}

	// 快速路径: 常见具体类型直接匹配，避免 reflect 开销
	switch val := x.(type) {
	case *Value:
		if val == nil {
			return valueNull, nil
		}
		return val, nil
	case bool:
		return Bool(val), nil
	case string:
		return Str(val), nil
	case int:
		return fromInt64(int64(val)), nil
	case int32:
		return Int(val), nil
	case int64:
		return fromInt64(val), nil
	case float64:
		return Double(val), nil
	case float32:
		return Double(float64(val)), nil
	case map[string]any:
		return fromStringMap(val, depth)
	case []any:
		arr := NewArray()
		for _, elem := range val {
			ev, err := fromDepth(elem, depth+1)
			if err != nil {
				return nil, err
			}
			arr.Append(ev)
		}
		return arr, nil
	}

	// 慢速路径: reflect 归类其余的整数/浮点/map/slice 族
	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fromInt64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return Double(float64(u)), nil
		}
		return fromInt64(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return Double(rv.Float()), nil
	case reflect.Map:
		return fromMap(rv, depth)
	case reflect.Slice, reflect.Array:
		arr := NewArray()
		n := rv.Len()
		for i := 0; i < n; i++ {
			ev, err := fromDepth(rv.Index(i).Interface(), depth+1)
			if err != nil {
				return nil, err
			}
			arr.Append(ev)
		}
		return arr, nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return valueNull, nil
		}
		return fromDepth(rv.Elem().Interface(), depth+1)
	}

	return nil, &WriteError{
		Code: ErrUnsupportedType,
		Msg:  fmt.Sprintf("Invalid value: expected nil, map, slice, number, bool or string, found `%v` (%T)", x, x),
	}
}

func fromInt64(n int64) *Value {
	if n >= math.MinInt32 && n <= math.MaxInt32 {
		return Int(int32(n))
	}
	return Long(n)
}

// fromStringMap map[string]any 快速路径（跳过 reflect）
func fromStringMap(m map[string]any, depth int) (*Value, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	obj := NewObject()
	for _, k := range keys {
		ev, err := fromDepth(m[k], depth+1)
		if err != nil {
			return nil, err
		}
		obj.Set(k, ev)
	}
	return obj, nil
}

func fromMap(rv reflect.Value, depth int) (*Value, error) {
	type entry struct {
		key string
		val reflect.Value
	}
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		entries = append(entries, entry{key: fmt.Sprint(iter.Key().Interface()), val: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	obj := NewObject()
	for _, e := range entries {
		ev, err := fromDepth(e.val.Interface(), depth+1)
		if err != nil {
			return nil, err
		}
		obj.Set(e.key, ev)
	}
	return obj, nil
}
