// Package batch 提供多文档的并发解析与序列化便捷层。
//
// 解析器会话是线程封闭的，因此每个文档各建一个独立会话;
// 序列化器无跨调用状态，值树不可变，天然允许并发——batch 只是把
// 这两条并发契约落到一个固定大小的 goroutine 池上。
//
// 错误策略与单文档一致: 任一文档失败即整批失败，结果整体丢弃，
// 错误携带失败文档的下标; 不做内部重试。
package batch

import (
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/uniyakcom/yakson/core"
	"github.com/uniyakcom/yakson/parse"
	"github.com/uniyakcom/yakson/write"
)

// ParseAll 并发解析多个 JSON 文档，结果与输入按下标对齐。
// 并发度为 GOMAXPROCS; 任一文档失败返回首个错误（按提交顺序不保证
// 是下标最小的那个，但一定携带其文档下标）。
func ParseAll(docs []string) ([]*core.Value, error) {
	results := make([]*core.Value, len(docs))
	err := runAll(len(docs), func(i int) error {
		v, err := parse.NewString(docs[i]).ParseValue()
		if err != nil {
			return err
		}
		results[i] = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// WriteAll 并发序列化多棵值树，输出与输入按下标对齐。
// 值树在各任务间只读共享，互不影响。
func WriteAll(values []*core.Value, indentFactor int) ([]string, error) {
	results := make([]string, len(values))
	err := runAll(len(values), func(i int) error {
		var sb strings.Builder
		if err := write.Value(&sb, values[i], indentFactor, 0); err != nil {
			return err
		}
		results[i] = sb.String()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// runAll 在 ants 池上跑 n 个任务，保留首个错误。
// Release 等待所有已提交任务执行完毕后才返回。
func runAll(n int, task func(i int) error) error {
	if n == 0 {
		return nil
	}
	pool, err := ants.NewPool(runtime.GOMAXPROCS(0))
	if err != nil {
		return err
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	record := func(i int, err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = fmt.Errorf("batch: document %d: %w", i, err)
		}
		mu.Unlock()
	}

	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if err := task(i); err != nil {
				record(i, err)
			}
		})
		if submitErr != nil {
			// 池拒绝任务（已释放等）: 当前任务就地执行，保持结果完整
			if err := task(i); err != nil {
				record(i, err)
			}
			wg.Done()
		}
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	return firstErr
}
