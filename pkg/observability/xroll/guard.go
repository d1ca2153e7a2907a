package xroll

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// guardShardCount 必须为 2 的幂。
const guardShardCount = 64

// pathState 一个活动文件路径在本进程内的共享状态。
type pathState struct {
	mu sync.Mutex

	// truncated 记录 Append=false 时是否已执行过首次清空，受 mu 保护
	truncated bool
}

type guardShard struct {
	mu     sync.Mutex
	states map[string]*pathState
}

// guardRegistry 按解析后的绝对路径发放 pathState，同一路径始终得到同一实例。
//
// 条目不回收：进程内不同日志路径的数量很小，
// 而 truncated 标记需要在所有 Writer 之间持续有效。
type guardRegistry struct {
	shards [guardShardCount]guardShard
}

var guards = newGuardRegistry()

func newGuardRegistry() *guardRegistry {
	g := &guardRegistry{}
	for i := range g.shards {
		g.shards[i].states = make(map[string]*pathState)
	}
	return g
}

func (g *guardRegistry) shard(path string) *guardShard {
	return &g.shards[xxhash.Sum64String(path)&(guardShardCount-1)]
}

func (g *guardRegistry) get(path string) *pathState {
	s := g.shard(path)
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.states[path]
	if !ok {
		st = &pathState{}
		s.states[path] = st
	}
	return st
}

func (g *guardRegistry) len() int {
	n := 0
	for i := range g.shards {
		s := &g.shards[i]
		s.mu.Lock()
		n += len(s.states)
		s.mu.Unlock()
	}
	return n
}
