package redis

import (
	"strings"
	"testing"
)

func TestBuildMemorySearchKeyIsUnique(t *testing.T) {
	// 含冒号的 userID 不能和别的用户拼出同一个键
	k1 := BuildMemorySearchKey("a:b", "q")
	k2 := BuildMemorySearchKey("a", "b:q")
	if k1 == k2 {
		t.Fatalf("keys collide across users: %q", k1)
	}

	// 同一组合必须稳定，否则缓存永远不命中
	if BuildMemorySearchKey("user-1", "query") != BuildMemorySearchKey("user-1", "query") {
		t.Fatal("key is not deterministic")
	}

	// 不同 query 生成不同键
	if BuildMemorySearchKey("user-1", "q1") == BuildMemorySearchKey("user-1", "q2") {
		t.Fatal("different queries mapped to the same key")
	}
}

func TestMemoryKeyPrefixScopedToUser(t *testing.T) {
	// 检索键必须落在该用户的失效前缀下
	key := BuildMemorySearchKey("user-1", "query")
	if !strings.HasPrefix(key, memoryKeyPrefix("user-1")) {
		t.Fatalf("key %q not under invalidation prefix %q", key, memoryKeyPrefix("user-1"))
	}

	// 前缀相近的用户不能互相波及
	other := BuildMemorySearchKey("user-12", "query")
	if strings.HasPrefix(other, memoryKeyPrefix("user-1")) {
		t.Fatalf("user-12 key %q matches user-1 prefix", other)
	}

	// 带冒号的用户也只匹配自己的前缀
	colon := BuildMemorySearchKey("a:b", "q")
	if strings.HasPrefix(colon, memoryKeyPrefix("a")) {
		t.Fatalf("key %q of user a:b matches prefix of user a", colon)
	}
}
