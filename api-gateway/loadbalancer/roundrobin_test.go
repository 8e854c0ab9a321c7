package loadbalancer

import (
	"sync"
	"testing"
)

func TestRoundRobinCycles(t *testing.T) {
	lb := NewRoundRobin([]string{"http://a:8085", "http://b:8085", "http://c:8085"})

	want := []string{
		"http://a:8085", "http://b:8085", "http://c:8085",
		"http://a:8085", "http://b:8085", "http://c:8085",
	}
	for i, w := range want {
		if got := lb.Next(); got != w {
			t.Fatalf("pick %d = %q, want %q", i, got, w)
		}
	}
}

func TestRoundRobinAddRemove(t *testing.T) {
	lb := NewRoundRobin([]string{"http://a:8085", "http://b:8085"})

	lb.AddServer("http://c:8085")
	if got := len(lb.GetServers()); got != 3 {
		t.Fatalf("server count = %d", got)
	}

	lb.RemoveServer("http://b:8085")
	servers := lb.GetServers()
	if len(servers) != 2 {
		t.Fatalf("server count after remove = %d", len(servers))
	}
	for _, s := range servers {
		if s == "http://b:8085" {
			t.Fatal("removed server still present")
		}
	}

	// index stays in range after removal
	for i := 0; i < 10; i++ {
		if lb.Next() == "" {
			t.Fatal("Next returned empty with servers available")
		}
	}
}

func TestRoundRobinConcurrentNext(t *testing.T) {
	lb := NewRoundRobin([]string{"http://a:8085", "http://b:8085", "http://c:8085"})

	const picks = 300
	counts := make(map[string]int)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < picks; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			server := lb.Next()
			mu.Lock()
			counts[server]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	// 300 picks over 3 servers land exactly 100 each
	for server, n := range counts {
		if n != picks/3 {
			t.Fatalf("server %s picked %d times, want %d", server, n, picks/3)
		}
	}
}
