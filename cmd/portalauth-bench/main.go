package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	portalauth "github.com/portalauth/portalauth"
	"github.com/portalauth/portalauth/session"
)

func main() {
	var (
		records     = flag.Int("records", 20000, "number of session records to seed")
		concurrency = flag.Int("concurrency", 256, "number of concurrent workers")
		ops         = flag.Int("ops", 100000, "operations per phase (load + evaluate)")
		redisAddr   = flag.String("redis-addr", "", "redis address; if empty, REDIS_ADDR env or miniredis is used")
		keyPrefix   = flag.String("key-prefix", "pa:bench", "session key prefix")
	)
	flag.Parse()

	if *records <= 0 || *concurrency <= 0 || *ops <= 0 {
		fmt.Fprintln(os.Stderr, "records, concurrency, and ops must be > 0")
		os.Exit(2)
	}

	ctx := context.Background()

	addr := *redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	var (
		cleanup func()
		client  redis.UniversalClient
	)
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start miniredis: %v\n", err)
			os.Exit(1)
		}
		addr = mr.Addr()
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		cleanup = func() {
			_ = client.Close()
			mr.Close()
		}
		fmt.Printf("using miniredis at %s\n", addr)
	} else {
		client = redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs: []string{addr},
		})
		cleanup = func() { _ = client.Close() }
		fmt.Printf("using redis at %s\n", addr)
	}
	defer cleanup()

	stores := make([]*session.RedisStore, *records)
	guards := make([]*portalauth.Client, *records)

	fmt.Printf("seeding %d session records...\n", *records)
	startSeed := time.Now()
	for i := 0; i < *records; i++ {
		key := *keyPrefix + ":" + strconv.Itoa(i)
		store := session.NewRedisStore(client, key)
		if _, err := store.EnsureSchema(ctx, session.CurrentSchemaVersion); err != nil {
			fmt.Fprintf(os.Stderr, "ensure schema failed: %v\n", err)
			os.Exit(1)
		}
		if err := store.Save(ctx, buildSession(i)); err != nil {
			fmt.Fprintf(os.Stderr, "save failed: %v\n", err)
			os.Exit(1)
		}
		stores[i] = store

		guard, err := portalauth.New().WithStore(store).Build()
		if err != nil {
			fmt.Fprintf(os.Stderr, "build client failed: %v\n", err)
			os.Exit(1)
		}
		guards[i] = guard
	}
	fmt.Printf("seeded in %s\n", time.Since(startSeed).Round(time.Millisecond))

	loadStats := runLoadPhase(ctx, stores, *ops, *concurrency)
	evaluateStats := runEvaluatePhase(ctx, guards, *ops, *concurrency)

	for _, g := range guards {
		g.Close()
	}

	fmt.Println("---- results ----")
	printStats("load", loadStats)
	printStats("evaluate", evaluateStats)
}

func runLoadPhase(ctx context.Context, stores []*session.RedisStore, ops, concurrency int) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*7919))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				idx := r.Intn(len(stores))
				t0 := time.Now()
				sess, err := stores[idx].Load(ctx)
				d := time.Since(t0)
				if err != nil || sess == nil {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

func runEvaluatePhase(ctx context.Context, guards []*portalauth.Client, ops, concurrency int) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(time.Now().UnixNano() + int64(worker)*6151))
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				idx := r.Intn(len(guards))

				// Half the evaluations target the granted company, half a
				// denied one, so both guard outcomes stay on the hot path.
				param := strconv.Itoa(companyFor(idx))
				expectAllow := true
				if i%2 == 1 {
					param = strconv.Itoa(companyFor(idx) + 1)
					expectAllow = false
				}

				t0 := time.Now()
				decision := guards[idx].Evaluate(ctx, portalauth.RouteRequirement{
					Class:        portalauth.RouteBusiness,
					CompanyParam: param,
				})
				d := time.Since(t0)

				if decision.Allowed() != expectAllow {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}

func companyFor(i int) int {
	return 1000 + i*2
}

func buildSession(i int) *session.Session {
	companyID := int64(companyFor(i))
	return &session.Session{
		Token: "tok-" + strconv.Itoa(i),
		User: session.Profile{
			ID:    "u" + strconv.Itoa(i),
			Name:  "Bench User",
			Email: "bench@example.com",
		},
		GlobalRoles: []string{"writer"},
		Companies: []session.Company{
			{ID: companyID, Name: "Bench Co", Roles: []string{"ADMIN_EMPRESA"}},
		},
		AdminCompanyID: companyID,
		SchemaVersion:  session.CurrentSchemaVersion,
	}
}
