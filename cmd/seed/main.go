// seed 生成一个大 V 与 N 个粉丝，通过业务服务关注、发帖、点赞并打印延迟分位
package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/social-graph/config"
	"github.com/d60-Lab/social-graph/internal/graph"
	"github.com/d60-Lab/social-graph/internal/model"
	"github.com/d60-Lab/social-graph/internal/repository"
	"github.com/d60-Lab/social-graph/internal/service"
	"github.com/d60-Lab/social-graph/pkg/database"
	"github.com/d60-Lab/social-graph/pkg/logger"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func envInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func main() {
	cfg := must(config.Load())
	_ = logger.Init(cfg.Log.Level, cfg.Log.Format)
	db := must(database.InitDB(cfg))
	defer database.Close(db)

	repos := repository.NewRepositories(db)
	relSvc := service.NewRelationshipService(repos, nil)
	postSvc := service.NewPostService(repos)
	ctx := context.Background()

	N := envInt("N", 1000)
	CONC := envInt("CONC", 4)
	PAGE := envInt("PAGE", 50)

	// 所有种子用户共用一个密码 "seed-password"，便于登录调试
	hash := must(bcrypt.GenerateFromPassword([]byte("seed-password"), service.BcryptCost))
	run := uuid.NewString()[:8]
	celeb := model.User{ID: uuid.NewString(), Username: "celeb-" + run, PhoneNumber: seedPhone(run, 0), Password: string(hash)}
	if err := db.Create(&celeb).Error; err != nil {
		panic(err)
	}

	users := make([]model.User, N)
	for i := range users {
		users[i] = model.User{
			ID:          uuid.NewString(),
			Username:    fmt.Sprintf("fan-%s-%d", run, i),
			PhoneNumber: seedPhone(run, i+1),
			Password:    string(hash),
		}
	}
	if err := db.CreateInBatches(&users, 500).Error; err != nil {
		panic(err)
	}

	post := must(postSvc.Create(ctx, celeb.ID, graph.PostInput{Text: "hello from " + celeb.Username}))

	followRecs := fanOut(N, CONC, func(i int) error {
		_, err := relSvc.Follow(ctx, users[i].ID, celeb.ID)
		return err
	})
	likeRecs := fanOut(N, CONC, func(i int) error {
		_, err := postSvc.ToggleLike(ctx, users[i].ID, post.ID)
		return err
	})

	q0 := time.Now()
	followers := must(relSvc.ListFollowers(ctx, celeb.ID, 1, PAGE))
	fansDur := time.Since(q0)

	q1 := time.Now()
	feed := must(postSvc.List(ctx, 1, PAGE))
	feedDur := time.Since(q1)

	fmt.Printf("N=%d, CONC=%d, PAGE=%d\n", N, CONC, PAGE)
	report("follow", followRecs)
	report("like", likeRecs)
	fmt.Printf("Query followers(%d of %d) latency: %v\n", len(followers.List), followers.Total, fansDur)
	fmt.Printf("Query feed(%d of %d) latency: %v\n", len(feed.Items), feed.TotalPosts, feedDur)
}

// seedPhone 按批次前缀生成不冲突的 +2519XXXXXXXX 号码
func seedPhone(run string, i int) string {
	prefix, _ := strconv.ParseUint(run[:2], 16, 8)
	return fmt.Sprintf("+2519%02d%06d", prefix%100, i%1000000)
}

type result struct {
	latencies []time.Duration
	failed    int
	total     time.Duration
}

// fanOut 用 conc 个 worker 执行 n 次 op
func fanOut(n, conc int, op func(i int) error) result {
	if conc > n {
		conc = n
	}
	feed := make(chan int, n)
	for i := 0; i < n; i++ {
		feed <- i
	}
	close(feed)

	var (
		mu  sync.Mutex
		res = result{latencies: make([]time.Duration, 0, n)}
		wg  sync.WaitGroup
	)
	t0 := time.Now()
	for w := 0; w < conc; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range feed {
				st := time.Now()
				err := op(i)
				d := time.Since(st)
				mu.Lock()
				if err != nil {
					res.failed++
				} else {
					res.latencies = append(res.latencies, d)
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	res.total = time.Since(t0)
	return res
}

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	k = max(0, min(k, len(xs)-1))
	return xs[k]
}

func report(name string, r result) {
	ops := len(r.latencies) + r.failed
	if ops == 0 {
		return
	}
	fmt.Printf("%s: total %v, per op %v, p50 %v, p95 %v, p99 %v, failed %d\n",
		name, r.total, r.total/time.Duration(ops), pct(r.latencies, 0.50), pct(r.latencies, 0.95), pct(r.latencies, 0.99), r.failed)
}
