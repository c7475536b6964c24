// Package servicetest 提供 Service 层测试的公共脚手架
// 含内存数据库 Repository、同步缓存桩和事件发布桩
package servicetest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	dao "cabal_battles_server/internal/dao/mysql"
	"cabal_battles_server/internal/dao/mysql/repository"
	"cabal_battles_server/internal/infrastructure/mq"
	"cabal_battles_server/internal/model"
)

// NewRepos 创建基于内存 SQLite 的 Repository 聚合
// 每个测试独享一个库，测试结束随连接释放
func NewRepos(t *testing.T) *repository.Repositories {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// 内存库每个连接是独立库，必须限制为单连接
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := dao.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return repository.NewRepositories(db)
}

// StubCache 同步执行的内存缓存桩
// SubmitTask 直接执行动作，测试无需等待异步回写
type StubCache struct {
	mu   sync.Mutex
	data map[string]string
	sets map[string]map[string]struct{}
}

// NewStubCache 创建缓存桩
func NewStubCache() *StubCache {
	return &StubCache{
		data: make(map[string]string),
		sets: make(map[string]map[string]struct{}),
	}
}

func (s *StubCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *StubCache) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key], nil
}

func (s *StubCache) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *StubCache) DeleteByPattern(_ context.Context, pattern string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range s.data {
		if strings.HasPrefix(key, prefix) {
			delete(s.data, key)
		}
	}
	return nil
}

func (s *StubCache) AddToSet(_ context.Context, key string, members ...interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.sets[key]
	if !ok {
		set = make(map[string]struct{})
		s.sets[key] = set
	}
	for _, m := range members {
		set[fmt.Sprint(m)] = struct{}{}
	}
	return nil
}

func (s *StubCache) GetSetMembers(_ context.Context, key string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	members := make([]string, 0, len(s.sets[key]))
	for m := range s.sets[key] {
		members = append(members, m)
	}
	return members, nil
}

func (s *StubCache) RemoveFromSet(_ context.Context, key string, members ...interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.sets[key]
	if !ok {
		return nil
	}
	for _, m := range members {
		delete(set, fmt.Sprint(m))
	}
	return nil
}

func (s *StubCache) SubmitTask(action func()) {
	action()
}

// StubPublisher 记录所有已发布事件的发布桩
type StubPublisher struct {
	mu     sync.Mutex
	Events []*mq.Event
}

// NewStubPublisher 创建发布桩
func NewStubPublisher() *StubPublisher {
	return &StubPublisher{}
}

func (p *StubPublisher) Publish(_ context.Context, event *mq.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
}

func (p *StubPublisher) Close() {}

// CountType 统计指定类型事件的发布次数
func (p *StubPublisher) CountType(eventType string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	count := 0
	for _, e := range p.Events {
		if e.Type == eventType {
			count++
		}
	}
	return count
}

// SeedStats 写入角色属性
func SeedStats(t *testing.T, repos *repository.Repositories, chadUuid string, power, aggression, resistance, style int) {
	t.Helper()
	err := repos.Stats.Upsert(&model.CharacterStats{
		ChadUuid:   chadUuid,
		Power:      power,
		Aggression: aggression,
		Resistance: resistance,
		Style:      style,
	})
	if err != nil {
		t.Fatalf("seed stats for %s: %v", chadUuid, err)
	}
}
