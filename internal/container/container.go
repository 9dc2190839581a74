package container

import (
	"cloud.google.com/go/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/karanshah229/taskapp/config"
	"github.com/karanshah229/taskapp/internal/infrastructure/memory"
	"github.com/karanshah229/taskapp/internal/infrastructure/search"
	"github.com/karanshah229/taskapp/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router auto-wires modules from these singletons; unset optional
// components (redis, gcs, rabbit, search) switch their features off.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	memStore    *memory.Store
	redisClient *redis.Client
	gcsClient   *storage.Client

	jwtManager *helpers.JWTManager

	rabbitPub *helpers.RabbitPublisher
	taskIndex *search.TaskIndex
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetPGPool(p *pgxpool.Pool)    { pgPool = p }
func GetPGPool() *pgxpool.Pool     { return pgPool }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetGCS(s *storage.Client)     { gcsClient = s }
func GetGCS() *storage.Client      { return gcsClient }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager  { return jwtManager }

// GetMemoryStore lazily creates the store used when STORAGE_DRIVER=memory.
func GetMemoryStore() *memory.Store {
	if memStore == nil {
		memStore = memory.NewStore()
	}
	return memStore
}
func SetMemoryStore(s *memory.Store) { memStore = s }

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetTaskIndex(x *search.TaskIndex)        { taskIndex = x }
func GetTaskIndex() *search.TaskIndex         { return taskIndex }

// Reset clears every singleton.
func Reset() {
	cfg, logger, pgPool, memStore, redisClient, gcsClient = nil, nil, nil, nil, nil, nil
	jwtManager, rabbitPub, taskIndex = nil, nil, nil
}
