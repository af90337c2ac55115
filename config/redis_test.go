package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectRedis_SkippedInTestEnv(t *testing.T) {
	original := LoadConfig()
	defer SetConfigForTest(original)
	defer ResetRedisClientForTest()

	SetConfigForTest(&Config{AppEnv: "test"})
	ResetRedisClientForTest()

	rdb, err := ConnectRedis()
	assert.NoError(t, err)
	assert.Nil(t, rdb)
	assert.Nil(t, GetRedisClient())
}

func TestConnectRedis_UnreachableServer(t *testing.T) {
	original := LoadConfig()
	defer SetConfigForTest(original)
	defer ResetRedisClientForTest()

	SetConfigForTest(&Config{AppEnv: "development", RedisAddr: "127.0.0.1:1"})
	ResetRedisClientForTest()

	rdb, err := ConnectRedis()
	assert.Error(t, err)
	assert.Nil(t, rdb)
}

func TestConnectRedis_ConcurrentCalls(t *testing.T) {
	original := LoadConfig()
	defer SetConfigForTest(original)
	defer ResetRedisClientForTest()

	SetConfigForTest(&Config{AppEnv: "test"})
	ResetRedisClientForTest()

	type callResult struct {
		rdb interface{}
		err error
	}
	done := make(chan callResult, 5)
	for i := 0; i < 5; i++ {
		go func() {
			rdb, err := ConnectRedis()
			done <- callResult{rdb: rdb, err: err}
		}()
	}

	for i := 0; i < 5; i++ {
		res := <-done
		assert.NoError(t, res.err)
		assert.Nil(t, res.rdb)
	}
}

func TestRedisTestHelpers_SetAndReset(t *testing.T) {
	original := GetRedisClient()
	defer SetRedisClientForTest(original)

	SetRedisClientForTest(nil)
	assert.Nil(t, GetRedisClient())

	ResetRedisClientForTest()
	assert.Nil(t, GetRedisClient())
	assert.NoError(t, CloseRedis())
}

func TestConnectMongo_NotConfigured(t *testing.T) {
	client, db, err := ConnectMongo(context.Background(), &Config{})
	assert.NoError(t, err)
	assert.Nil(t, client)
	assert.Nil(t, db)
}
