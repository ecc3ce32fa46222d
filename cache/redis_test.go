package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
)

func newMockedCache(t *testing.T, ttlSeconds int, prefix string) (*RedisCache, redismock.ClientMock) {
	t.Helper()
	db, mock := redismock.NewClientMock()
	t.Cleanup(func() { db.Close() })
	return NewRedisCacheFromClient(db, ttlSeconds, prefix), mock
}

func TestRedisCache_HitAndMiss(t *testing.T) {
	c, mock := newMockedCache(t, 3600, "tm:")

	mock.ExpectGet("tm:Главная").SetVal("Bosh sahifa")
	mock.ExpectGet("tm:Контакты").RedisNil()

	if got, ok := c.Get("Главная"); !ok || got != "Bosh sahifa" {
		t.Errorf("Get hit = %q, %v; want %q, true", got, ok, "Bosh sahifa")
	}
	if got, ok := c.Get("Контакты"); ok || got != "" {
		t.Errorf("Get miss = %q, %v; want empty, false", got, ok)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRedisCache_ConnectionErrorIsMiss(t *testing.T) {
	c, mock := newMockedCache(t, 0, "tm:")

	mock.ExpectGet("tm:key").SetErr(errors.New("connection refused"))

	if _, ok := c.Get("key"); ok {
		t.Error("unreachable Redis should read as a miss, not a hit")
	}
}

func TestRedisCache_SetAppliesTTL(t *testing.T) {
	c, mock := newMockedCache(t, 3600, "tm:")

	mock.ExpectSet("tm:О нас", "Biz haqimizda", 3600*time.Second).SetVal("OK")

	if err := c.Set("О нас", "Biz haqimizda"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRedisCache_ZeroTTLMeansNoExpiry(t *testing.T) {
	c, mock := newMockedCache(t, 0, "tm:")

	mock.ExpectSet("tm:key", "value", 0).SetVal("OK")

	if err := c.Set("key", "value"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRedisCache_DefaultPrefix(t *testing.T) {
	c, mock := newMockedCache(t, 0, "")

	mock.ExpectGet(DefaultKeyPrefix + "key").RedisNil()

	c.Get("key")

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPairPrefix(t *testing.T) {
	if got := PairPrefix("RU", "uz"); got != "sitetrans:ru:uz:" {
		t.Fatalf("PairPrefix = %q, want %q", got, "sitetrans:ru:uz:")
	}

	c, mock := newMockedCache(t, 0, PairPrefix("ru", "uz"))

	mock.ExpectGet("sitetrans:ru:uz:Новости").SetVal("Yangiliklar")

	if got, ok := c.Get("Новости"); !ok || got != "Yangiliklar" {
		t.Errorf("Get = %q, %v; want %q, true", got, ok, "Yangiliklar")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRedisCache_Ping(t *testing.T) {
	c, mock := newMockedCache(t, 0, "")

	mock.ExpectPing().SetVal("PONG")

	if err := c.Ping(); err != nil {
		t.Errorf("Ping: %v", err)
	}
}
