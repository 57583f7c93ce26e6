package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type CacheRepositoryTestSuite struct {
	suite.Suite
	cache *CacheRepository
	ctx   context.Context
}

func (s *CacheRepositoryTestSuite) SetupTest() {
	s.cache = NewCacheRepository()
	s.ctx = context.Background()
}

func (s *CacheRepositoryTestSuite) TearDownTest() {
	s.cache.Close()
}

func (s *CacheRepositoryTestSuite) TestSetAndGet() {
	s.Require().NoError(s.cache.Set(s.ctx, "shoppinglist:week:2026-03-02", []byte(`{"id":"x"}`), time.Minute))

	data, err := s.cache.Get(s.ctx, "shoppinglist:week:2026-03-02")
	s.Require().NoError(err)
	s.Equal([]byte(`{"id":"x"}`), data)
}

func (s *CacheRepositoryTestSuite) TestMissReturnsNilWithoutError() {
	data, err := s.cache.Get(s.ctx, "nope")
	s.Require().NoError(err)
	s.Nil(data)
}

func (s *CacheRepositoryTestSuite) TestExpiredEntryIsGone() {
	s.Require().NoError(s.cache.Set(s.ctx, "k", []byte("v"), time.Nanosecond))
	time.Sleep(5 * time.Millisecond)

	data, err := s.cache.Get(s.ctx, "k")
	s.Require().NoError(err)
	s.Nil(data)

	exists, err := s.cache.Exists(s.ctx, "k")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *CacheRepositoryTestSuite) TestDeletePattern() {
	s.Require().NoError(s.cache.Set(s.ctx, "shoppinglist:week:2026-03-02", []byte("a"), 0))
	s.Require().NoError(s.cache.Set(s.ctx, "shoppinglist:week:2026-03-09", []byte("b"), 0))
	s.Require().NoError(s.cache.Set(s.ctx, "inventory:settings:all", []byte("c"), 0))

	s.Require().NoError(s.cache.DeletePattern(s.ctx, "shoppinglist:week:*"))

	for _, key := range []string{"shoppinglist:week:2026-03-02", "shoppinglist:week:2026-03-09"} {
		data, err := s.cache.Get(s.ctx, key)
		s.Require().NoError(err)
		s.Nil(data)
	}

	data, err := s.cache.Get(s.ctx, "inventory:settings:all")
	s.Require().NoError(err)
	s.Equal([]byte("c"), data)
}

func (s *CacheRepositoryTestSuite) TestGetReturnsCopy() {
	s.Require().NoError(s.cache.Set(s.ctx, "k", []byte("abc"), 0))

	data, err := s.cache.Get(s.ctx, "k")
	s.Require().NoError(err)
	data[0] = 'z'

	again, err := s.cache.Get(s.ctx, "k")
	s.Require().NoError(err)
	s.Equal([]byte("abc"), again)
}

func TestCacheRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(CacheRepositoryTestSuite))
}
