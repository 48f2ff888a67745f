package redis

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/kailas-cloud/recdex/internal/db"
)

func members(ids ...string) rueidis.RedisResult {
	msgs := make([]rueidis.RedisMessage, len(ids))
	for i, id := range ids {
		msgs[i] = mock.RedisBlobString(id)
	}
	return mock.Result(mock.RedisArray(msgs...))
}

// --- client.go tests ---

func TestPing_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.RedisString("PONG")))

	s := NewStoreForTest(c, "")
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPing_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c, "")
	err := s.Ping(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !isDBError(err) {
		t.Errorf("expected db.Error, got %T", err)
	}
}

func TestWaitForReady_RetriesUntilPong(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	gomock.InOrder(
		c.EXPECT().
			Do(gomock.Any(), mock.Match("PING")).
			Return(mock.ErrorResult(errors.New("connection refused"))),
		c.EXPECT().
			Do(gomock.Any(), mock.Match("PING")).
			Return(mock.Result(mock.RedisString("PONG"))),
	)

	s := NewStoreForTest(c, "")
	if err := s.WaitForReady(context.Background(), time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWaitForReady_Timeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(errors.New("connection refused"))).
		AnyTimes()

	s := NewStoreForTest(c, "")
	err := s.WaitForReady(context.Background(), 150*time.Millisecond)
	if !errors.Is(err, db.ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
}

// --- allowlist.go tests ---

func TestReadableRecords_OwnAndPublic(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(),
			mock.Match("SMEMBERS", "rx:user:7:records"),
			mock.Match("SMEMBERS", "rx:public"),
		).
		Return([]rueidis.RedisResult{
			members("3", "1"),
			members("5", "3"),
		})

	s := NewStoreForTest(c, "rx:")
	ids, err := s.ReadableRecords(context.Background(), &db.AllowListQuery{UserID: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []int64{1, 3, 5}; !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
}

func TestReadableRecords_HidePublic(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{
			members("1", "3"),
			members("3", "5"),
		})

	s := NewStoreForTest(c, "")
	ids, err := s.ReadableRecords(context.Background(), &db.AllowListQuery{UserID: 7, HidePublic: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []int64{1}; !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
}

func TestReadableRecords_Filters(t *testing.T) {
	tests := []struct {
		name    string
		allTags bool
		want    []int64
	}{
		{"any tag", false, []int64{2, 4, 6}},
		{"all tags", true, []int64{2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			c := mock.NewClient(ctrl)

			c.EXPECT().
				DoMulti(gomock.Any(),
					mock.Match("SMEMBERS", "user:1:records"),
					mock.Match("SMEMBERS", "public"),
					mock.Match("SMEMBERS", "collection:10"),
					mock.Match("SMEMBERS", "collection:11"),
					mock.Match("SMEMBERS", "tag:steel"),
					mock.Match("SMEMBERS", "tag:beam"),
					mock.Match("SMEMBERS", "type:sample"),
					mock.Match("SMEMBERS", "mimetype:image/png"),
				).
				Return([]rueidis.RedisResult{
					members("1", "2", "3", "4"),
					members("5", "6"),
					members("2", "5"),
					members("4", "6"),
					members("2", "4", "6"),
					members("2", "5"),
					members("2", "4", "5", "6"),
					members("2", "4", "6"),
				})

			s := NewStoreForTest(c, "")
			ids, err := s.ReadableRecords(context.Background(), &db.AllowListQuery{
				UserID:      1,
				Collections: []int64{10, 11},
				Tags:        []string{"steel", "beam"},
				AllTags:     tt.allTags,
				RecordTypes: []string{"sample"},
				Mimetypes:   []string{"image/png"},
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			// readable {1..6}, collections {2,4,5,6}, types {2,4,5,6}, mimetypes {2,4,6}
			if !reflect.DeepEqual(ids, tt.want) {
				t.Errorf("ids = %v, want %v", ids, tt.want)
			}
		})
	}
}

func TestReadableRecords_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{members(), members()})

	s := NewStoreForTest(c, "")
	ids, err := s.ReadableRecords(context.Background(), &db.AllowListQuery{UserID: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ids == nil || len(ids) != 0 {
		t.Errorf("ids = %#v, want empty non-nil slice", ids)
	}
}

func TestReadableRecords_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{
			members("1"),
			mock.ErrorResult(context.DeadlineExceeded),
		})

	s := NewStoreForTest(c, "")
	_, err := s.ReadableRecords(context.Background(), &db.AllowListQuery{UserID: 1})
	if err == nil {
		t.Fatal("expected error")
	}
	if !isDBError(err) {
		t.Errorf("expected db.Error, got %T", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected wrapped DeadlineExceeded, got %v", err)
	}
}

func TestReadableRecords_BadMember(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{members("abc"), members()})

	s := NewStoreForTest(c, "")
	if _, err := s.ReadableRecords(context.Background(), &db.AllowListQuery{UserID: 1}); err == nil {
		t.Fatal("expected error for non-numeric member")
	}
}

// --- records.go tests ---

func TestPutRecord_New(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "record:9")).
		Return(mock.Result(mock.RedisNil()))
	c.EXPECT().
		DoMulti(gomock.Any(),
			mock.Match("SADD", "user:1:records", "9"),
			mock.Match("SADD", "public", "9"),
			mock.Match("SADD", "tag:steel", "9"),
			mock.Match("SADD", "collection:4", "9"),
			mock.Match("SADD", "type:sample", "9"),
			mock.MatchFn(func(cmd []string) bool {
				return cmd[0] == "SET" && cmd[1] == "record:9"
			}),
		).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisInt64(1)),
			mock.Result(mock.RedisInt64(1)),
			mock.Result(mock.RedisInt64(1)),
			mock.Result(mock.RedisInt64(1)),
			mock.Result(mock.RedisInt64(1)),
			mock.Result(mock.RedisString("OK")),
		})

	s := NewStoreForTest(c, "")
	err := s.PutRecord(context.Background(), &db.RecordRow{
		ID:          9,
		Type:        "sample",
		Visibility:  db.VisibilityPublic,
		Readers:     []int64{1},
		Tags:        []string{"steel"},
		Collections: []int64{4},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPutRecord_RemovesStaleMemberships(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("GET", "record:9")).
		Return(mock.Result(mock.RedisBlobString(`{"ID":9,"Visibility":"public","Tags":["old","kept"]}`)))
	c.EXPECT().
		DoMulti(gomock.Any(),
			mock.Match("SREM", "public", "9"),
			mock.Match("SREM", "tag:old", "9"),
			mock.Match("SADD", "tag:kept", "9"),
			gomock.Any(),
		).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisInt64(1)),
			mock.Result(mock.RedisInt64(1)),
			mock.Result(mock.RedisInt64(0)),
			mock.Result(mock.RedisString("OK")),
		})

	s := NewStoreForTest(c, "")
	err := s.PutRecord(context.Background(), &db.RecordRow{ID: 9, Tags: []string{"kept"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPutRecord_Invalid(t *testing.T) {
	s := NewStoreForTest(nil, "") // client not called
	err := s.PutRecord(context.Background(), &db.RecordRow{ID: 0})
	if !errors.Is(err, db.ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
}

func TestPutRecord_WriteError(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		Return(mock.Result(mock.RedisNil()))
	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{mock.ErrorResult(errors.New("READONLY"))})

	s := NewStoreForTest(c, "")
	err := s.PutRecord(context.Background(), &db.RecordRow{ID: 1})
	var dbErr *db.Error
	if !errors.As(err, &dbErr) {
		t.Fatalf("expected db.Error, got %v", err)
	}
	if dbErr.Op != "SET" {
		t.Errorf("op = %q, want SET", dbErr.Op)
	}
}

func isDBError(err error) bool {
	var dbErr *db.Error
	return errors.As(err, &dbErr)
}
