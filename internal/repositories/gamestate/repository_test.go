package gamestate_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/alter-ego/internal/entities"
	"github.com/KirkDiggler/alter-ego/internal/errors"
	"github.com/KirkDiggler/alter-ego/internal/repositories/gamestate"
	"github.com/KirkDiggler/alter-ego/internal/testutils"
	"github.com/KirkDiggler/alter-ego/internal/testutils/builders"
)

const testDevice = "device-1"

// RepositoryTestSuite runs the same behavior checks against every backend.
// rawPut writes bytes under a device key, bypassing encoding.
type RepositoryTestSuite struct {
	suite.Suite
	newRepo func() (gamestate.Repository, func(string, []byte), func())

	ctx     context.Context
	repo    gamestate.Repository
	rawPut  func(string, []byte)
	cleanup func()
}

func (s *RepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo, s.rawPut, s.cleanup = s.newRepo()
}

func (s *RepositoryTestSuite) TearDownTest() {
	if s.cleanup != nil {
		s.cleanup()
	}
}

func (s *RepositoryTestSuite) sampleDocument() *gamestate.Document {
	session := builders.NewSessionBuilder().
		WithPlayer(testutils.TestPlayerName, testutils.TestDestination, testutils.TestStyle).
		WithExperience(180).
		AtStamp(testutils.CreateTestPersona(), 2, testutils.CreateTestStamp()).
		Build()

	return &gamestate.Document{
		Session: session,
		Collection: []entities.CollectionEntry{{
			ID:          "01J0000000000000000000000A",
			Destination: testutils.TestDestination,
			Stamp:       *testutils.CreateTestStamp(),
			CreatedAt:   time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		}},
	}
}

func (s *RepositoryTestSuite) TestSaveThenLoad() {
	doc := s.sampleDocument()

	_, err := s.repo.Save(s.ctx, gamestate.SaveInput{DeviceID: testDevice, Document: doc})
	s.Require().NoError(err)

	out, err := s.repo.Load(s.ctx, gamestate.LoadInput{DeviceID: testDevice})
	s.Require().NoError(err)

	s.Assert().Equal(gamestate.DocumentVersion, out.Document.Version)
	s.Assert().Equal(2, out.Document.Level)
	s.Assert().Equal(doc.Session, out.Document.Session)
	s.Assert().Equal(doc.Collection, out.Document.Collection)
}

func (s *RepositoryTestSuite) TestSaveOverwrites() {
	doc := s.sampleDocument()
	_, err := s.repo.Save(s.ctx, gamestate.SaveInput{DeviceID: testDevice, Document: doc})
	s.Require().NoError(err)

	next := &gamestate.Document{Session: doc.Session.Reset(), Collection: doc.Collection}
	_, err = s.repo.Save(s.ctx, gamestate.SaveInput{DeviceID: testDevice, Document: next})
	s.Require().NoError(err)

	out, err := s.repo.Load(s.ctx, gamestate.LoadInput{DeviceID: testDevice})
	s.Require().NoError(err)
	s.Assert().Equal(entities.ScreenIntro, out.Document.Session.Screen)
	s.Assert().Equal(180, out.Document.Session.Experience)
	s.Assert().Len(out.Document.Collection, 1)
}

func (s *RepositoryTestSuite) TestLoadMissing() {
	_, err := s.repo.Load(s.ctx, gamestate.LoadInput{DeviceID: "nobody"})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestDevicesAreIsolated() {
	_, err := s.repo.Save(s.ctx, gamestate.SaveInput{DeviceID: testDevice, Document: s.sampleDocument()})
	s.Require().NoError(err)

	_, err = s.repo.Load(s.ctx, gamestate.LoadInput{DeviceID: "device-2"})
	s.Assert().True(errors.IsNotFound(err))
}

func (s *RepositoryTestSuite) TestLoadCorrupt() {
	valid, err := json.Marshal(map[string]any{
		"version": gamestate.DocumentVersion,
		"session": map[string]any{"screen": "NOWHERE"},
	})
	s.Require().NoError(err)

	testCases := []struct {
		name string
		data []byte
	}{
		{name: "not json", data: []byte("{not json")},
		{name: "unknown version", data: []byte(`{"version":99,"session":{"screen":"INTRO"}}`)},
		{name: "missing session", data: []byte(`{"version":1}`)},
		{name: "inconsistent session", data: valid},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.rawPut(testDevice, tc.data)

			_, err := s.repo.Load(s.ctx, gamestate.LoadInput{DeviceID: testDevice})
			s.Assert().True(errors.IsPersistence(err), "got %v", err)
		})
	}
}

func (s *RepositoryTestSuite) TestInvalidInput() {
	_, err := s.repo.Load(s.ctx, gamestate.LoadInput{})
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.repo.Save(s.ctx, gamestate.SaveInput{DeviceID: testDevice})
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = s.repo.Save(s.ctx, gamestate.SaveInput{Document: s.sampleDocument()})
	s.Assert().True(errors.IsInvalidArgument(err))
}

func TestInMemoryRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func() (gamestate.Repository, func(string, []byte), func()) {
			repo := gamestate.NewInMemory()
			return repo, repo.PutRaw, nil
		},
	})
}

func TestRedisRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func() (gamestate.Repository, func(string, []byte), func()) {
			client, cleanup := testutils.CreateTestRedisClient(t)
			put := func(device string, data []byte) {
				if err := client.Set(context.Background(), gamestate.Key(device), data, 0).Err(); err != nil {
					t.Fatalf("seed redis: %v", err)
				}
			}
			return gamestate.NewRedisRepository(client), put, cleanup
		},
	})
}

func TestSQLiteRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{
		newRepo: func() (gamestate.Repository, func(string, []byte), func()) {
			path := filepath.Join(t.TempDir(), "alter-ego.db")
			repo, err := gamestate.OpenSQLite(context.Background(), path, nil)
			if err != nil {
				t.Fatalf("open sqlite: %v", err)
			}
			put := func(device string, data []byte) {
				if err := repo.PutRaw(context.Background(), device, data); err != nil {
					t.Fatalf("seed sqlite: %v", err)
				}
			}
			return repo, put, func() { _ = repo.Close() }
		},
	})
}

func TestKey(t *testing.T) {
	if got := gamestate.Key("abc"); got != "alter-ego-storage:abc" {
		t.Fatalf("Key() = %q", got)
	}
}
