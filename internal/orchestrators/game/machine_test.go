package game_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/alter-ego/internal/engine"
	"github.com/KirkDiggler/alter-ego/internal/entities"
	"github.com/KirkDiggler/alter-ego/internal/errors"
	"github.com/KirkDiggler/alter-ego/internal/orchestrators/game"
	"github.com/KirkDiggler/alter-ego/internal/orchestrators/generation"
	generationmock "github.com/KirkDiggler/alter-ego/internal/orchestrators/generation/mock"
	"github.com/KirkDiggler/alter-ego/internal/pkg/clock"
	"github.com/KirkDiggler/alter-ego/internal/pkg/idgen"
	"github.com/KirkDiggler/alter-ego/internal/repositories/gamestate"
	gamestatemock "github.com/KirkDiggler/alter-ego/internal/repositories/gamestate/mock"
	"github.com/KirkDiggler/alter-ego/internal/testutils"
	"github.com/KirkDiggler/alter-ego/internal/testutils/builders"
)

const testDevice = "device-1"

type MachineTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockGenerator *generationmock.MockService
	repo          *gamestate.InMemoryRepository
	machine       *game.Machine
	ctx           context.Context
	now           time.Time
}

func TestMachineSuite(t *testing.T) {
	suite.Run(t, new(MachineTestSuite))
}

func (s *MachineTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockGenerator = generationmock.NewMockService(s.ctrl)
	s.repo = gamestate.NewInMemory()
	s.ctx = context.Background()
	s.now = time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)

	s.machine = s.newMachine(s.repo)
}

func (s *MachineTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *MachineTestSuite) newMachine(repo gamestate.Repository) *game.Machine {
	m, err := game.New(&game.Config{
		Generator:  s.mockGenerator,
		Repository: repo,
		DeviceID:   testDevice,
		Identity:   testutils.TestIdentity,
		Clock:      clock.Func(func() time.Time { return s.now }),
		IDGen:      idgen.NewSequential("stamp"),
	})
	s.Require().NoError(err)
	return m
}

// seed stores session and collection and loads them into the machine
func (s *MachineTestSuite) seed(session *entities.Session, collection ...entities.CollectionEntry) {
	_, err := s.repo.Save(s.ctx, gamestate.SaveInput{
		DeviceID: testDevice,
		Document: &gamestate.Document{Session: session, Collection: collection},
	})
	s.Require().NoError(err)
	_, err = s.machine.Load(s.ctx)
	s.Require().NoError(err)
}

func (s *MachineTestSuite) startInput() *game.StartInput {
	return &game.StartInput{
		Name:        testutils.TestPlayerName,
		Destination: testutils.TestDestination,
		Style:       testutils.TestStyle,
	}
}

func (s *MachineTestSuite) stored() *gamestate.Document {
	out, err := s.repo.Load(s.ctx, gamestate.LoadInput{DeviceID: testDevice})
	s.Require().NoError(err)
	return out.Document
}

func (s *MachineTestSuite) TestEndToEndSousse() {
	s.mockGenerator.EXPECT().
		GeneratePersona(gomock.Any(), &generation.GeneratePersonaInput{
			Identity:    testutils.TestIdentity,
			Name:        "Amine",
			Destination: "Sousse",
			Style:       "Luxury & curated",
		}).
		Return(&generation.GeneratePersonaOutput{Persona: testutils.CreateTestPersona()}, nil).
		Times(1)

	view, err := s.machine.Start(s.ctx, s.startInput())
	s.Require().NoError(err)
	s.Assert().Equal(entities.ScreenLoading, view.Session.Screen)

	view, err = s.machine.LoadPersona(s.ctx)
	s.Require().NoError(err)
	s.Assert().Equal(entities.ScreenPersona, view.Session.Screen)
	s.Assert().Nil(view.Session.ActiveMission)

	view, err = s.machine.SelectMission(s.ctx, &game.SelectMissionInput{Index: 2})
	s.Require().NoError(err)
	s.Require().NotNil(view.Session.ActiveMission)
	s.Assert().Equal(2, *view.Session.ActiveMission)

	_, err = s.machine.AcceptMission(s.ctx)
	s.Require().NoError(err)

	s.mockGenerator.EXPECT().
		GenerateStamp(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *generation.GenerateStampInput) (*generation.GenerateStampOutput, error) {
			s.Assert().Equal("Hedi", in.PersonaName)
			s.Assert().Equal(30, in.MissionXP)
			s.Assert().Equal("I asked. He handed me the needle.", in.Debrief)
			return &generation.GenerateStampOutput{Stamp: testutils.CreateTestStamp()}, nil
		}).
		Times(1)

	view, err = s.machine.SubmitDebrief(s.ctx, &game.SubmitDebriefInput{Text: " I asked. He handed me the needle. "})
	s.Require().NoError(err)

	s.Assert().Equal(entities.ScreenStamp, view.Session.Screen)
	s.Assert().Equal(80, view.Session.Experience)
	s.Assert().Equal(1, view.Level)
	s.Require().Len(view.Collection, 1)
	s.Assert().Equal(entities.DestinationSousse, view.Collection[0].Destination)
	s.Assert().Equal("stamp_1", view.Collection[0].ID)
	s.Assert().Equal(s.now, view.Collection[0].CreatedAt)
	s.Assert().Equal(1, view.CitiesVisited)

	doc := s.stored()
	s.Assert().Equal(80, doc.Session.Experience)
	s.Assert().Len(doc.Collection, 1)
}

func (s *MachineTestSuite) TestStartValidation() {
	view, err := s.machine.Start(s.ctx, &game.StartInput{Name: "", Destination: "Paris", Style: ""})
	s.Require().Error(err)
	s.Assert().Nil(view)
	s.Assert().True(errors.IsInvalidArgument(err))
	s.Assert().Len(errors.FieldViolations(err), 3)

	current := s.machine.View()
	s.Assert().Equal(entities.ScreenIntro, current.Session.Screen)
	s.Require().NotNil(current.Session.Error)
	s.Assert().Equal(string(errors.CodeInvalidArgument), current.Session.Error.Code)

	_, err = s.machine.Start(s.ctx, s.startInput())
	s.Require().NoError(err)
	s.Assert().Nil(s.machine.View().Session.Error)
}

func (s *MachineTestSuite) TestStoredNameWins() {
	s.seed(builders.NewSessionBuilder().
		WithPlayer("Leila", "", "").
		WithExperience(300).
		Build())

	view, err := s.machine.Start(s.ctx, s.startInput())
	s.Require().NoError(err)
	s.Assert().Equal("Leila", view.Session.Player.Name)
	s.Assert().Equal(300, view.Session.Experience)
}

func (s *MachineTestSuite) TestInvalidTransitionsLeaveSessionUntouched() {
	before := s.machine.View().Session

	testCases := []struct {
		name string
		act  func() (*game.View, error)
	}{
		{"load persona from intro", func() (*game.View, error) { return s.machine.LoadPersona(s.ctx) }},
		{"select mission from intro", func() (*game.View, error) {
			return s.machine.SelectMission(s.ctx, &game.SelectMissionInput{Index: 0})
		}},
		{"accept from intro", func() (*game.View, error) { return s.machine.AcceptMission(s.ctx) }},
		{"debrief from intro", func() (*game.View, error) {
			return s.machine.SubmitDebrief(s.ctx, &game.SubmitDebriefInput{Text: "hello"})
		}},
		{"guide from intro", func() (*game.View, error) { return s.machine.RevealGuide(s.ctx) }},
		{"back to stamp from intro", func() (*game.View, error) { return s.machine.BackToStamp(s.ctx) }},
		{"retry from intro", func() (*game.View, error) { return s.machine.Retry(s.ctx) }},
		{"close profile from intro", func() (*game.View, error) { return s.machine.CloseProfile(s.ctx) }},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			view, err := tc.act()
			s.Assert().Nil(view)
			s.Assert().True(errors.IsFailedPrecondition(err), "got %v", err)
			s.Assert().Equal(before, s.machine.View().Session)
		})
	}

	_, err := s.repo.Load(s.ctx, gamestate.LoadInput{DeviceID: testDevice})
	s.Assert().True(errors.IsNotFound(err), "rejected actions must not save")
}

func (s *MachineTestSuite) TestSelectMissionOutOfRange() {
	s.seed(builders.NewSessionBuilder().
		WithPlayer(testutils.TestPlayerName, testutils.TestDestination, testutils.TestStyle).
		AtPersona(testutils.CreateTestPersona()).
		Build())

	_, err := s.machine.SelectMission(s.ctx, &game.SelectMissionInput{Index: 3})
	s.Assert().True(errors.IsInvalidArgument(err))
	s.Assert().Nil(s.machine.View().Session.ActiveMission)

	_, err = s.machine.AcceptMission(s.ctx)
	s.Assert().True(errors.IsFailedPrecondition(err))
}

func (s *MachineTestSuite) TestPersonaFailureKeepsLoading() {
	s.seed(builders.NewSessionBuilder().
		WithPlayer(testutils.TestPlayerName, testutils.TestDestination, testutils.TestStyle).
		AtLoading().
		Build())

	testCases := []struct {
		name string
		err  error
	}{
		{"rate limited", errors.RateLimited("Too Many Requests")},
		{"provider", errors.Provider(fmt.Errorf("connection reset"), "generate persona")},
		{"malformed", errors.MalformedResponse("$.stats.pace: must be at most 10")},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.mockGenerator.EXPECT().
				GeneratePersona(gomock.Any(), gomock.Any()).
				Return(nil, tc.err)

			_, err := s.machine.LoadPersona(s.ctx)
			s.Assert().Equal(errors.GetCode(tc.err), errors.GetCode(err))

			view := s.machine.View()
			s.Assert().Equal(entities.ScreenLoading, view.Session.Screen)
			s.Assert().Nil(view.Session.Persona)
			s.Require().NotNil(view.Session.Error)
			s.Assert().Equal(string(errors.GetCode(tc.err)), view.Session.Error.Code)
		})
	}

	view, err := s.machine.Retry(s.ctx)
	s.Require().NoError(err)
	s.Assert().Equal(entities.ScreenIntro, view.Session.Screen)
	s.Assert().Nil(view.Session.Error)
	s.Assert().Equal(testutils.TestPlayerName, view.Session.Player.Name)
}

func (s *MachineTestSuite) TestMalformedStampKeepsDebrief() {
	s.seed(builders.NewSessionBuilder().
		WithPlayer(testutils.TestPlayerName, testutils.TestDestination, testutils.TestStyle).
		AtDebrief(testutils.CreateTestPersona(), 1).
		Build())

	s.mockGenerator.EXPECT().
		GenerateStamp(gomock.Any(), gomock.Any()).
		Return(nil, errors.MalformedResponse("$.moment: is required"))

	_, err := s.machine.SubmitDebrief(s.ctx, &game.SubmitDebriefInput{Text: "done"})
	s.Assert().True(errors.IsMalformedResponse(err))

	view := s.machine.View()
	s.Assert().Equal(entities.ScreenDebrief, view.Session.Screen)
	s.Assert().Equal(0, view.Session.Experience)
	s.Assert().Empty(view.Collection)
	s.Assert().Nil(view.Session.Stamp)
}

func (s *MachineTestSuite) TestEmptyDebriefMakesNoCall() {
	s.seed(builders.NewSessionBuilder().
		WithPlayer(testutils.TestPlayerName, testutils.TestDestination, testutils.TestStyle).
		AtDebrief(testutils.CreateTestPersona(), 0).
		Build())

	_, err := s.machine.SubmitDebrief(s.ctx, &game.SubmitDebriefInput{Text: "   "})
	s.Assert().True(errors.IsInvalidArgument(err))
	s.Assert().Equal(entities.ScreenDebrief, s.machine.View().Session.Screen)
	s.Assert().NotNil(s.machine.View().Session.Error)
}

func (s *MachineTestSuite) TestClaimedMissionIsNotReclaimed() {
	s.seed(builders.NewSessionBuilder().
		WithPlayer(testutils.TestPlayerName, testutils.TestDestination, testutils.TestStyle).
		AtDebrief(testutils.CreateTestPersona(), 2).
		Build())

	s.mockGenerator.EXPECT().
		GenerateStamp(gomock.Any(), gomock.Any()).
		Return(&generation.GenerateStampOutput{Stamp: testutils.CreateTestStamp()}, nil).
		Times(1)

	_, err := s.machine.SubmitDebrief(s.ctx, &game.SubmitDebriefInput{Text: "done"})
	s.Require().NoError(err)

	_, err = s.machine.SubmitDebrief(s.ctx, &game.SubmitDebriefInput{Text: "done again"})
	s.Assert().True(errors.IsFailedPrecondition(err))

	view := s.machine.View()
	s.Assert().Equal(engine.MissionAward(30), view.Session.Experience)
	s.Assert().Len(view.Collection, 1)
}

func (s *MachineTestSuite) TestConcurrentSubmitAwardsOnce() {
	s.seed(builders.NewSessionBuilder().
		WithPlayer(testutils.TestPlayerName, testutils.TestDestination, testutils.TestStyle).
		AtDebrief(testutils.CreateTestPersona(), 2).
		Build())

	entered := make(chan struct{})
	release := make(chan struct{})
	s.mockGenerator.EXPECT().
		GenerateStamp(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *generation.GenerateStampInput) (*generation.GenerateStampOutput, error) {
			close(entered)
			<-release
			return &generation.GenerateStampOutput{Stamp: testutils.CreateTestStamp()}, nil
		}).
		Times(1)

	const callers = 4
	errs := make([]error, callers)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, errs[0] = s.machine.SubmitDebrief(s.ctx, &game.SubmitDebriefInput{Text: "done"})
	}()
	<-entered

	for i := 1; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.machine.SubmitDebrief(s.ctx, &game.SubmitDebriefInput{Text: "done"})
		}(i)
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	s.Require().NoError(errs[0])
	for _, err := range errs[1:] {
		if err != nil {
			s.Assert().True(errors.IsFailedPrecondition(err), "got %v", err)
		}
	}

	view := s.machine.View()
	s.Assert().Equal(80, view.Session.Experience)
	s.Assert().Len(view.Collection, 1)
}

func (s *MachineTestSuite) TestSupersededPersonaIsDiscarded() {
	s.seed(builders.NewSessionBuilder().
		WithPlayer(testutils.TestPlayerName, testutils.TestDestination, testutils.TestStyle).
		AtLoading().
		Build())

	entered := make(chan struct{})
	release := make(chan struct{})
	s.mockGenerator.EXPECT().
		GeneratePersona(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *generation.GeneratePersonaInput) (*generation.GeneratePersonaOutput, error) {
			close(entered)
			<-release
			return &generation.GeneratePersonaOutput{Persona: testutils.CreateTestPersona()}, nil
		})

	done := make(chan error, 1)
	go func() {
		_, err := s.machine.LoadPersona(s.ctx)
		done <- err
	}()
	<-entered

	view, err := s.machine.Reset(s.ctx)
	s.Require().NoError(err)
	s.Assert().Equal(entities.ScreenIntro, view.Session.Screen)

	close(release)
	s.Assert().True(errors.IsAborted(<-done))

	view = s.machine.View()
	s.Assert().Equal(entities.ScreenIntro, view.Session.Screen)
	s.Assert().Nil(view.Session.Persona)
	s.Assert().Nil(view.Session.Error)
}

func (s *MachineTestSuite) TestGuideBelowThresholdMakesNoCall() {
	s.seed(builders.NewSessionBuilder().
		WithPlayer(testutils.TestPlayerName, testutils.TestDestination, testutils.TestStyle).
		WithExperience(engine.GuideUnlockXP-1).
		AtStamp(testutils.CreateTestPersona(), 0, testutils.CreateTestStamp()).
		Build())

	view, err := s.machine.RevealGuide(s.ctx)
	s.Assert().Nil(view)
	s.Assert().True(errors.IsFailedPrecondition(err))
	s.Assert().Equal(entities.ScreenStamp, s.machine.View().Session.Screen)
	s.Assert().False(s.machine.View().GuideUnlocked)
}

func (s *MachineTestSuite) TestGuideRevealAndBack() {
	s.seed(builders.NewSessionBuilder().
		WithPlayer(testutils.TestPlayerName, testutils.TestDestination, testutils.TestStyle).
		WithExperience(engine.GuideUnlockXP).
		AtStamp(testutils.CreateTestPersona(), 0, testutils.CreateTestStamp()).
		Build())

	s.mockGenerator.EXPECT().
		GenerateGuide(gomock.Any(), &generation.GenerateGuideInput{
			Identity:    testutils.TestIdentity,
			Destination: "Sousse",
		}).
		Return(&generation.GenerateGuideOutput{Guide: testutils.CreateTestGuide()}, nil).
		Times(1)

	view, err := s.machine.RevealGuide(s.ctx)
	s.Require().NoError(err)
	s.Assert().Equal(entities.ScreenGuide, view.Session.Screen)
	s.Assert().Equal("Yasmine", view.Session.Guide.Name)
	s.Assert().True(view.MaxLevel)

	_, err = s.machine.BackToStamp(s.ctx)
	s.Require().NoError(err)

	// The guide is kept, so revealing again is local
	view, err = s.machine.RevealGuide(s.ctx)
	s.Require().NoError(err)
	s.Assert().Equal(entities.ScreenGuide, view.Session.Screen)
}

func (s *MachineTestSuite) TestProfileRoundTrip() {
	s.seed(builders.NewSessionBuilder().
		WithPlayer(testutils.TestPlayerName, testutils.TestDestination, testutils.TestStyle).
		AtPersona(testutils.CreateTestPersona()).
		Build())

	view, err := s.machine.OpenProfile(s.ctx)
	s.Require().NoError(err)
	s.Assert().Equal(entities.ScreenProfile, view.Session.Screen)
	s.Assert().NotNil(view.Session.Persona)

	_, err = s.machine.OpenProfile(s.ctx)
	s.Assert().True(errors.IsFailedPrecondition(err))

	view, err = s.machine.CloseProfile(s.ctx)
	s.Require().NoError(err)
	s.Assert().Equal(entities.ScreenPersona, view.Session.Screen)
	s.Assert().Empty(view.Session.ReturnScreen)
}

func (s *MachineTestSuite) TestResetPreservesSubsetAndCollection() {
	entry := entities.CollectionEntry{
		ID:          "stamp_0",
		Destination: entities.DestinationDjerba,
		Stamp:       *testutils.CreateTestStamp(),
		CreatedAt:   s.now,
	}
	s.seed(builders.NewSessionBuilder().
		WithPlayer(testutils.TestPlayerName, testutils.TestDestination, testutils.TestStyle).
		WithExperience(420).
		AtStamp(testutils.CreateTestPersona(), 1, testutils.CreateTestStamp()).
		Build(), entry)

	_, err := s.machine.ToggleMute(s.ctx)
	s.Require().NoError(err)

	view, err := s.machine.Reset(s.ctx)
	s.Require().NoError(err)

	s.Assert().Equal(entities.ScreenIntro, view.Session.Screen)
	s.Assert().Equal(testutils.TestPlayerName, view.Session.Player.Name)
	s.Assert().Empty(view.Session.Player.Destination)
	s.Assert().Equal(420, view.Session.Experience)
	s.Assert().Equal(4, view.Level)
	s.Assert().True(view.Session.Muted)
	s.Assert().Nil(view.Session.Persona)
	s.Assert().Nil(view.Session.ActiveMission)
	s.Assert().Nil(view.Session.Stamp)
	s.Assert().Len(view.Collection, 1)

	again, err := s.machine.Reset(s.ctx)
	s.Require().NoError(err)
	s.Assert().Equal(view.Session, again.Session)
}

func (s *MachineTestSuite) TestLoadCorruptStartsFresh() {
	s.repo.PutRaw(testDevice, []byte("{broken"))

	view, err := s.machine.Load(s.ctx)
	s.Require().NoError(err)
	s.Assert().Equal(entities.NewSession(), view.Session)
	s.Assert().Empty(view.Collection)
}

func (s *MachineTestSuite) TestSaveFailureIsReported() {
	mockRepo := gamestatemock.NewMockRepository(s.ctrl)
	m := s.newMachine(mockRepo)

	mockRepo.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		Return(nil, errors.Internal("disk full"))

	view, err := m.ToggleMute(s.ctx)
	s.Assert().Nil(view)
	s.Assert().True(errors.IsPersistence(err))

	// The in-memory session stays authoritative
	s.Assert().True(m.View().Session.Muted)
}

func (s *MachineTestSuite) TestConfigValidation() {
	_, err := game.New(&game.Config{})
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))

	_, err = game.New(nil)
	s.Assert().True(errors.IsInvalidArgument(err))
}
