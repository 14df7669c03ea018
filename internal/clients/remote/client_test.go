package remote_test

import (
	"context"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/KirkDiggler/alter-ego/internal/clients/remote"
	"github.com/KirkDiggler/alter-ego/internal/errors"
	grpcv1 "github.com/KirkDiggler/alter-ego/internal/handlers/grpc/v1"
	"github.com/KirkDiggler/alter-ego/internal/orchestrators/generation"
	generationmock "github.com/KirkDiggler/alter-ego/internal/orchestrators/generation/mock"
	"github.com/KirkDiggler/alter-ego/internal/testutils"
	alteregov1 "github.com/KirkDiggler/alter-ego/proto/alterego/v1"
)

type ClientTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *generationmock.MockService
	server      *grpc.Server
	conn        *grpc.ClientConn
	client      *remote.Client
	ctx         context.Context
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = generationmock.NewMockService(s.ctrl)
	s.ctx = context.Background()

	handler, err := grpcv1.NewHandler(&grpcv1.HandlerConfig{Service: s.mockService})
	s.Require().NoError(err)

	lis := bufconn.Listen(1 << 20)
	s.server = grpc.NewServer()
	alteregov1.RegisterContentServiceServer(s.server, handler)
	go func() { _ = s.server.Serve(lis) }()

	s.conn, err = grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)

	s.client, err = remote.New(&remote.Config{Conn: s.conn})
	s.Require().NoError(err)
}

func (s *ClientTestSuite) TearDownTest() {
	_ = s.conn.Close()
	s.server.Stop()
	s.ctrl.Finish()
}

func (s *ClientTestSuite) TestGeneratePersonaRoundTrip() {
	s.mockService.EXPECT().
		GeneratePersona(gomock.Any(), &generation.GeneratePersonaInput{
			Identity:    testutils.TestIdentity,
			Name:        "Amine",
			Destination: "Sousse",
			Style:       "Luxury & curated",
		}).
		Return(&generation.GeneratePersonaOutput{Persona: testutils.CreateTestPersona()}, nil)

	out, err := s.client.GeneratePersona(s.ctx, &generation.GeneratePersonaInput{
		Identity:    testutils.TestIdentity,
		Name:        "Amine",
		Destination: "Sousse",
		Style:       "Luxury & curated",
	})
	s.Require().NoError(err)
	s.Assert().Equal(testutils.CreateTestPersona(), out.Persona)
}

func (s *ClientTestSuite) TestUnknownIdentityUsesPeer() {
	s.mockService.EXPECT().
		GenerateGuide(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *generation.GenerateGuideInput) (*generation.GenerateGuideOutput, error) {
			s.Assert().NotEqual("unknown", in.Identity)
			s.Assert().Equal("Douz", in.Destination)
			return &generation.GenerateGuideOutput{Guide: testutils.CreateTestGuide()}, nil
		})

	out, err := s.client.GenerateGuide(s.ctx, &generation.GenerateGuideInput{Identity: "unknown", Destination: "Douz"})
	s.Require().NoError(err)
	s.Assert().Equal(testutils.CreateTestGuide(), out.Guide)
}

func (s *ClientTestSuite) TestGenerateStampRoundTrip() {
	in := &generation.GenerateStampInput{
		Identity:      testutils.TestIdentity,
		PlayerName:    "Amine",
		PlayerStyle:   "Luxury & curated",
		Destination:   "Sousse",
		PersonaName:   "Hedi",
		PersonaAge:    71,
		PersonaOrigin: "Ksar Hellal",
		MissionText:   "Find the net mender",
		MissionXP:     30,
		Debrief:       "He taught me a knot.",
	}
	s.mockService.EXPECT().
		GenerateStamp(gomock.Any(), in).
		Return(&generation.GenerateStampOutput{Stamp: testutils.CreateTestStamp()}, nil)

	out, err := s.client.GenerateStamp(s.ctx, in)
	s.Require().NoError(err)
	s.Assert().Equal(testutils.CreateTestStamp(), out.Stamp)
}

func (s *ClientTestSuite) TestErrorsMapBack() {
	vb := errors.NewValidationBuilder()
	vb.RequiredField("name")

	testCases := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"validation", vb.Build(), errors.IsInvalidArgument},
		{"rate limited", errors.RateLimited("over capacity"), errors.IsRateLimited},
		{"provider hidden", errors.Provider(fmt.Errorf("secret"), "generate"), func(err error) bool {
			return errors.GetCode(err) == errors.CodeInternal && errors.GetMessage(err) == errors.PublicInternal
		}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.mockService.EXPECT().
				GeneratePersona(gomock.Any(), gomock.Any()).
				Return(nil, tc.err)

			_, err := s.client.GeneratePersona(s.ctx, &generation.GeneratePersonaInput{Name: "x"})
			s.Assert().True(tc.check(err), "got %v", err)
		})
	}

	s.Run("violations survive", func() {
		s.mockService.EXPECT().
			GeneratePersona(gomock.Any(), gomock.Any()).
			Return(nil, vb.Build())

		_, err := s.client.GeneratePersona(s.ctx, &generation.GeneratePersonaInput{})
		s.Assert().Equal([]errors.FieldViolation{{Field: "name", Message: "is required"}}, errors.FieldViolations(err))
	})
}

func (s *ClientTestSuite) TestConfigValidation() {
	_, err := remote.New(&remote.Config{})
	s.Assert().True(errors.IsInvalidArgument(err))
}
