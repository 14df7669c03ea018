package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/alter-ego/internal/entities"
	"github.com/KirkDiggler/alter-ego/internal/errors"
	v1 "github.com/KirkDiggler/alter-ego/internal/handlers/http/v1"
	"github.com/KirkDiggler/alter-ego/internal/handlers/wire"
	"github.com/KirkDiggler/alter-ego/internal/orchestrators/generation"
	generationmock "github.com/KirkDiggler/alter-ego/internal/orchestrators/generation/mock"
	"github.com/KirkDiggler/alter-ego/internal/testutils"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *generationmock.MockService
	router      *gin.Engine
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = generationmock.NewMockService(s.ctrl)

	handler, err := v1.NewHandler(&v1.HandlerConfig{
		Service:      s.mockService,
		AllowOrigins: []string{"http://localhost:3000"},
	})
	s.Require().NoError(err)
	s.router = handler.Router()
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) post(path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerTestSuite) decodeError(rec *httptest.ResponseRecorder) *wire.ErrorResponse {
	var body wire.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return &body
}

func (s *HandlerTestSuite) TestGeneratePersona() {
	s.mockService.EXPECT().
		GeneratePersona(gomock.Any(), &generation.GeneratePersonaInput{
			Identity:    "198.51.100.4",
			Name:        "Amine",
			Destination: "Sousse",
			Style:       "Luxury & curated",
		}).
		Return(&generation.GeneratePersonaOutput{Persona: testutils.CreateTestPersona()}, nil)

	rec := s.post(v1.PathGeneratePersona,
		`{"name":"Amine","city":"Sousse","style":"Luxury & curated"}`,
		map[string]string{"X-Forwarded-For": "198.51.100.4, 10.0.0.1"})

	s.Require().Equal(http.StatusOK, rec.Code)

	var persona entities.Persona
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &persona))
	s.Assert().Equal(*testutils.CreateTestPersona(), persona)
}

func (s *HandlerTestSuite) TestGenerateEgoAlias() {
	s.mockService.EXPECT().
		GeneratePersona(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *generation.GeneratePersonaInput) (*generation.GeneratePersonaOutput, error) {
			s.Assert().Equal("192.0.2.1", in.Identity)
			return &generation.GeneratePersonaOutput{Persona: testutils.CreateTestPersona()}, nil
		})

	rec := s.post(v1.PathGenerateEgo, `{"name":"Amine","city":"Sousse","style":"x"}`, nil)
	s.Assert().Equal(http.StatusOK, rec.Code)
}

func (s *HandlerTestSuite) TestGenerateStamp() {
	s.mockService.EXPECT().
		GenerateStamp(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *generation.GenerateStampInput) (*generation.GenerateStampOutput, error) {
			s.Assert().Equal("Hedi", in.PersonaName)
			s.Assert().Equal(71, in.PersonaAge)
			s.Assert().Equal(30, in.MissionXP)
			return &generation.GenerateStampOutput{Stamp: testutils.CreateTestStamp()}, nil
		})

	body := testutils.MustJSON(s.T(), map[string]any{
		"playerName":  "Amine",
		"playerStyle": "Luxury & curated",
		"city":        "Sousse",
		"egoName":     "Hedi",
		"egoAge":      71,
		"egoOrigin":   "Ksar Hellal",
		"missionText": "Find the net mender",
		"missionXP":   30,
		"debrief":     "He taught me a knot.",
	})
	rec := s.post(v1.PathGenerateStamp, body, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Assert().JSONEq(testutils.MustJSON(s.T(), testutils.CreateTestStamp()), rec.Body.String())
}

func (s *HandlerTestSuite) TestGenerateGuide() {
	s.mockService.EXPECT().
		GenerateGuide(gomock.Any(), gomock.Any()).
		Return(&generation.GenerateGuideOutput{Guide: testutils.CreateTestGuide()}, nil)

	rec := s.post(v1.PathGenerateGuide, `{"city":"Sousse"}`, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Assert().Contains(rec.Body.String(), `"years_in_city":29`)
}

func (s *HandlerTestSuite) TestValidationFailure() {
	vb := errors.NewValidationBuilder()
	vb.RequiredField("name")
	vb.Field("city", "must be one of: Tunis, Sidi Bou Said, Djerba, Sousse, Douz, Carthage")

	s.mockService.EXPECT().
		GeneratePersona(gomock.Any(), gomock.Any()).
		Return(nil, vb.Build())

	rec := s.post(v1.PathGeneratePersona, `{"name":"","city":"Paris","style":"x"}`, nil)
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	body := s.decodeError(rec)
	s.Assert().Equal("Invalid payload", body.Error)
	s.Assert().Len(body.Details, 2)
}

func (s *HandlerTestSuite) TestMalformedBody() {
	testCases := []struct {
		name    string
		body    string
		message string
	}{
		{"not json", `{oops`, "must be a JSON object"},
		{"wrong type", `{"egoAge":"old"}`, "egoAge: expected int"},
		{"empty", ``, "must be a JSON object"},
		{"too large", `{"debrief":"` + strings.Repeat("a", 70<<10) + `"}`, "too large"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			rec := s.post(v1.PathGenerateStamp, tc.body, nil)
			s.Require().Equal(http.StatusBadRequest, rec.Code)
			body := s.decodeError(rec)
			s.Assert().Equal("Invalid payload", body.Error)
			s.Assert().Equal([]errors.FieldViolation{{Field: "body", Message: tc.message}}, body.Details)
		})
	}
}

func (s *HandlerTestSuite) TestRateLimited() {
	s.mockService.EXPECT().
		GenerateGuide(gomock.Any(), gomock.Any()).
		Return(nil, errors.RateLimited("identity 192.0.2.1 over capacity"))

	rec := s.post(v1.PathGenerateGuide, `{"city":"Douz"}`, nil)
	s.Require().Equal(http.StatusTooManyRequests, rec.Code)
	s.Assert().JSONEq(`{"error":"Too Many Requests"}`, rec.Body.String())
}

func (s *HandlerTestSuite) TestInternalDetailIsHidden() {
	testCases := []error{
		errors.Provider(fmt.Errorf("googleapi: key AIza-secret rejected"), "generate persona"),
		errors.MalformedResponse("$.stats.pace: must be at most 10"),
	}

	for _, err := range testCases {
		s.Run(string(errors.GetCode(err)), func() {
			s.mockService.EXPECT().
				GeneratePersona(gomock.Any(), gomock.Any()).
				Return(nil, err)

			rec := s.post(v1.PathGeneratePersona, `{"name":"Amine","city":"Sousse","style":"x"}`, nil)
			s.Require().Equal(http.StatusInternalServerError, rec.Code)
			s.Assert().JSONEq(`{"error":"Internal Server Error"}`, rec.Body.String())
		})
	}
}

func (s *HandlerTestSuite) TestCORSPreflight() {
	req := httptest.NewRequest(http.MethodOptions, v1.PathGenerateStamp, nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Assert().Equal("http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func (s *HandlerTestSuite) TestConfigValidation() {
	_, err := v1.NewHandler(&v1.HandlerConfig{})
	s.Assert().True(errors.IsInvalidArgument(err))
}
