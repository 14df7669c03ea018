// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/alter-ego/internal/entities"
	"github.com/KirkDiggler/alter-ego/internal/errors"
	"github.com/KirkDiggler/alter-ego/internal/orchestrators/generation"
	generationmock "github.com/KirkDiggler/alter-ego/internal/orchestrators/generation/mock"
)

// ExpectPersona sets up one persona generation for the given city
func ExpectPersona(mockGen *generationmock.MockService, destination entities.Destination, persona *entities.Persona) *gomock.Call {
	return mockGen.EXPECT().
		GeneratePersona(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *generation.GeneratePersonaInput) (*generation.GeneratePersonaOutput, error) {
			if in.Destination != string(destination) {
				return nil, errors.InvalidArgumentf("unexpected destination %q", in.Destination)
			}
			return &generation.GeneratePersonaOutput{Persona: persona}, nil
		}).
		Times(1)
}

// ExpectPersonaError sets up one failing persona generation
func ExpectPersonaError(mockGen *generationmock.MockService, err error) *gomock.Call {
	return mockGen.EXPECT().
		GeneratePersona(gomock.Any(), gomock.Any()).
		Return(nil, err).
		Times(1)
}

// ExpectStamp sets up one stamp generation for the given mission text
func ExpectStamp(mockGen *generationmock.MockService, missionText string, stamp *entities.Stamp) *gomock.Call {
	return mockGen.EXPECT().
		GenerateStamp(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *generation.GenerateStampInput) (*generation.GenerateStampOutput, error) {
			if in.MissionText != missionText {
				return nil, errors.InvalidArgumentf("unexpected mission %q", in.MissionText)
			}
			return &generation.GenerateStampOutput{Stamp: stamp}, nil
		}).
		Times(1)
}

// ExpectGuide sets up one guide generation for the given city
func ExpectGuide(mockGen *generationmock.MockService, destination entities.Destination, guide *entities.Guide) *gomock.Call {
	return mockGen.EXPECT().
		GenerateGuide(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *generation.GenerateGuideInput) (*generation.GenerateGuideOutput, error) {
			if in.Destination != string(destination) {
				return nil, errors.InvalidArgumentf("unexpected destination %q", in.Destination)
			}
			return &generation.GenerateGuideOutput{Guide: guide}, nil
		}).
		Times(1)
}
