package gamestate

import (
	"encoding/json"

	"github.com/KirkDiggler/alter-ego/internal/engine"
	"github.com/KirkDiggler/alter-ego/internal/errors"
)

const (
	errDeviceIDEmpty = "device ID cannot be empty"
	errDocumentNil   = "document cannot be nil"
)

func validateLoad(input LoadInput) error {
	if input.DeviceID == "" {
		return errors.InvalidArgument(errDeviceIDEmpty)
	}
	return nil
}

func validateSave(input SaveInput) error {
	if input.DeviceID == "" {
		return errors.InvalidArgument(errDeviceIDEmpty)
	}
	if input.Document == nil || input.Document.Session == nil {
		return errors.InvalidArgument(errDocumentNil)
	}
	return nil
}

func encode(doc *Document) ([]byte, error) {
	out := *doc
	out.Version = DocumentVersion
	out.Level = engine.LevelOf(doc.Session.Experience)

	data, err := json.Marshal(&out)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal game state")
	}
	return data, nil
}

// decode rejects anything that could not have been written by encode
func decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Persistence(err, "stored game state is not valid JSON")
	}
	if doc.Version != DocumentVersion {
		return nil, errors.Persistence(nil, "stored game state has an unknown version").
			WithMeta("version", doc.Version)
	}
	if doc.Session == nil {
		return nil, errors.Persistence(nil, "stored game state has no session")
	}
	if err := doc.Session.CheckInvariants(); err != nil {
		return nil, errors.Persistence(err, "stored game state is inconsistent")
	}
	return &doc, nil
}
