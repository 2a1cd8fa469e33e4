package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/hatkhataapp/hatkhata-server/internal/errors"
)

// Instance is the singleton server identity record. The install ID is
// minted once on first launch and surfaces in the health endpoint and the
// CSV export manifest so a device can tell its servers apart.
type Instance struct {
	InstallID string    `json:"install_id"`
	CreatedAt time.Time `json:"created_at"`
}

// InitializeInstance loads the instance record, creating it on first
// launch. The record is written synchronously through the write-behind
// queue like every other snapshot; losing it only costs a fresh ID.
func InitializeInstance(durable Durable) (Instance, error) {
	var instance Instance
	err := durable.Load(RecordInstance, &instance)
	if err == nil {
		return instance, nil
	}
	if !apperrors.Is(err, ErrRecordNotFound) {
		return Instance{}, fmt.Errorf("failed to load instance record: %w", err)
	}

	instance = Instance{
		InstallID: uuid.NewString(),
		CreatedAt: time.Now(),
	}
	durable.Save(RecordInstance, instance)

	return instance, nil
}
