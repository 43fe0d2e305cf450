package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/openvet/clinic-api/internal/model"
)

// PetsClient talks to the pet registry service.
type PetsClient struct {
	httpClient
}

func NewPetsClient(baseURL string, timeout time.Duration, logger *zerolog.Logger) *PetsClient {
	return &PetsClient{newHTTPClient("pets", baseURL, timeout, logger)}
}

func (c *PetsClient) Get(ctx context.Context, id uuid.UUID, token string) (*model.Pet, error) {
	var pet model.Pet
	path := fmt.Sprintf("/api/v1/pets/%s", id)
	if err := c.getJSON(ctx, path, token, &pet); err != nil {
		return nil, err
	}
	return &pet, nil
}
