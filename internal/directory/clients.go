package directory

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/openvet/clinic-api/internal/model"
)

// ClientsClient talks to the clients directory service.
type ClientsClient struct {
	httpClient
}

func NewClientsClient(baseURL string, timeout time.Duration, logger *zerolog.Logger) *ClientsClient {
	return &ClientsClient{newHTTPClient("clients", baseURL, timeout, logger)}
}

func (c *ClientsClient) GetByDNI(ctx context.Context, dni, token string) (*model.Client, error) {
	var client model.Client
	path := fmt.Sprintf("/api/v1/clients/dni/%s", url.PathEscape(dni))
	if err := c.getJSON(ctx, path, token, &client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (c *ClientsClient) GetByEmail(ctx context.Context, email, token string) (*model.Client, error) {
	var client model.Client
	path := fmt.Sprintf("/api/v1/clients/email/%s", url.PathEscape(email))
	if err := c.getJSON(ctx, path, token, &client); err != nil {
		return nil, err
	}
	return &client, nil
}
