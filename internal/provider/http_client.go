package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"railbook/internal/shared/apperror"
	"railbook/internal/shared/config"
)

// maxResponseBytes bounds how much of an upstream body is decoded
const maxResponseBytes = 4 << 20

// HTTPProvider talks to a remote railway API over JSON
type HTTPProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPProvider creates a provider for cfg.BaseURL. A nil client gets one
// with cfg.Timeout applied.
func NewHTTPProvider(cfg config.ProviderConfig, client *http.Client) *HTTPProvider {
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPProvider{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  client,
	}
}

func (p *HTTPProvider) GetAllStations(ctx context.Context) ([]IRStation, error) {
	var stations []IRStation
	if _, err := p.get(ctx, "/stations", nil, &stations); err != nil {
		return nil, apperror.NewProvider("get stations", err)
	}
	return stations, nil
}

func (p *HTTPProvider) SearchTrains(ctx context.Context, from, to, date string) ([]IRTrain, error) {
	query := url.Values{}
	query.Set("from", from)
	query.Set("to", to)
	query.Set("date", date)

	var trains []IRTrain
	if _, err := p.get(ctx, "/trains", query, &trains); err != nil {
		return nil, apperror.NewProvider("search trains", err)
	}
	return trains, nil
}

func (p *HTTPProvider) GetTrainSchedule(ctx context.Context, trainNumber string) (*IRTrainSchedule, error) {
	var schedule IRTrainSchedule
	found, err := p.get(ctx, "/trains/"+url.PathEscape(trainNumber)+"/schedule", nil, &schedule)
	if err != nil {
		return nil, apperror.NewProvider("get train schedule", err)
	}
	if !found {
		return nil, nil
	}
	return &schedule, nil
}

// get decodes a JSON body into dest. A 404 reports found=false without error.
func (p *HTTPProvider) get(ctx context.Context, path string, query url.Values, dest interface{}) (bool, error) {
	endpoint := p.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("request %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", path, err)
	}
	return true, nil
}
