package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"soilsync/pkg/soilid"
)

type httpEngine struct {
	endpoint string
	key      string
	httpc    *http.Client
}

// NewHTTP talks to a ranking engine exposing POST /list and POST /rank.
func NewHTTP(endpoint, key string, timeout time.Duration) soilid.Engine {
	return &httpEngine{
		endpoint: strings.TrimRight(endpoint, "/"),
		key:      key,
		httpc:    &http.Client{Timeout: timeout},
	}
}

type listResponse struct {
	Failure *string `json:"failure"`
	soilid.ListOutput
}

func (e *httpEngine) ListCandidates(ctx context.Context, lat, lon float64) (soilid.ListResult, error) {
	var out listResponse
	if err := e.post(ctx, "/list", map[string]float64{"lat": lat, "lon": lon}, &out); err != nil {
		return soilid.ListResult{}, err
	}
	if out.Failure != nil {
		return soilid.ListResult{Failure: *out.Failure}, nil
	}
	if out.SoilListJSON == nil {
		return soilid.ListResult{}, fmt.Errorf("list response has neither soilListJson nor failure")
	}
	return soilid.ListResult{Output: &out.ListOutput}, nil
}

func (e *httpEngine) RankCandidates(ctx context.Context, lat, lon float64, list *soilid.ListOutput, in soilid.RankInput) (map[string]any, error) {
	body := struct {
		Lat        float64            `json:"lat"`
		Lon        float64            `json:"lon"`
		ListOutput *soilid.ListOutput `json:"listOutput"`
		soilid.RankInput
	}{Lat: lat, Lon: lon, ListOutput: list, RankInput: in}
	var out map[string]any
	if err := e.post(ctx, "/rank", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *httpEngine) post(ctx context.Context, path string, in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if e.key != "" {
		req.Header.Set("Authorization", "Bearer "+e.key)
	}

	resp, err := e.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("call soil id engine %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("soil id engine %s: status %d: %s", path, resp.StatusCode, bytes.TrimSpace(data))
	}
	if err := soilid.Decode(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
