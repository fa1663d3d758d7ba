// Package api is the HTTP gateway to the RecyWise backend. Every method maps
// to one endpoint, makes exactly one attempt, and returns either a decoded
// result or an *Error; callers decide what a failure means for the flow.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/recywise/recywise-tui/internal/session"
)

const (
	opDecodeVIN         = "decode_vin"
	opGeneratePathway   = "generate_pathway"
	opEstimateMaterials = "estimate_materials"
)

// Client talks to one backend. Safe for concurrent use.
type Client struct {
	baseURL string
	httpc   *http.Client
	log     *slog.Logger
}

// NewClient builds a gateway for baseURL (including the /api prefix). timeout
// bounds each call end to end; there is no retry.
func NewClient(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		log:     log,
	}
}

// DecodeVIN resolves a VIN into year, make and model.
func (c *Client) DecodeVIN(ctx context.Context, vin string) (session.VehicleRecord, error) {
	endpoint := c.baseURL + "/decode_vin/" + url.PathEscape(vin)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return session.VehicleRecord{}, &Error{Op: opDecodeVIN, Err: err}
	}
	var rec session.VehicleRecord
	if err := c.do(opDecodeVIN, req, &rec); err != nil {
		return session.VehicleRecord{}, err
	}
	return rec, nil
}

type pathwayRequest struct {
	Vehicle   session.VehicleRecord `json:"vehicle"`
	Materials map[string]float64    `json:"materials"`
}

// GeneratePathway submits the vehicle and its material split and returns the
// backend's ranked recycling plan.
func (c *Client) GeneratePathway(ctx context.Context, vehicle session.VehicleRecord, materials session.MaterialComposition) (session.Pathway, error) {
	payload, _ := json.Marshal(pathwayRequest{Vehicle: vehicle, Materials: materials.Map()})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate_pathway", bytes.NewReader(payload))
	if err != nil {
		return session.Pathway{}, &Error{Op: opGeneratePathway, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	var pathway session.Pathway
	if err := c.do(opGeneratePathway, req, &pathway); err != nil {
		return session.Pathway{}, err
	}
	return pathway, nil
}

type estimateRequest struct {
	Year  int    `json:"year"`
	Make  string `json:"make"`
	Model string `json:"model"`
}

// EstimateMaterials asks the backend to estimate a composition from the
// vehicle alone. The endpoint exists but is not live; the backend answers
// with a notice, which is returned verbatim. Nothing in the wizard calls
// this yet.
func (c *Client) EstimateMaterials(ctx context.Context, vehicle session.VehicleRecord) (string, error) {
	year, _ := strconv.Atoi(vehicle.Year)
	payload, _ := json.Marshal(estimateRequest{Year: year, Make: vehicle.Make, Model: vehicle.Model})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/estimate_materials", bytes.NewReader(payload))
	if err != nil {
		return "", &Error{Op: opEstimateMaterials, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(opEstimateMaterials, req, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) do(op string, req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Error("api call failed", "op", op, "err", err)
		return &Error{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail := readDetail(resp.Body)
		c.log.Error("api call rejected", "op", op, "status", resp.StatusCode, "detail", detail, "elapsed", time.Since(start))
		return &Error{Op: op, Status: resp.StatusCode, Detail: detail}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.Error("api response unreadable", "op", op, "err", err)
		return &Error{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	c.log.Info("api call ok", "op", op, "elapsed", time.Since(start))
	return nil
}

// readDetail extracts the message from a FastAPI error body, which is
// {"detail": "..."} or {"detail": {...}} depending on the failure.
func readDetail(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(body) == 0 {
		return ""
	}
	var wrapper struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &wrapper); err != nil || len(wrapper.Detail) == 0 {
		return strings.TrimSpace(string(body))
	}
	var msg string
	if err := json.Unmarshal(wrapper.Detail, &msg); err == nil {
		return msg
	}
	return string(wrapper.Detail)
}
