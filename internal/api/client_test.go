package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/recywise/recywise-tui/internal/session"
)

func testClient(srv *httptest.Server) *Client {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(srv.URL+"/api", 2*time.Second, log)
}

func TestDecodeVIN(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if r.URL.Path != "/api/decode_vin/1HGCM82633A004352" {
			t.Errorf("path = %q", r.URL.Path)
		}
		io.WriteString(w, `{"year":"2003","make":"HONDA","model":"Accord"}`)
	}))
	defer srv.Close()

	rec, err := testClient(srv).DecodeVIN(context.Background(), "1HGCM82633A004352")
	if err != nil {
		t.Fatalf("DecodeVIN: %v", err)
	}
	want := session.VehicleRecord{Year: "2003", Make: "HONDA", Model: "Accord"}
	if rec != want {
		t.Errorf("record = %+v, want %+v", rec, want)
	}
}

func TestDecodeVINNumericYear(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"year":2003,"make":"HONDA","model":"Accord"}`)
	}))
	defer srv.Close()

	rec, err := testClient(srv).DecodeVIN(context.Background(), "1HGCM82633A004352")
	if err != nil {
		t.Fatalf("DecodeVIN: %v", err)
	}
	if rec.Year != "2003" {
		t.Errorf("year = %q, want %q", rec.Year, "2003")
	}
}

func TestDecodeVINEscapesPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.EscapedPath(); got != "/api/decode_vin/AB%2FCD%235" {
			t.Errorf("escaped path = %q", got)
		}
		io.WriteString(w, `{"year":"2003","make":"HONDA","model":"Accord"}`)
	}))
	defer srv.Close()

	if _, err := testClient(srv).DecodeVIN(context.Background(), "AB/CD#5"); err != nil {
		t.Fatalf("DecodeVIN: %v", err)
	}
}

func TestDecodeVINServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, `{"detail":"NHTSA lookup failed"}`)
	}))
	defer srv.Close()

	_, err := testClient(srv).DecodeVIN(context.Background(), "1HGCM82633A004352")
	if err == nil {
		t.Fatal("expected an error")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if apiErr.Op != "decode_vin" {
		t.Errorf("op = %q, want %q", apiErr.Op, "decode_vin")
	}
	if apiErr.Status != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", apiErr.Status, http.StatusBadGateway)
	}
	if apiErr.Detail != "NHTSA lookup failed" {
		t.Errorf("detail = %q, want %q", apiErr.Detail, "NHTSA lookup failed")
	}
}

func TestDecodeVINTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := testClient(srv).DecodeVIN(context.Background(), "1HGCM82633A004352")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if apiErr.Status != 0 {
		t.Errorf("status = %d, want 0 for transport failures", apiErr.Status)
	}
	if apiErr.Unwrap() == nil {
		t.Error("transport failure should carry a cause")
	}
}

func TestGeneratePathway(t *testing.T) {
	var mc session.MaterialComposition
	mc.Replace(map[string]float64{"Steel": 60, "Aluminum": 10, "Copper": 5, "Plastics": 15, "Rubber": 5, "Glass": 5})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/api/generate_pathway" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		var req struct {
			Vehicle   session.VehicleRecord `json:"vehicle"`
			Materials map[string]float64    `json:"materials"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("request body: %v", err)
		}
		if req.Vehicle.Make != "Toyota" {
			t.Errorf("vehicle make = %q", req.Vehicle.Make)
		}
		if len(req.Materials) != 6 || req.Materials["Steel"] != 60 {
			t.Errorf("materials = %v", req.Materials)
		}
		io.WriteString(w, `{
			"vehicle": "2015 Toyota Camry",
			"vehicle_weight_lbs": 3300,
			"market_prices_used": {"p_steel": 0.25, "labor_rate": 32.5},
			"pathway": [
				{"sequence": 1, "action": "Dismantle", "estimated_time_mins": 45, "projected_profit": 120.5, "model_score": 0.92}
			]
		}`)
	}))
	defer srv.Close()

	vehicle := session.VehicleRecord{Year: "2015", Make: "Toyota", Model: "Camry"}
	pathway, err := testClient(srv).GeneratePathway(context.Background(), vehicle, mc)
	if err != nil {
		t.Fatalf("GeneratePathway: %v", err)
	}
	if pathway.Vehicle != "2015 Toyota Camry" {
		t.Errorf("vehicle = %q", pathway.Vehicle)
	}
	if len(pathway.Steps) != 1 || pathway.Steps[0].Action != "Dismantle" {
		t.Errorf("steps = %+v", pathway.Steps)
	}
	if pathway.Steps[0].ProjectedProfit != 120.5 {
		t.Errorf("profit = %v, want 120.5", pathway.Steps[0].ProjectedProfit)
	}
}

func TestGeneratePathwayServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"detail":{"error":"model not loaded"}}`)
	}))
	defer srv.Close()

	_, err := testClient(srv).GeneratePathway(context.Background(), session.VehicleRecord{}, session.MaterialComposition{})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if apiErr.Op != "generate_pathway" {
		t.Errorf("op = %q", apiErr.Op)
	}
	if apiErr.Status != http.StatusInternalServerError {
		t.Errorf("status = %d", apiErr.Status)
	}
	if apiErr.Detail == "" {
		t.Error("structured detail should be preserved")
	}
}

func TestEstimateMaterials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/estimate_materials" {
			t.Errorf("path = %q", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"year":2015,"make":"Toyota","model":"Camry"}` {
			t.Errorf("body = %s", body)
		}
		io.WriteString(w, `{"message":"This feature is currently disabled."}`)
	}))
	defer srv.Close()

	vehicle := session.VehicleRecord{Year: "2015", Make: "Toyota", Model: "Camry"}
	msg, err := testClient(srv).EstimateMaterials(context.Background(), vehicle)
	if err != nil {
		t.Fatalf("EstimateMaterials: %v", err)
	}
	if msg != "This feature is currently disabled." {
		t.Errorf("message = %q", msg)
	}
}

func TestClientTrimsTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/decode_vin/ABCDE" {
			t.Errorf("path = %q", r.URL.Path)
		}
		io.WriteString(w, `{"year":"2003","make":"HONDA","model":"Accord"}`)
	}))
	defer srv.Close()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewClient(srv.URL+"/api/", time.Second, log)
	if _, err := c.DecodeVIN(context.Background(), "ABCDE"); err != nil {
		t.Fatalf("DecodeVIN: %v", err)
	}
}
