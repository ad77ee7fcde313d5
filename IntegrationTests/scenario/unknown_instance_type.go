package scenario

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const scenarioUnknownInstanceType = "unknown_instance_type"

func init() {
	Register(scenarioUnknownInstanceType, runUnknownInstanceType)
}

// runUnknownInstanceType expects 400 with error code bad_parameter for a type outside the enum.
func runUnknownInstanceType(ctx context.Context, cfg *Config) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	status, body, err := Get(ctx, cfg, "/api/by_instance_type/gpu")
	if err != nil {
		return err
	}
	if status != http.StatusBadRequest {
		return &UnexpectedStatusError{Path: "/api/by_instance_type/gpu", Got: status, Want: http.StatusBadRequest, Body: string(body)}
	}
	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("decode error body: %w", err)
	}
	if resp.Error.Code != "bad_parameter" {
		return fmt.Errorf("error code=%q, want bad_parameter", resp.Error.Code)
	}
	return nil
}
