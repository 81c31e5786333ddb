package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultAPIURL = "http://localhost:8080"

// apiClient returns a resty client aimed at the running service.
func apiClient() *resty.Client {
	baseURL := os.Getenv("API_URL")
	if baseURL == "" {
		baseURL = defaultAPIURL
	}

	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Minute). // sync runs block until completion
		SetHeader("Content-Type", "application/json").
		SetHeader("X-API-Key", os.Getenv("API_KEY"))
}

func runSync(args []string) error {
	body := map[string]bool{"sync_categories": true, "sync_products": true}
	for _, arg := range args {
		switch arg {
		case "--categories-only":
			body["sync_products"] = false
		case "--products-only":
			body["sync_categories"] = false
		default:
			return fmt.Errorf("unknown flag %q", arg)
		}
	}

	resp, err := apiClient().R().SetBody(body).Post("/api/v1/sync/run")
	if err != nil {
		return err
	}
	return printResponse(resp)
}

func runStatus() error {
	resp, err := apiClient().R().Get("/api/v1/sync/status")
	if err != nil {
		return err
	}
	return printResponse(resp)
}

func runClearLock() error {
	resp, err := apiClient().R().Post("/api/v1/sync/clear-lock")
	if err != nil {
		return err
	}
	return printResponse(resp)
}

func runStats(args []string) error {
	rangeType := "daily"
	if len(args) > 0 {
		rangeType = args[0]
	}

	resp, err := apiClient().R().
		SetQueryParam("range", rangeType).
		Get("/api/v1/stats")
	if err != nil {
		return err
	}
	return printResponse(resp)
}

// printResponse pretty-prints the JSON body and fails on non-2xx statuses.
func printResponse(resp *resty.Response) error {
	var pretty map[string]interface{}
	if err := json.Unmarshal(resp.Body(), &pretty); err != nil {
		fmt.Println(string(resp.Body()))
	} else {
		out, _ := json.MarshalIndent(pretty, "", "  ")
		fmt.Println(string(out))
	}

	if resp.IsError() {
		return fmt.Errorf("request failed with status %d", resp.StatusCode())
	}
	return nil
}
