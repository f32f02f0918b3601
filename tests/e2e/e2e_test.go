//go:build e2e

package e2e

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"
)

// Сервис должен быть поднят с применёнными миграциями из migrations/.
func baseURL() string {
	if u := os.Getenv("E2E_BASE_URL"); u != "" {
		return u
	}
	return "http://localhost:8090"
}

func TestE2E_ProfilePage(t *testing.T) {
	waitForService(t)

	client := &http.Client{Timeout: 5 * time.Second}

	t.Log("Step 1: Seeded user page")
	resp, err := client.Get(baseURL() + "/@gopher")
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	body := readAll(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Step 1 Failed: Expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "<title>@gopher</title>") {
		t.Fatalf("Step 1 Failed: title not found in %q", body)
	}
	if !strings.Contains(body, `data-user-id="`) {
		t.Errorf("Step 1 Failed: posts carousel not rendered")
	}
	t.Log("Step 1: Success")

	t.Log("Step 2: Cached page is identical")
	resp, err = client.Get(baseURL() + "/@gopher")
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	if again := readAll(t, resp); again != body {
		t.Errorf("Step 2 Failed: cached page differs from the first render")
	}
	t.Log("Step 2: Success")

	t.Log("Step 3: Unknown user renders placeholder")
	unknown := fmt.Sprintf("/@nobody-%d", time.Now().UnixNano())
	resp, err = client.Get(baseURL() + unknown)
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	if got := readAll(t, resp); got != "<div>404</div>" {
		t.Errorf("Step 3 Failed: expected placeholder, got %q", got)
	}
	t.Log("Step 3: Success")

	t.Log("Step 4: RPC transport")
	input := url.QueryEscape(`{"username":"gopher"}`)
	resp, err = client.Get(baseURL() + "/api/rpc/profile.getUserByUsername?input=" + input)
	if err != nil {
		t.Fatalf("Failed to call rpc: %v", err)
	}
	defer resp.Body.Close()

	var rpcResp struct {
		Result struct {
			Data *struct {
				ID       string `json:"id"`
				Username string `json:"username"`
			} `json:"data"`
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		t.Fatal("Failed to decode rpc response:", err)
	}
	if rpcResp.Result.Data == nil || rpcResp.Result.Data.Username != "gopher" {
		t.Errorf("Step 4 Failed: unexpected rpc data %+v", rpcResp.Result.Data)
	}
	t.Log("Step 4: Success")
}

func readAll(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	return string(b)
}

func waitForService(t *testing.T) {
	t.Log("Waiting for service to start...")
	timeout := time.After(60 * time.Second)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			t.Fatal("Service did not start in time")
		case <-ticker.C:
			resp, err := http.Get(baseURL() + "/health")
			if err == nil && resp.StatusCode == http.StatusOK {
				resp.Body.Close()
				t.Log("Service is UP!")
				return
			}
		}
	}
}
