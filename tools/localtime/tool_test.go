package localtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestTimeLookup(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2.1/get-time-zone" {
			t.Errorf("Expect path /v2.1/get-time-zone, but got %s", r.URL.Path)
		}
		if zone := r.URL.Query().Get("zone"); zone != "Europe/Paris" {
			t.Errorf("Expect zone Europe/Paris, but got %s", zone)
		}
		if by := r.URL.Query().Get("by"); by != "zone" {
			t.Errorf("Expect by=zone, but got %s", by)
		}
		w.Write([]byte(`{"status":"OK","message":"","zoneName":"Europe/Paris","abbreviation":"CET","gmtOffset":3600,"formatted":"2026-03-01 10:30:00"}`))
	}))
	defer srv.Close()
	tool := New(WithAPIKey("test-key"), WithBaseURL(srv.URL))
	output := new(Output)
	if err := tool.Run(ctx, NewInput("Paris"), output); err != nil {
		t.Fatalf("Error running TimeTool: %v", err)
	}
	if !output.Succeeded {
		t.Fatalf("Expect success, but got reason %s (%s)", output.Reason, output.Detail)
	}
	expectRendered := "The current time in Paris (Europe/Paris) is 10:30 on 2026-03-01."
	if output.Rendered != expectRendered {
		t.Errorf("Expect rendered %q, but got %q", expectRendered, output.Rendered)
	}
	if output.GmtOffset != 3600 || output.Abbreviation != "CET" {
		t.Errorf("Expect offset 3600 CET, but got %d %s", output.GmtOffset, output.Abbreviation)
	}
}

func TestTimeUnknownCity(t *testing.T) {
	ctx := context.Background()
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()
	tool := New(WithAPIKey("test-key"), WithBaseURL(srv.URL))
	res := tool.Lookup(ctx, "Atlantis")
	if res.Succeeded || res.Reason != "not_found" {
		t.Errorf("Expect not_found for unknown city, but got succeeded=%v reason=%s", res.Succeeded, res.Reason)
	}
	if calls != 0 {
		t.Errorf("Expect no outbound call for unknown city, but got %d", calls)
	}
}

func TestTimeIANAZonePassthrough(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if zone := r.URL.Query().Get("zone"); zone != "Pacific/Auckland" {
			t.Errorf("Expect zone Pacific/Auckland, but got %s", zone)
		}
		w.Write([]byte(`{"status":"OK","message":"","zoneName":"Pacific/Auckland","abbreviation":"NZDT","gmtOffset":46800,"formatted":"2026-03-01 22:30:00"}`))
	}))
	defer srv.Close()
	tool := New(WithAPIKey("test-key"), WithBaseURL(srv.URL))
	res := tool.Lookup(ctx, "Pacific/Auckland")
	if !res.Succeeded {
		t.Fatalf("Expect success, but got reason %s", res.Reason)
	}
}

func TestTimeProviderFailure(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		message string
		expect  string
	}{
		{"Invalid API key.", "unauthorized"},
		{"Request rate limit exceeded.", "rate_limited"},
		{"Backend unavailable.", "upstream_error"},
	}
	for _, c := range cases {
		body := `{"status":"FAILED","message":"` + c.message + `"}`
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))
		tool := New(WithAPIKey("test-key"), WithBaseURL(srv.URL))
		output := new(Output)
		if err := tool.Run(ctx, NewInput("Paris"), output); err != nil {
			t.Fatalf("Expect no error for provider failure, but got %v", err)
		}
		if output.Succeeded || string(output.Reason) != c.expect {
			t.Errorf("Expect %s for %q, but got succeeded=%v reason=%s", c.expect, c.message, output.Succeeded, output.Reason)
		}
		srv.Close()
	}
}

func TestTimeLocalZones(t *testing.T) {
	ctx := context.Background()
	clock := func() time.Time {
		return time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	}
	tool := New(WithLocalZones(), WithClock(clock))
	res := tool.Lookup(ctx, "Tokyo")
	if !res.Succeeded {
		t.Fatalf("Expect success in local-zone mode, but got reason %s (%s)", res.Reason, res.Detail)
	}
	expect := "The current time in Tokyo (Asia/Tokyo) is 18:30 on 2026-03-01."
	if res.Rendered != expect {
		t.Errorf("Expect rendered %q, but got %q", expect, res.Rendered)
	}
}

func TestTimeMissingKey(t *testing.T) {
	ctx := context.Background()
	tool := New()
	res := tool.Lookup(ctx, "London")
	if res.Succeeded || res.Reason != "unauthorized" {
		t.Errorf("Expect unauthorized without key, but got succeeded=%v reason=%s", res.Succeeded, res.Reason)
	}
}

func TestTimeZeroOffset(t *testing.T) {
	ctx := context.Background()
	// London in winter sits at UTC; a zero offset must survive serialization
	clock := func() time.Time {
		return time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	}
	tool := New(WithLocalZones(), WithClock(clock))
	output := new(Output)
	if err := tool.Run(ctx, NewInput("London"), output); err != nil {
		t.Fatalf("Error running TimeTool: %v", err)
	}
	if !output.Succeeded {
		t.Fatalf("Expect success, but got reason %s (%s)", output.Reason, output.Detail)
	}
	if output.GmtOffset != 0 {
		t.Fatalf("Expect zero offset for London in winter, but got %d", output.GmtOffset)
	}
	if !strings.Contains(output.String(), `"gmt_offset":0`) {
		t.Errorf("Expect gmt_offset in serialized output, but got %s", output.String())
	}
}
