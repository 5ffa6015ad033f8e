package harness

import (
	"context"
	"fmt"
	"time"

	"ffmtest/internal/client"
	"ffmtest/internal/config"
	"ffmtest/internal/domain"
	"ffmtest/internal/ui"
)

// CompleteSuite probes all three Feature.fm API families: Marketing,
// Publisher and Conversion. Publisher and Conversion endpoints live at the
// API host root rather than under /manage/v1, and may not be enabled for
// every account, so unavailability is a warning rather than a failure.
type CompleteSuite struct {
	baseSuite

	availability map[string]*bool
	now          func() time.Time
}

// NewCompleteSuite creates the all-APIs suite for either environment
func NewCompleteSuite(cfg *config.Config, api *client.Client, out *ui.Printer) *CompleteSuite {
	s := &CompleteSuite{
		baseSuite:    newBaseSuite(cfg, api, out),
		availability: map[string]*bool{},
		now:          time.Now,
	}
	return s
}

// Title implements Suite
func (s *CompleteSuite) Title() string {
	return "Complete API Test Suite"
}

// Availability reports which API families responded during the run
func (s *CompleteSuite) Availability() map[string]*bool {
	return s.availability
}

func (s *CompleteSuite) markAvailable(api string, ok bool) {
	s.availability[api] = &ok
}

// Cases implements Suite
func (s *CompleteSuite) Cases() []Case {
	return []Case{
		{Name: "basic_auth", Run: func(ctx context.Context) error { s.testBasicAuth(ctx); return nil }},
		{Name: "jwt_auth", Run: func(ctx context.Context) error { s.testJWTAuth(ctx); return nil }},
		{Name: "marketing_list_artists", Run: func(ctx context.Context) error { s.testMarketingListArtists(ctx); return nil }},
		{Name: "marketing_search_artists", Run: func(ctx context.Context) error { s.testMarketingSearchArtists(ctx, "test"); return nil }},
		{Name: "marketing_list_smartlinks", Run: func(ctx context.Context) error { s.testMarketingListSmartlinks(ctx); return nil }},
		{Name: "marketing_create_artist", Run: func(ctx context.Context) error { s.testMarketingCreateArtist(ctx); return nil }},
		{Name: "publisher_identify_consumer", Run: func(ctx context.Context) error { s.testPublisherIdentifyConsumer(ctx); return nil }},
		{Name: "publisher_featured_song", Run: func(ctx context.Context) error { s.testPublisherFeaturedSong(ctx); return nil }},
		{Name: "publisher_track_play", Run: func(ctx context.Context) error { s.testPublisherTrackEvent(ctx, "play"); return nil }},
		{Name: "publisher_track_like", Run: func(ctx context.Context) error { s.testPublisherTrackEvent(ctx, "like"); return nil }},
		{Name: "conversion_init_session", Run: func(ctx context.Context) error { s.testConversionInitSession(ctx); return nil }},
		{Name: "conversion_report_transaction", Run: func(ctx context.Context) error { s.testConversionReportTransaction(ctx); return nil }},
	}
}

// ---------- Marketing API

func (s *CompleteSuite) testMarketingListArtists(ctx context.Context) {
	s.out.Test("[MARKETING API] List Artists")

	resp, details, err := s.request(ctx, client.Request{Endpoint: "/artists"})
	if err != nil || !resp.OK() {
		s.markAvailable("Marketing API", false)
		s.record("marketing_list_artists", domain.StatusFailed, "Failed to list artists", details)
		return
	}

	s.markAvailable("Marketing API", true)
	msg := "Artists retrieved"
	if n := listLen(resp.Data); n >= 0 {
		msg = fmt.Sprintf("Found %d artists", n)
	}
	s.record("marketing_list_artists", domain.StatusPassed, msg, details)
}

func (s *CompleteSuite) testMarketingSearchArtists(ctx context.Context, term string) {
	s.out.Test(fmt.Sprintf("[MARKETING API] Search Artists: %q", term))

	resp, details, err := s.request(ctx, client.Request{
		Endpoint: "/artists/search",
		Query:    map[string]string{"term": term},
	})
	if err != nil || !resp.OK() {
		s.record("marketing_search_artists", domain.StatusWarning, "Search failed or not available", details)
		return
	}

	msg := "Search completed"
	if n := listLen(resp.Data); n >= 0 {
		msg = fmt.Sprintf("Found %d matching artists", n)
	}
	s.record("marketing_search_artists", domain.StatusPassed, msg, details)
}

func (s *CompleteSuite) testMarketingListSmartlinks(ctx context.Context) {
	s.out.Test("[MARKETING API] List SmartLinks")

	resp, details, err := s.request(ctx, client.Request{Endpoint: "/smartlinks"})
	if err != nil {
		s.record("marketing_list_smartlinks", domain.StatusFailed, "Failed to list smartlinks", details)
		return
	}

	switch {
	case resp.OK():
		msg := "SmartLinks retrieved"
		if n := listLen(resp.Data); n >= 0 {
			msg = fmt.Sprintf("Found %d smartlinks", n)
		}
		s.record("marketing_list_smartlinks", domain.StatusPassed, msg, details)
	case resp.StatusCode == 404:
		s.record("marketing_list_smartlinks", domain.StatusWarning, "SmartLinks list endpoint not available", details)
	default:
		s.record("marketing_list_smartlinks", domain.StatusFailed, "Failed to list smartlinks", details)
	}
}

func (s *CompleteSuite) testMarketingCreateArtist(ctx context.Context) {
	s.out.Test("[MARKETING API] Create Artist (WRITE)")

	if !s.cfg.CanWrite() {
		s.record("marketing_create_artist", domain.StatusSkipped, "Skipped - Write operations disabled", map[string]any{"reason": "Write disabled"})
		return
	}

	body := map[string]any{
		"artistName":  fmt.Sprintf("API Test Artist %s", s.now().Format("20060102_150405")),
		"type":        "artist",
		"countryCode": "US",
		"shortBio":    "Created by complete API test suite",
		"tags":        []string{"test", "api-testing"},
	}

	resp, details, err := s.request(ctx, client.Request{Endpoint: "/artist", Method: "POST", Body: body})
	if err != nil || !resp.OK() {
		s.record("marketing_create_artist", domain.StatusFailed, "Failed to create artist", details)
		return
	}
	s.record("marketing_create_artist", domain.StatusPassed,
		fmt.Sprintf("Artist created: %s", stringField(resp.Data, "id")), details)
}

// ---------- Publisher API

// publisherPost sends one host-root POST and applies the shared
// availability/warning handling for optional API families
func (s *CompleteSuite) publisherPost(ctx context.Context, testName, endpoint string, body map[string]any, api string) (*domain.Response, bool) {
	if !s.cfg.CanWrite() {
		s.record(testName, domain.StatusSkipped, "Skipped - Write operations disabled", map[string]any{"reason": "Write disabled"})
		return nil, false
	}

	resp, details, err := s.request(ctx, client.Request{
		Endpoint:     endpoint,
		Method:       "POST",
		Body:         body,
		BaseOverride: s.cfg.BaseURL,
	})
	if err != nil || !resp.OK() {
		if api != "" {
			s.markAvailable(api, false)
		}
		s.record(testName, domain.StatusWarning, "Endpoint not available or requires different auth", details)
		return resp, false
	}

	if api != "" {
		s.markAvailable(api, true)
	}
	return resp, true
}

func (s *CompleteSuite) testPublisherIdentifyConsumer(ctx context.Context) {
	s.out.Test("[PUBLISHER API] Identify Consumer")

	body := map[string]any{
		"consumerId": fmt.Sprintf("test_consumer_%d", s.now().Unix()),
		"platform":   "test",
		"timestamp":  s.now().Format(time.RFC3339),
	}
	resp, ok := s.publisherPost(ctx, "publisher_identify_consumer", "/consumer/identify", body, "Publisher API")
	if !ok {
		return
	}
	s.record("publisher_identify_consumer", domain.StatusPassed, "Consumer identified successfully", resp.Details())
}

func (s *CompleteSuite) testPublisherFeaturedSong(ctx context.Context) {
	s.out.Test("[PUBLISHER API] Get Featured Song")

	resp, ok := s.publisherPost(ctx, "publisher_featured_song", "/featured/song", map[string]any{}, "")
	if !ok {
		return
	}
	s.record("publisher_featured_song", domain.StatusPassed, "Featured song retrieved", resp.Details())
	if title := stringField(resp.Data, "title"); title != "" {
		s.out.Plain("Song: "+title, 2)
	}
}

func (s *CompleteSuite) testPublisherTrackEvent(ctx context.Context, eventType string) {
	s.out.Test(fmt.Sprintf("[PUBLISHER API] Track Event: %s", eventType))

	testName := "publisher_track_" + eventType
	endpoint := fmt.Sprintf("/event/test_play_%d/%s", s.now().Unix(), eventType)
	body := map[string]any{
		"timestamp": s.now().Format(time.RFC3339),
		"platform":  "test",
	}
	resp, ok := s.publisherPost(ctx, testName, endpoint, body, "")
	if !ok {
		return
	}
	s.record(testName, domain.StatusPassed, fmt.Sprintf("Event %q tracked successfully", eventType), resp.Details())
}

// ---------- Conversion API

func (s *CompleteSuite) testConversionInitSession(ctx context.Context) {
	s.out.Test("[CONVERSION API] Initialize Session")

	body := map[string]any{
		"sessionId": fmt.Sprintf("test_session_%d", s.now().Unix()),
		"timestamp": s.now().Format(time.RFC3339),
		"platform":  "test",
	}
	resp, ok := s.publisherPost(ctx, "conversion_init_session", "/conversion/session/init", body, "Conversion API")
	if !ok {
		return
	}
	s.record("conversion_init_session", domain.StatusPassed, "Conversion session initialized", resp.Details())
}

func (s *CompleteSuite) testConversionReportTransaction(ctx context.Context) {
	s.out.Test("[CONVERSION API] Report Transaction")

	body := map[string]any{
		"transactionId": fmt.Sprintf("test_txn_%d", s.now().Unix()),
		"amount":        9.99,
		"currency":      "USD",
		"timestamp":     s.now().Format(time.RFC3339),
	}
	resp, ok := s.publisherPost(ctx, "conversion_report_transaction", "/conversion/transaction", body, "")
	if !ok {
		return
	}
	s.record("conversion_report_transaction", domain.StatusPassed, "Transaction reported successfully", resp.Details())
}
