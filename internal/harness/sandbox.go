package harness

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ffmtest/internal/client"
	"ffmtest/internal/config"
	"ffmtest/internal/domain"
	"ffmtest/internal/ui"
)

// SandboxSuite exercises the full read+write surface against the sandbox
type SandboxSuite struct {
	baseSuite

	// IDs created during the run, reused by later cases and listed at the end
	artistID string
	created  map[string][]string
	now      func() time.Time
}

// NewSandboxSuite creates the sandbox suite. Only a sandbox config is
// accepted; everything else is a caller bug.
func NewSandboxSuite(cfg *config.Config, api *client.Client, out *ui.Printer) (*SandboxSuite, error) {
	if cfg.Environment != config.Sandbox {
		return nil, fmt.Errorf("sandbox suite requires the sandbox environment, got %s", cfg.Environment)
	}
	return &SandboxSuite{
		baseSuite: newBaseSuite(cfg, api, out),
		created:   map[string][]string{},
		now:       time.Now,
	}, nil
}

// Title implements Suite
func (s *SandboxSuite) Title() string {
	return "Sandbox Test Suite"
}

// CreatedResources returns the IDs created during this run, keyed by kind
func (s *SandboxSuite) CreatedResources() map[string][]string {
	return s.created
}

// Cases implements Suite. The order matters: created resources feed the
// cases after them.
func (s *SandboxSuite) Cases() []Case {
	return []Case{
		{Name: "basic_auth", Run: func(ctx context.Context) error { s.testBasicAuth(ctx); return nil }},
		{Name: "jwt_auth", Run: func(ctx context.Context) error { s.testJWTAuth(ctx); return nil }},
		{Name: "list_artists", Run: func(ctx context.Context) error { s.testListArtists(ctx); return nil }},
		{Name: "create_artist", Run: func(ctx context.Context) error { s.testCreateArtist(ctx); return nil }},
		{Name: "get_artist_details", Run: func(ctx context.Context) error { s.testGetArtistDetails(ctx); return nil }},
		{Name: "create_smartlink", Run: func(ctx context.Context) error { s.testCreateSmartlink(ctx); return nil }},
		{Name: "create_presave", Run: func(ctx context.Context) error { s.testCreatePresave(ctx); return nil }},
		{Name: "list_actionpages", Run: func(ctx context.Context) error { s.testListActionPages(ctx); return nil }},
	}
}

func (s *SandboxSuite) testListArtists(ctx context.Context) {
	s.out.Test("List Artists")

	resp, details, err := s.request(ctx, client.Request{Endpoint: "/artists"})
	if err != nil || !resp.OK() {
		s.record("list_artists", domain.StatusFailed, "Failed to list artists", details)
		return
	}

	if n := listLen(resp.Data); n >= 0 {
		s.record("list_artists", domain.StatusPassed, fmt.Sprintf("Found %d artists", n), details)
		for i, item := range resp.Data.([]any) {
			if i >= 3 {
				break
			}
			s.out.Plain(fmt.Sprintf("Artist: %s (ID: %s)", stringField(item, "artistName"), stringField(item, "id")), 2)
		}
		return
	}

	s.out.Status("No artists found or unexpected format", domain.StatusWarning, 1)
	s.report.Record("list_artists", domain.StatusPassed, details)
}

func (s *SandboxSuite) testCreateArtist(ctx context.Context) {
	s.out.Test("Create Artist (WRITE OPERATION)")

	if err := s.cfg.RequireWritePermission(); err != nil {
		s.record("create_artist", domain.StatusSkipped, err.Error(), map[string]any{"reason": err.Error()})
		return
	}

	body := map[string]any{
		"artistName":  fmt.Sprintf("Sandbox Test Artist %s", s.now().Format("20060102_150405")),
		"type":        "artist",
		"countryCode": "US",
		"shortBio":    "Created by automated sandbox test suite",
		"artistImage": "https://via.placeholder.com/500",
		"tags":        []string{"test", "sandbox", "automated"},
	}

	resp, details, err := s.request(ctx, client.Request{Endpoint: "/artist", Method: "POST", Body: body})
	if err != nil {
		s.record("create_artist", domain.StatusFailed, fmt.Sprintf("Failed to create artist: %v", err), details)
		return
	}

	switch {
	case resp.OK():
		id := stringField(resp.Data, "id")
		name := stringField(resp.Data, "artistName")
		if name == "" {
			name = body["artistName"].(string)
		}
		s.record("create_artist", domain.StatusPassed, fmt.Sprintf("Artist created: %s (ID: %s)", name, id), details)
		if id != "" {
			s.artistID = id
			s.created["Artists"] = append(s.created["Artists"], id)
		}
	case resp.StatusCode == 403:
		s.record("create_artist", domain.StatusWarning, "Create artist not permitted", details)
	default:
		s.record("create_artist", domain.StatusFailed, "Failed to create artist", details)
	}
}

func (s *SandboxSuite) testGetArtistDetails(ctx context.Context) {
	s.out.Test(fmt.Sprintf("Get Artist Details (ID: %s)", s.artistID))

	if s.artistID == "" {
		s.record("get_artist_details", domain.StatusSkipped, "No artist created to look up", map[string]any{"reason": "no artist id"})
		return
	}

	resp, details, err := s.request(ctx, client.Request{Endpoint: "/artist/" + s.artistID})
	if err != nil || !resp.OK() {
		s.record("get_artist_details", domain.StatusFailed, "Failed to get artist details", details)
		return
	}

	s.record("get_artist_details", domain.StatusPassed,
		fmt.Sprintf("Retrieved artist: %s", stringField(resp.Data, "artistName")), details)
	s.out.Plain(fmt.Sprintf("Type: %s", stringField(resp.Data, "type")), 2)
	s.out.Plain(fmt.Sprintf("Country: %s", stringField(resp.Data, "countryCode")), 2)
}

func (s *SandboxSuite) testCreateSmartlink(ctx context.Context) {
	s.out.Test("Create Smart Link (WRITE OPERATION)")

	if err := s.cfg.RequireWritePermission(); err != nil {
		s.record("create_smartlink", domain.StatusSkipped, err.Error(), map[string]any{"reason": err.Error()})
		return
	}
	if s.artistID == "" {
		s.record("create_smartlink", domain.StatusSkipped, "No artist to attach the smartlink to", map[string]any{"reason": "no artist id"})
		return
	}

	now := s.now().Unix()
	body := map[string]any{
		"artistId":    s.artistID,
		"shortId":     fmt.Sprintf("test-%d", now),
		"domain":      "https://ffm.to",
		"title":       fmt.Sprintf("Sandbox Test Link %d", now),
		"image":       "https://via.placeholder.com/500",
		"description": "Test smartlink created by automated sandbox tests",
		"stores": []map[string]any{
			{"storeId": "spotify", "url": "https://open.spotify.com/track/3n3Ppam7vgaVa1iaRUc9Lp"},
			{"storeId": "apple", "url": "https://music.apple.com/us/album/test/123456789"},
		},
	}

	resp, details, err := s.request(ctx, client.Request{Endpoint: "/smartlink", Method: "POST", Body: body})
	if err != nil || !resp.OK() {
		s.record("create_smartlink", domain.StatusFailed, "Failed to create smart link", details)
		return
	}

	id := stringField(resp.Data, "id")
	s.record("create_smartlink", domain.StatusPassed, "Smart link created successfully", details)
	s.out.Plain(fmt.Sprintf("ID: %s", id), 2)
	if id != "" {
		s.created["SmartLinks"] = append(s.created["SmartLinks"], id)
	}
}

func (s *SandboxSuite) testCreatePresave(ctx context.Context) {
	s.out.Test("Create Pre-Save Campaign (WRITE OPERATION)")

	if err := s.cfg.RequireWritePermission(); err != nil {
		s.record("create_presave", domain.StatusSkipped, err.Error(), map[string]any{"reason": err.Error()})
		return
	}
	if s.artistID == "" {
		s.record("create_presave", domain.StatusSkipped, "No artist to attach the campaign to", map[string]any{"reason": "no artist id"})
		return
	}

	now := s.now()
	body := map[string]any{
		"artistId":    s.artistID,
		"releaseDate": now.AddDate(0, 0, 30).Format("2006-01-02"),
		"timezone":    "America/New_York",
		"shortId":     fmt.Sprintf("presave-%d", now.Unix()),
		"domain":      "https://ffm.to",
		"title":       fmt.Sprintf("Sandbox Pre-Save %s", now.Format("20060102")),
		"image":       "https://via.placeholder.com/500",
		"stores": []map[string]any{
			{"storeId": "spotify", "url": "https://open.spotify.com/album/1DFixLWuPkv3KT3TnV35m3"},
		},
	}

	resp, details, err := s.request(ctx, client.Request{Endpoint: "/smartlink/pre-save", Method: "POST", Body: body})
	if err != nil {
		s.record("create_presave", domain.StatusFailed, "Failed to create pre-save campaign", details)
		return
	}

	if resp.OK() {
		id := stringField(resp.Data, "id")
		s.record("create_presave", domain.StatusPassed, "Pre-save campaign created", details)
		s.out.Plain(fmt.Sprintf("ID: %s", id), 2)
		if id != "" {
			s.created["Pre-Saves"] = append(s.created["Pre-Saves"], id)
		}
		return
	}

	// Store URL scraping rejects placeholder links; that's the test data's
	// fault, not the API's
	if strings.Contains(stringField(resp.Data, "message"), "scraping failed") {
		s.record("create_presave", domain.StatusWarning, "Pre-save validation failed (expected with test data)", details)
		return
	}
	s.record("create_presave", domain.StatusFailed, "Failed to create pre-save campaign", details)
}

func (s *SandboxSuite) testListActionPages(ctx context.Context) {
	s.out.Test("List Action Pages")

	resp, details, err := s.request(ctx, client.Request{Endpoint: "/actionpages"})
	if err != nil || !resp.OK() {
		s.record("list_actionpages", domain.StatusWarning, "Failed to list action pages", details)
		return
	}

	msg := "Action pages retrieved"
	if n := listLen(resp.Data); n >= 0 {
		msg = fmt.Sprintf("Found %d action pages", n)
	}
	s.record("list_actionpages", domain.StatusPassed, msg, details)
}
