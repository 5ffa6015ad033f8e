package harness

import (
	"context"
	"fmt"

	"ffmtest/internal/client"
	"ffmtest/internal/config"
	"ffmtest/internal/domain"
	"ffmtest/internal/ui"
)

// ProductionSuite runs read-only checks against production. Its constructor
// refuses any configuration that could issue a write, and the explicit
// write methods below are blocked before they reach the client.
type ProductionSuite struct {
	baseSuite

	// Optional IDs supplied by the operator for detail lookups
	sampleArtistID    string
	sampleSmartlinkID string
}

// NewProductionSuite creates the production suite
func NewProductionSuite(cfg *config.Config, api *client.Client, out *ui.Printer) (*ProductionSuite, error) {
	if cfg.Environment != config.Production {
		return nil, fmt.Errorf("production suite requires the production environment, got %s", cfg.Environment)
	}
	if cfg.CanWrite() {
		return nil, fmt.Errorf("refusing to run: production configuration reports writes as permitted")
	}
	return &ProductionSuite{
		baseSuite:         newBaseSuite(cfg, api, out),
		sampleArtistID:    cfg.Flags.ArtistID,
		sampleSmartlinkID: cfg.Flags.SmartlinkID,
	}, nil
}

// Title implements Suite
func (s *ProductionSuite) Title() string {
	return "Production Test Suite (READ-ONLY)"
}

// Cases implements Suite. A failed basic auth aborts the rest: without
// valid credentials every remaining case would just repeat the failure.
func (s *ProductionSuite) Cases() []Case {
	return []Case{
		{Name: "basic_auth", Run: func(ctx context.Context) error {
			if !s.testBasicAuth(ctx) {
				s.out.Status("Authentication failed. Stopping tests.", domain.StatusFailed, 0)
				return ErrAborted
			}
			return nil
		}},
		{Name: "jwt_auth", Run: func(ctx context.Context) error { s.testJWTAuth(ctx); return nil }},
		{Name: "list_artists", Run: func(ctx context.Context) error { s.testListArtists(ctx); return nil }},
		{Name: "search_artists", Run: func(ctx context.Context) error { s.testSearchArtists(ctx, "test"); return nil }},
		{Name: "get_artist_details", Run: func(ctx context.Context) error { s.testGetArtistDetails(ctx); return nil }},
		{Name: "list_actionpages", Run: func(ctx context.Context) error { s.testListActionPages(ctx); return nil }},
		{Name: "search_actionpages", Run: func(ctx context.Context) error { s.testSearchActionPages(ctx, ""); return nil }},
		{Name: "get_smartlink", Run: func(ctx context.Context) error { s.testGetSmartlink(ctx); return nil }},
	}
}

func (s *ProductionSuite) testListArtists(ctx context.Context) {
	s.out.Test("List Artists (READ-ONLY)")

	resp, details, err := s.request(ctx, client.Request{Endpoint: "/artists"})
	if err != nil || !resp.OK() {
		s.record("list_artists", domain.StatusFailed, "Failed to list artists", details)
		return
	}

	// Summary counts only; production data stays out of the terminal
	msg := "Artists retrieved"
	if n := listLen(resp.Data); n >= 0 {
		msg = fmt.Sprintf("Found %d production artists", n)
	}
	s.record("list_artists", domain.StatusPassed, msg, details)
}

func (s *ProductionSuite) testSearchArtists(ctx context.Context, term string) {
	s.out.Test(fmt.Sprintf("Search Artists: %q (READ-ONLY)", term))

	resp, details, err := s.request(ctx, client.Request{
		Endpoint: "/artists/search",
		Query:    map[string]string{"term": term},
	})
	if err != nil || !resp.OK() {
		s.record("search_artists", domain.StatusWarning, "Search failed or not available", details)
		return
	}

	msg := "Search completed"
	if n := listLen(resp.Data); n >= 0 {
		msg = fmt.Sprintf("Found %d matching artists", n)
	}
	s.record("search_artists", domain.StatusPassed, msg, details)
}

func (s *ProductionSuite) testGetArtistDetails(ctx context.Context) {
	s.out.Test("Get Artist Details (READ-ONLY)")

	if s.sampleArtistID == "" {
		s.record("get_artist_details", domain.StatusSkipped, "No sample artist ID provided", map[string]any{"reason": "no artist id"})
		return
	}

	resp, details, err := s.request(ctx, client.Request{Endpoint: "/artist/" + s.sampleArtistID})
	if err != nil || !resp.OK() {
		s.record("get_artist_details", domain.StatusFailed, "Failed to get artist details", details)
		return
	}
	s.record("get_artist_details", domain.StatusPassed, "Retrieved artist data successfully", details)
}

func (s *ProductionSuite) testListActionPages(ctx context.Context) {
	s.out.Test("List Action Pages (READ-ONLY)")

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

func (s *ProductionSuite) testSearchActionPages(ctx context.Context, term string) {
	s.out.Test("Search Action Pages (READ-ONLY)")

	resp, details, err := s.request(ctx, client.Request{
		Endpoint: "/actionpages/search",
		Query:    map[string]string{"term": term},
	})
	if err != nil || !resp.OK() {
		s.record("search_actionpages", domain.StatusWarning, "Search failed or not available", details)
		return
	}

	msg := "Search completed"
	if n := listLen(resp.Data); n >= 0 {
		msg = fmt.Sprintf("Found %d matching action pages", n)
	}
	s.record("search_actionpages", domain.StatusPassed, msg, details)
}

func (s *ProductionSuite) testGetSmartlink(ctx context.Context) {
	s.out.Test("Get SmartLink Details (READ-ONLY)")

	if s.sampleSmartlinkID == "" {
		s.record("get_smartlink", domain.StatusSkipped, "No sample smartlink ID provided", map[string]any{"reason": "no smartlink id"})
		return
	}

	resp, details, err := s.request(ctx, client.Request{Endpoint: "/smartlink/" + s.sampleSmartlinkID})
	if err != nil || !resp.OK() {
		s.record("get_smartlink", domain.StatusFailed, "Failed to get SmartLink details", details)
		return
	}
	s.record("get_smartlink", domain.StatusPassed, "SmartLink data retrieved successfully", details)
}

// blockWrite records and rejects an attempted write without dispatching it
func (s *ProductionSuite) blockWrite(operation string) error {
	err := fmt.Errorf("%w: attempted to execute write operation %q in the production environment",
		client.ErrWriteBlocked, operation)
	s.out.Status(err.Error(), domain.StatusFailed, 1)
	return err
}

// The write surface exists on the production suite only to refuse

// CreateArtist is blocked in production
func (s *ProductionSuite) CreateArtist() error { return s.blockWrite("create_artist") }

// CreateSmartlink is blocked in production
func (s *ProductionSuite) CreateSmartlink(artistID string) error {
	return s.blockWrite("create_smartlink")
}

// CreatePresave is blocked in production
func (s *ProductionSuite) CreatePresave(artistID string) error { return s.blockWrite("create_presave") }

// UpdateArtist is blocked in production
func (s *ProductionSuite) UpdateArtist(artistID string) error { return s.blockWrite("update_artist") }

// DeleteResource is blocked in production
func (s *ProductionSuite) DeleteResource(resourceID string) error {
	return s.blockWrite("delete_resource")
}
