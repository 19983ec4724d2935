// Package gsheets reads declaration sheets from Google Sheets.
package gsheets

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/zeebo/xxh3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/ukaji3/xparse-go/pkg/xparse/grid"
)

// Client reads spreadsheet values.
type Client struct {
	service *sheets.Service
}

// Snapshot is a fetched sheet as an in-memory grid.
type Snapshot struct {
	Grid *grid.Memory
	// Range is the A1 range the API returned, e.g. "Sheet1!A1:Z787".
	Range string
	// Checksum is the hex xxh3 digest of the fetched values.
	Checksum string
}

// NewClient creates a client authenticated with a service-account credentials file.
func NewClient(ctx context.Context, credentialsFile string) (*Client, error) {
	return NewClientWithOptions(ctx, option.WithCredentialsFile(credentialsFile))
}

// NewClientWithOptions creates a client from arbitrary API options.
func NewClientWithOptions(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &Client{service: service}, nil
}

// Load reads columns A-Z of sheet. An empty sheet name reads the first sheet.
func (c *Client) Load(ctx context.Context, spreadsheetID, sheet string) (*Snapshot, error) {
	rng := "A:Z"
	if sheet != "" {
		rng = fmt.Sprintf("'%s'!A:Z", sheet)
	}
	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, rng).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	raw, err := json.Marshal(resp.Values)
	if err != nil {
		return nil, fmt.Errorf("encode values: %w", err)
	}
	g := FromValues(resp.Values)
	log.Debug().Str("range", resp.Range).Int("rows", g.MaxRow()).Msg("sheet fetched")
	return &Snapshot{
		Grid:     g,
		Range:    resp.Range,
		Checksum: fmt.Sprintf("%016x", xxh3.Hash(raw)),
	}, nil
}

// FromValues builds a grid from row-major API values starting at A1. Values
// beyond column Z are dropped.
func FromValues(values [][]interface{}) *grid.Memory {
	g := grid.NewMemory()
	for i, row := range values {
		for j, v := range row {
			if j >= grid.MaxColumn {
				break
			}
			g.Set(grid.Address{Col: j + 1, Row: i + 1}, grid.FromAny(v))
		}
	}
	return g
}
