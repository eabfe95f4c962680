// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package demo wires authentication, search and rendering into the single
// request/response run the CLI performs.
package demo

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/pdiddy/getdata-demo/internal/auth"
	"github.com/pdiddy/getdata-demo/internal/getdata"
	"github.com/pdiddy/getdata-demo/internal/httputil"
	"github.com/pdiddy/getdata-demo/internal/listing"
	"github.com/pdiddy/getdata-demo/pkg/types"
)

// NoRecordsMessage is printed when the first page is empty.
const NoRecordsMessage = "No records returned in the first page."

// Pipeline holds the collaborators for one run.
type Pipeline struct {
	Auth   *auth.Authenticator
	Search *getdata.Client
	Format listing.Format
	Out    io.Writer
	Logger *slog.Logger

	printer *listing.Printer
}

// New builds a Pipeline from cfg. Both calls share one HTTP client and the
// same timeout.
func New(cfg types.DemoConfig, out io.Writer, logger *slog.Logger) (*Pipeline, error) {
	format, err := listing.ParseFormat(cfg.Output)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	client := httputil.NewClient(cfg.HTTPConfig)

	tokenURLs := map[auth.APIKind]string{}
	if cfg.BizSearchTokenURL != "" {
		tokenURLs[auth.BizSearch] = cfg.BizSearchTokenURL
	}
	if cfg.GetDataTokenURL != "" {
		tokenURLs[auth.GetData] = cfg.GetDataTokenURL
	}

	return &Pipeline{
		Auth: &auth.Authenticator{
			Client:    client,
			Timeout:   cfg.Timeout,
			TokenURLs: tokenURLs,
			Logger:    logger,
		},
		Search: &getdata.Client{
			HTTPClient: client,
			SearchURL:  cfg.SearchURL,
			Timeout:    cfg.Timeout,
			Logger:     logger,
		},
		Format:  format,
		Out:     out,
		Logger:  logger,
		printer: listing.NewPrinter(out, cfg.Styled),
	}, nil
}

// Run authenticates against GetData, runs the fixed search and writes the
// first page of records. It stops at the first failure. An empty first page
// is reported on Out and is not an error.
func (p *Pipeline) Run(ctx context.Context) error {
	token, err := p.Auth.Authenticate(ctx, auth.GetData)
	if err != nil {
		return &AuthFailure{Err: err}
	}

	payload := getdata.BuildSearchPayload()
	resp, err := p.Search.RunSearch(ctx, token.AccessToken(), payload)
	if err != nil {
		return err
	}

	records := resp.FirstPageRecords()
	p.Logger.Debug("search complete", "records", len(records))
	if len(records) == 0 {
		fmt.Fprintln(p.Out, NoRecordsMessage)
		return nil
	}

	printer := p.printer
	if printer == nil {
		printer = listing.NewPrinter(p.Out, false)
	}
	return listing.Write(p.Format, records, printer)
}

// AuthFailure marks an error raised while obtaining the access token.
type AuthFailure struct {
	Err error
}

func (e *AuthFailure) Error() string { return "Authentication failed: " + e.Err.Error() }

func (e *AuthFailure) Unwrap() error { return e.Err }

// ExitCode maps a Run result to a process exit status.
func ExitCode(err error) int {
	if err != nil {
		return 1
	}
	return 0
}
