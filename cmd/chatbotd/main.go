// Copyright 2025 Medina Group
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/url"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	chatbot "github.com/BGiheb/SuperCHATBOT-MedinaGroup"
	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/ai"
	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/core"
	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/keys"
	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/storage"
	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/storage/sqlite"
)

func main() {
	dataDirFlag := &cli.StringFlag{
		Name:     "data-dir",
		Aliases:  []string{"d"},
		Usage:    "Directory holding tenant metadata and vector indexes",
		Required: true,
	}
	tenantFlag := &cli.StringFlag{
		Name:     "tenant",
		Aliases:  []string{"t"},
		Usage:    "Tenant slug or numeric id",
		Required: true,
	}
	keysFlag := &cli.StringFlag{
		Name:     "keys",
		Aliases:  []string{"k"},
		Usage:    "File with one API key per line, rotated across calls",
		Required: true,
	}
	aiFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "host",
			Usage: "OpenAI-compatible host URL for both embedding and chat",
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL (overrides --host)",
		},
		&cli.StringFlag{
			Name:  "chat-host",
			Usage: "Chat service host URL (overrides --host)",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
		},
		&cli.StringFlag{
			Name:  "chat-model",
			Usage: "Chat model name",
		},
	}

	app := &cli.App{
		Name:  "chatbotd",
		Usage: "Multi-tenant document chatbot over your own files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "add-tenant",
				Usage:  "Register a new tenant",
				Action: addTenantCommand,
				Flags: []cli.Flag{
					dataDirFlag,
					&cli.StringFlag{
						Name:     "slug",
						Usage:    "Unique tenant slug",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "name",
						Usage: "Display name",
					},
					&cli.StringFlag{
						Name:  "description",
						Usage: "Free-form description",
					},
				},
			},
			{
				Name:   "add-document",
				Usage:  "Register a document URL under a tenant",
				Action: addDocumentCommand,
				Flags: []cli.Flag{
					dataDirFlag,
					tenantFlag,
					&cli.StringFlag{
						Name:     "url",
						Usage:    "Document URL to fetch during ingestion",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "name",
						Usage: "File name (defaults to the URL's base name)",
					},
					&cli.StringFlag{
						Name:  "type",
						Usage: "File type: pdf, doc, docx or anything read as plain text (defaults to the URL's extension)",
					},
				},
			},
			{
				Name:   "ingest",
				Usage:  "Rebuild a tenant's vector index from its registered documents",
				Action: ingestCommand,
				Flags:  append([]cli.Flag{dataDirFlag, tenantFlag, keysFlag}, aiFlags...),
			},
			{
				Name:      "ask",
				Usage:     "Ask a question against a tenant's indexed documents",
				ArgsUsage: "<question>",
				Action:    askCommand,
				Flags:     append([]cli.Flag{dataDirFlag, tenantFlag, keysFlag}, aiFlags...),
			},
			{
				Name:   "repair-slugs",
				Usage:  "Fix malformed tenant slugs in the metadata store",
				Action: repairSlugsCommand,
				Flags:  []cli.Flag{dataDirFlag},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func addTenantCommand(c *cli.Context) error {
	ctx := context.Background()

	store, err := sqlite.NewStore(c.String("data-dir"))
	if err != nil {
		return fmt.Errorf("failed to open metadata store: %w", err)
	}
	defer store.Close()

	tenant, err := store.CreateTenant(ctx, &core.Tenant{
		Slug:        c.String("slug"),
		Name:        c.String("name"),
		Description: c.String("description"),
	})
	if err != nil {
		return fmt.Errorf("failed to create tenant: %w", err)
	}

	fmt.Printf("created tenant %d (%s)\n", tenant.Id, tenant.Slug)
	return nil
}

func addDocumentCommand(c *cli.Context) error {
	ctx := context.Background()

	store, err := sqlite.NewStore(c.String("data-dir"))
	if err != nil {
		return fmt.Errorf("failed to open metadata store: %w", err)
	}
	defer store.Close()

	tenant, err := resolveTenant(ctx, storeResolver{store: store}, c.String("tenant"))
	if err != nil {
		return err
	}

	docURL := c.String("url")
	fileName := c.String("name")
	if fileName == "" {
		fileName = deriveFileName(docURL)
	}
	fileType := c.String("type")
	if fileType == "" {
		fileType = deriveFileType(docURL)
	}

	doc, err := store.AddDocument(ctx, &core.Document{
		TenantId: tenant.Id,
		FileName: fileName,
		FileType: fileType,
		URL:      docURL,
	})
	if err != nil {
		return fmt.Errorf("failed to add document: %w", err)
	}

	fmt.Printf("registered document %d (%s, %s) for tenant %s\n",
		doc.Id, doc.FileName, doc.FileType, tenant.Slug)
	return nil
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	service, rotator, err := openService(c)
	if err != nil {
		return err
	}
	defer service.Close()

	tenant, err := resolveTenant(ctx, service, c.String("tenant"))
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Ingesting tenant %s with %d API key(s)\n", tenant.Slug, rotator.Len())

	if err := service.Ingest(ctx, tenant.Id); err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Printf("index rebuilt for tenant %s\n", tenant.Slug)
	return nil
}

func askCommand(c *cli.Context) error {
	ctx := context.Background()

	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("question is required")
	}

	service, _, err := openService(c)
	if err != nil {
		return err
	}
	defer service.Close()

	tenant, err := resolveTenant(ctx, service, c.String("tenant"))
	if err != nil {
		return err
	}

	answer, err := service.Ask(ctx, tenant.Id, question)
	if err != nil {
		return fmt.Errorf("question failed: %w", err)
	}

	fmt.Println(answer)
	return nil
}

func repairSlugsCommand(c *cli.Context) error {
	ctx := context.Background()

	store, err := sqlite.NewStore(c.String("data-dir"))
	if err != nil {
		return fmt.Errorf("failed to open metadata store: %w", err)
	}
	defer store.Close()

	updated, err := store.RepairSlugs(ctx)
	if err != nil {
		return fmt.Errorf("slug repair failed: %w", err)
	}

	fmt.Printf("repaired %d tenant slug(s)\n", updated)
	return nil
}

// openService builds the full service from the command's flags.
func openService(c *cli.Context) (*chatbot.Service, *keys.Rotator, error) {
	rotator, err := keys.NewRotatorFromFile(c.String("keys"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load API keys: %w", err)
	}

	service, err := chatbot.NewService(c.String("data-dir"), rotator,
		chatbot.WithAIConfig(aiConfigFromFlags(c)))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open service: %w", err)
	}

	return service, rotator, nil
}

// aiConfigFromFlags builds the AI configuration, starting from defaults
// and applying only the flags that were set.
func aiConfigFromFlags(c *cli.Context) *ai.Config {
	var opts []ai.ConfigOption
	if host := c.String("host"); host != "" {
		opts = append(opts, ai.WithHost(host))
	}
	if host := c.String("embedding-host"); host != "" {
		opts = append(opts, ai.WithEmbeddingHost(host))
	}
	if host := c.String("chat-host"); host != "" {
		opts = append(opts, ai.WithChatHost(host))
	}
	if model := c.String("embedding-model"); model != "" {
		opts = append(opts, ai.WithEmbeddingModel(model))
	}
	if model := c.String("chat-model"); model != "" {
		opts = append(opts, ai.WithChatModel(model))
	}
	return ai.NewConfig(opts...)
}

// tenantResolver is the subset of tenant lookups the CLI needs. Both the
// metadata store and the service satisfy it.
type tenantResolver interface {
	Tenant(ctx context.Context, id core.ID) (*core.Tenant, error)
	TenantBySlug(ctx context.Context, slug string) (*core.Tenant, error)
}

// storeResolver adapts storage.TenantStore to tenantResolver.
type storeResolver struct {
	store storage.TenantStore
}

func (r storeResolver) Tenant(ctx context.Context, id core.ID) (*core.Tenant, error) {
	return r.store.GetTenant(ctx, id)
}

func (r storeResolver) TenantBySlug(ctx context.Context, slug string) (*core.Tenant, error) {
	return r.store.GetTenantBySlug(ctx, slug)
}

// resolveTenant looks a tenant up by slug, falling back to numeric id for
// all-digit references that match no slug.
func resolveTenant(ctx context.Context, r tenantResolver, ref string) (*core.Tenant, error) {
	tenant, err := r.TenantBySlug(ctx, ref)
	if err == nil {
		return tenant, nil
	}

	if id, ok := parseTenantID(ref); ok {
		return r.Tenant(ctx, id)
	}
	return nil, err
}

// parseTenantID reports whether ref is a plain decimal tenant id.
func parseTenantID(ref string) (core.ID, bool) {
	if ref == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(ref, 10, 64)
	if err != nil {
		return 0, false
	}
	return core.ID(id), true
}

// deriveFileName extracts a usable file name from a document URL.
func deriveFileName(docURL string) string {
	parsed, err := url.Parse(docURL)
	if err != nil || parsed.Path == "" {
		return "document"
	}
	base := path.Base(parsed.Path)
	if base == "." || base == "/" {
		return "document"
	}
	return base
}

// deriveFileType extracts the file type from a document URL's extension.
// URLs without an extension are treated as plain text.
func deriveFileType(docURL string) string {
	ext := strings.TrimPrefix(path.Ext(deriveFileName(docURL)), ".")
	if ext == "" {
		return "txt"
	}
	return strings.ToLower(ext)
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
