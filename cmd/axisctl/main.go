// Package main provides axisctl, an operator CLI for the Marine-Axis admin
// API. It drives the same client, session, and resource-store code the admin
// application uses, so it doubles as an end-to-end exercise of the SDK.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/marineaxis/marine-axis-admin/infra/marineaxis"
	"github.com/marineaxis/marine-axis-admin/internal/access"
	"github.com/marineaxis/marine-axis-admin/internal/auth"
	"github.com/marineaxis/marine-axis-admin/internal/config"
	"github.com/marineaxis/marine-axis-admin/internal/domain/admin"
	"github.com/marineaxis/marine-axis-admin/internal/domain/provider"
	"github.com/marineaxis/marine-axis-admin/internal/notify"
	"github.com/marineaxis/marine-axis-admin/internal/resource"
	"github.com/marineaxis/marine-axis-admin/pkg/logger"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "axisctl:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("axisctl", flag.ContinueOnError)
	configPath := global.String("config", defaultConfigPath(), "path to config file")
	if err := global.Parse(args); err != nil {
		return err
	}
	rest := global.Args()
	if len(rest) == 0 {
		return fmt.Errorf("usage: axisctl [-config path] <login|logout|whoami|routes|list|get|create|update|delete|approve> ...")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	log := logger.New("axisctl", cfg.Log.Level, os.Stderr)

	tokenFile := cfg.Auth.TokenFile
	if tokenFile == "" {
		tokenFile = filepath.Join(configDir(), "tokens.json")
	}
	manager := auth.NewManager(auth.NewFileTokenStore(tokenFile), log)

	client, err := marineaxis.New(marineaxis.Config{
		BaseURL:           cfg.API.BaseURL,
		Timeout:           cfg.API.Timeout(),
		RequestsPerSecond: cfg.API.RequestsPerSecond,
		Burst:             cfg.API.Burst,
	}, manager.Token, log)
	if err != nil {
		return err
	}
	manager.Bind(client.Auth())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	app := &cli{cfg: cfg, log: log, manager: manager, client: client}

	switch rest[0] {
	case "login":
		return app.login(ctx, rest[1:])
	case "logout":
		app.manager.Logout(ctx)
		return nil
	case "whoami":
		return app.whoami(ctx)
	case "routes":
		return app.routes(ctx)
	case "list":
		return app.list(ctx, rest[1:])
	case "get":
		return app.get(ctx, rest[1:])
	case "create":
		return app.create(ctx, rest[1:])
	case "update":
		return app.update(ctx, rest[1:])
	case "delete":
		return app.delete(ctx, rest[1:])
	case "approve":
		return app.approve(ctx, rest[1:])
	default:
		return fmt.Errorf("unknown command %q", rest[0])
	}
}

type cli struct {
	cfg     config.Config
	log     *logger.Logger
	manager *auth.Manager
	client  *marineaxis.Client
}

// =============================================================================
// Commands
// =============================================================================

func (c *cli) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	surface := fs.String("surface", "staff", "login surface: staff or provider")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("login requires -email and -password")
	}

	var principal *access.Principal
	var err error
	switch *surface {
	case "staff":
		principal, err = c.manager.LoginStaff(ctx, *email, *password)
	case "provider":
		principal, err = c.manager.LoginProvider(ctx, *email, *password)
	default:
		return fmt.Errorf("unknown surface %q", *surface)
	}
	if err != nil {
		return err
	}

	fmt.Printf("logged in as %s (%s)\n", principal.Email, principal.Role)
	return nil
}

func (c *cli) whoami(ctx context.Context) error {
	principal, err := c.restore(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s)\n", principal.Email, principal.Role)
	return nil
}

func (c *cli) routes(ctx context.Context) error {
	principal, err := c.restore(ctx)
	if err != nil {
		return err
	}

	policy := access.DefaultStaffPolicy()
	gate := access.NewStaffGate()
	if principal.Role == access.RoleProvider {
		policy = access.DefaultProviderPolicy()
		gate = access.NewProviderGate()
	}

	for _, route := range policy.VisibleRoutes(principal) {
		decision := policy.Evaluate(gate, principal, route)
		fmt.Printf("%-12s %s\n", route, decision.Outcome)
	}
	return nil
}

func (c *cli) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	page := fs.Int("page", 1, "page number")
	pageSize := fs.Int("page-size", 20, "page size")
	filterArgs := fs.String("filter", "", "comma-separated key=value filters")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: axisctl list <resource> [-page N] [-page-size N] [-filter k=v,k=v]")
	}
	resourceName := fs.Arg(0)

	if _, err := c.restore(ctx); err != nil {
		return err
	}

	result, err := c.client.Resources().List(ctx, resourceName, *page, *pageSize, parseFilters(*filterArgs))
	if err != nil {
		return err
	}
	fmt.Printf("total: %d\n", result.Total)
	return printJSON(result.Items)
}

func (c *cli) get(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: axisctl get <resource> <id>")
	}
	if _, err := c.restore(ctx); err != nil {
		return err
	}
	data, err := c.client.Resources().Get(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	return printJSON(data)
}

func (c *cli) create(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	data := fs.String("data", "", "JSON payload")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 || *data == "" {
		return fmt.Errorf("usage: axisctl create <resource> -data '<json>'")
	}
	if _, err := c.restore(ctx); err != nil {
		return err
	}

	created, err := c.client.Resources().Create(ctx, fs.Arg(0), json.RawMessage(*data))
	if err != nil {
		return err
	}
	return printJSON(created)
}

func (c *cli) update(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	data := fs.String("data", "", "JSON patch")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 || *data == "" {
		return fmt.Errorf("usage: axisctl update <resource> <id> -data '<json>'")
	}
	if _, err := c.restore(ctx); err != nil {
		return err
	}

	updated, err := c.client.Resources().Update(ctx, fs.Arg(0), fs.Arg(1), json.RawMessage(*data))
	if err != nil {
		return err
	}
	return printJSON(updated)
}

// delete goes through a resource store rather than the raw client so the
// admins self-delete guard applies on the CLI path too.
func (c *cli) delete(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: axisctl delete <resource> <id>")
	}
	resourceName, id := args[0], args[1]

	principal, err := c.restore(ctx)
	if err != nil {
		return err
	}

	if resourceName == "admins" {
		store, err := resource.NewStore(resource.Config[admin.Admin]{
			Resource:    "admins",
			Label:       "admin",
			Transport:   c.client.Resources(),
			Identify:    admin.Identify,
			Notifier:    notify.NewLogNotifier(c.log),
			Logger:      c.log,
			DeleteGuard: admin.SelfDeleteGuard(principal.Email),
		})
		if err != nil {
			return err
		}
		if err := store.Fetch(ctx); err != nil {
			return err
		}
		return store.Delete(ctx, id)
	}

	return c.client.Resources().Delete(ctx, resourceName, id)
}

// approve moves a provider through the approvals flow.
func (c *cli) approve(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("approve", flag.ContinueOnError)
	status := fs.String("status", provider.StatusApproved, "new status: approved or rejected")
	reason := fs.String("reason", "", "reason recorded with a rejection")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: axisctl approve <provider-id> [-status approved|rejected] [-reason text]")
	}
	if _, err := c.restore(ctx); err != nil {
		return err
	}

	update := provider.StatusUpdate{Status: *status, Reason: *reason}
	if err := update.Validate(); err != nil {
		return err
	}
	updated, err := c.client.Resources().Update(ctx, "providers", fs.Arg(0), update)
	if err != nil {
		return err
	}
	return printJSON(updated)
}

// =============================================================================
// Helpers
// =============================================================================

func (c *cli) restore(ctx context.Context) (*access.Principal, error) {
	principal, err := c.manager.Restore(ctx)
	if err != nil {
		return nil, fmt.Errorf("no active session, run axisctl login first")
	}
	return principal, nil
}

func parseFilters(raw string) map[string]string {
	filters := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) == 2 {
			filters[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
		}
	}
	return filters
}

func printJSON(data json.RawMessage) error {
	if len(data) == 0 {
		fmt.Println("{}")
		return nil
	}
	var buf interface{}
	if err := json.Unmarshal(data, &buf); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	pretty, err := json.MarshalIndent(buf, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(pretty))
	return nil
}

func defaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".axisctl"
	}
	return filepath.Join(home, ".axisctl")
}
