package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/JaydevKalariyaa/proxima-sales/internal/application/service"
	"github.com/JaydevKalariyaa/proxima-sales/internal/config"
	"github.com/JaydevKalariyaa/proxima-sales/internal/domain/entity"
	"github.com/JaydevKalariyaa/proxima-sales/internal/domain/enum"
	"github.com/JaydevKalariyaa/proxima-sales/internal/infrastructure/api"
	"github.com/JaydevKalariyaa/proxima-sales/internal/infrastructure/session"
	"github.com/JaydevKalariyaa/proxima-sales/pkg/apperror"
	"github.com/JaydevKalariyaa/proxima-sales/pkg/calc"
	"go.uber.org/zap"
)

const usage = `Usage: proxima <command> [flags]

Commands:
  login          Log in to the sales backend
  logout         Clear the stored session
  create         Submit a draft sale from a JSON items file
  confirm        Attach client info to a sale and confirm it
  cancel         Cancel a submitted sale
  clients        List confirmed clients
  delete-client  Delete a client and its sales
  sale           Show a client's sale, grouped by category and room
  export         Export a client's sale to an xlsx file
`

// app bundles the wired-up services every command works with.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	session *session.Session
	client  *api.Client
	drafts  *service.DraftBuilder
	listing *service.ListingService
	export  *service.ExportService
	auth    *service.AuthService
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	logger, err := buildLogger(cfg.App.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	sess := session.New(session.NewFileStore(cfg.Session.FilePath))
	if err := sess.Initialize(); err != nil {
		logger.Fatal("failed to load session", zap.Error(err))
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, sess, logger)
	defer client.Close()

	saleRepo := api.NewSaleRepository(client)
	clientRepo := api.NewClientRepository(client)
	authRepo := api.NewAuthRepository(client)

	a := &app{
		cfg:     cfg,
		logger:  logger,
		session: sess,
		client:  client,
		drafts:  service.NewDraftBuilder(saleRepo, logger),
		listing: service.NewListingService(clientRepo, saleRepo, logger, cfg.Listing.PageSize),
		export:  service.NewExportService(logger),
		auth:    service.NewAuthService(authRepo, sess, logger),
	}

	ctx := context.Background()
	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.cmdLogin(ctx, args)
	case "logout":
		return a.cmdLogout()
	case "create":
		return a.cmdCreate(ctx, args)
	case "confirm":
		return a.cmdConfirm(ctx, args)
	case "cancel":
		return a.cmdCancel(ctx, args)
	case "clients":
		return a.cmdClients(ctx, args)
	case "delete-client":
		return a.cmdDeleteClient(ctx, args)
	case "sale":
		return a.cmdSale(ctx, args)
	case "export":
		return a.cmdExport(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	if *email == "" || *password == "" {
		return fmt.Errorf("both -email and -password are required")
	}
	if err := a.auth.Login(ctx, *email, *password); err != nil {
		return err
	}
	fmt.Println("Logged in.")
	return nil
}

func (a *app) cmdLogout() error {
	if err := a.auth.Logout(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

// fileItem is one entry of the items file passed to the create command.
// Numeric fields are pointers so a missing field is reported as missing
// rather than silently read as zero.
type fileItem struct {
	Category      *string  `json:"category"`
	Room          *string  `json:"room"`
	ProductName   string   `json:"product_name"`
	ProductCode   string   `json:"product_code"`
	SizeFinish    string   `json:"size_finish"`
	MRP           *float64 `json:"mrp"`
	DiscountType  string   `json:"discount_type"`
	DiscountValue *float64 `json:"discount_value"`
	Quantity      *float64 `json:"quantity"`
}

func (a *app) cmdCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	file := fs.String("file", "", "path to a JSON array of line items")
	fs.Parse(args)

	if *file == "" {
		return fmt.Errorf("-file is required")
	}
	data, err := os.ReadFile(*file)
	if err != nil {
		return err
	}
	var items []fileItem
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("parsing %s: %w", *file, err)
	}

	for i, in := range items {
		input := service.LineItemInput{
			Room:          in.Room,
			ProductName:   in.ProductName,
			ProductCode:   in.ProductCode,
			SizeFinish:    in.SizeFinish,
			MRP:           in.MRP,
			DiscountType:  enum.DiscountType(in.DiscountType),
			DiscountValue: in.DiscountValue,
			Quantity:      in.Quantity,
		}
		if in.Category != nil {
			cat := enum.Category(*in.Category)
			if !cat.Valid() {
				return fmt.Errorf("item %d: unknown category %q", i+1, *in.Category)
			}
			input.Category = &cat
		}
		item, err := a.drafts.AddItem(input)
		if err != nil {
			return fmt.Errorf("item %d: %w", i+1, err)
		}
		fmt.Printf("  + %s x%g = %s\n", item.ProductName, item.Quantity, calc.FormatCurrency(item.TotalAmount))
	}

	fmt.Printf("Grand total: %s\n", calc.FormatCurrency(a.drafts.GrandTotal()))

	result, err := a.drafts.Submit(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Draft sale created: %s\n", result.SaleID)
	fmt.Println("Run 'proxima confirm -sale " + result.SaleID + " -name <client>' to finalize it.")
	return nil
}

func (a *app) cmdConfirm(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("confirm", flag.ExitOnError)
	saleID := fs.String("sale", "", "sale id returned by create")
	name := fs.String("name", "", "client name")
	phone := fs.String("phone", "", "client phone")
	address := fs.String("address", "", "client address")
	arcName := fs.String("arc-name", "", "architect/mistry name")
	arcPhone := fs.String("arc-phone", "", "architect/mistry phone")
	arcAddress := fs.String("arc-address", "", "architect/mistry address")
	reviewScanner := fs.String("review-scanner", "", "review scanner reference")
	fs.Parse(args)

	workflow, err := a.workflow(*saleID)
	if err != nil {
		return err
	}
	return confirmSale(ctx, workflow, entity.ClientInfo{
		Name:          *name,
		Phone:         *phone,
		Address:       *address,
		ArcName:       *arcName,
		ArcPhone:      *arcPhone,
		ArcAddress:    *arcAddress,
		ReviewScanner: *reviewScanner,
	}, os.Stdout)
}

func confirmSale(ctx context.Context, workflow *service.ConfirmationWorkflow, info entity.ClientInfo, out io.Writer) error {
	if err := workflow.Confirm(ctx, info); err != nil {
		return err
	}
	fmt.Fprintln(out, "Sale confirmed.")
	return nil
}

func (a *app) cmdCancel(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cancel", flag.ExitOnError)
	saleID := fs.String("sale", "", "sale id returned by create")
	fs.Parse(args)

	workflow, err := a.workflow(*saleID)
	if err != nil {
		return err
	}
	if _, err := workflow.Cancel(ctx); err != nil {
		return err
	}
	fmt.Println("Sale cancelled.")
	return nil
}

func (a *app) workflow(saleID string) (*service.ConfirmationWorkflow, error) {
	saleRepo := api.NewSaleRepository(a.client)
	workflow, err := service.NewConfirmationWorkflow(saleRepo, a.logger, saleID, nil)
	if err != nil {
		return nil, fmt.Errorf("-sale is required: %w", err)
	}
	return workflow, nil
}

func (a *app) cmdClients(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("clients", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	search := fs.String("search", "", "filter by name, phone or address")
	interactive := fs.Bool("interactive", false, "live search prompt with debounced input")
	fs.Parse(args)

	if *interactive {
		return a.interactiveClients()
	}

	result, err := a.listing.ListClients(ctx, *page, *search)
	if err != nil {
		return err
	}
	writeClientsUpdate(os.Stdout, service.SearchUpdate{Term: *search, Page: *page, Result: result}, a.listing.PageSize())
	return nil
}

// interactiveClients runs a live search prompt. Each typed line becomes the
// search term, debounced the same way the listing screen debounces keystrokes,
// so half-typed terms never reach the server.
func (a *app) interactiveClients() error {
	var mu sync.Mutex
	search := service.NewClientSearch(a.listing, a.cfg.Listing.SearchDebounce, func(u service.SearchUpdate) {
		mu.Lock()
		defer mu.Unlock()
		writeClientsUpdate(os.Stdout, u, a.listing.PageSize())
	})

	fmt.Println("Type to search. Commands: /p <page>, /r to refresh, /q to quit.")
	search.Refresh()
	return runClientPrompt(search, os.Stdin, os.Stdout)
}

// runClientPrompt feeds prompt lines into the search controller until /q or
// end of input.
func runClientPrompt(search *service.ClientSearch, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "/q":
			return nil
		case line == "/r":
			search.Refresh()
		case strings.HasPrefix(line, "/p"):
			page, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "/p")))
			if err != nil {
				fmt.Fprintln(out, "Usage: /p <page>")
				continue
			}
			search.SetPage(page)
		default:
			search.SetTerm(line)
		}
	}
	return scanner.Err()
}

func writeClientsUpdate(w io.Writer, u service.SearchUpdate, pageSize int) {
	if u.Err != nil {
		fmt.Fprintf(w, "Error: %s\n", apperror.GetAppError(u.Err).Message)
		return
	}
	if len(u.Result.Results) == 0 {
		fmt.Fprintln(w, "No clients found.")
		return
	}
	for _, c := range u.Result.Results {
		fmt.Fprintf(w, "%s  %-25s %-12s %s\n", c.ID, c.Name, c.Phone, c.Address)
	}
	fmt.Fprintf(w, "Page %d of %d (%d clients)\n", u.Page, u.Result.TotalPages(pageSize), u.Result.TotalCount)
}

func (a *app) cmdDeleteClient(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete-client", flag.ExitOnError)
	id := fs.String("id", "", "client id")
	fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("-id is required")
	}
	if err := a.listing.DeleteClient(ctx, *id); err != nil {
		return err
	}
	fmt.Println("Client deleted.")
	return nil
}

func (a *app) cmdSale(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sale", flag.ExitOnError)
	clientID := fs.String("client", "", "client id")
	fs.Parse(args)

	if *clientID == "" {
		return fmt.Errorf("-client is required")
	}
	view, err := a.listing.SaleDetail(ctx, *clientID)
	if view == nil {
		return err
	}
	if view.Demo {
		fmt.Println("!! Backend unreachable, showing sample data. Nothing below is real.")
	}

	printSale(view)

	if view.Demo {
		return err
	}
	return nil
}

func printSale(view *service.SaleDetailView) {
	d := view.Detail
	fmt.Printf("Sale %s (%s) for %s\n", d.ID, d.Status, d.Client.Name)
	if d.Client.Phone != "" {
		fmt.Printf("Phone: %s\n", d.Client.Phone)
	}
	for _, group := range view.Groups {
		fmt.Printf("\n%s\n", group.Category)
		for _, rg := range group.Rooms {
			fmt.Printf("  %s\n", rg.Room)
			for _, it := range rg.Items {
				fmt.Printf("    %-30s %s x%g = %s\n",
					it.ProductName,
					calc.FormatCurrency(it.PricePerPiece),
					it.Quantity,
					calc.FormatCurrency(it.TotalAmount),
				)
			}
		}
	}
	fmt.Printf("\nTotal: %s\n", calc.FormatCurrency(d.TotalAmount))
}

func (a *app) cmdExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	clientID := fs.String("client", "", "client id")
	out := fs.String("out", "sale.xlsx", "output file path")
	fs.Parse(args)

	if *clientID == "" {
		return fmt.Errorf("-client is required")
	}
	view, err := a.listing.SaleDetail(ctx, *clientID)
	if err != nil {
		return err
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := a.export.WriteXLSX(view, f); err != nil {
		return err
	}
	fmt.Printf("Exported to %s\n", *out)
	return nil
}

func printError(err error) {
	appErr := apperror.GetAppError(err)
	fmt.Fprintf(os.Stderr, "Error: %s\n", appErr.Message)
	for _, fe := range appErr.Fields {
		fmt.Fprintf(os.Stderr, "  %s: %s\n", fe.Field, fe.Message)
	}
}

func buildLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	// The CLI prints its own output; keep operational logs on stderr at
	// warn level so they do not drown the listing output.
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}
