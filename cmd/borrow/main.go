package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"campus-borrow/internal/api"
	"campus-borrow/internal/models"
	"campus-borrow/internal/receipts"
	"campus-borrow/internal/session"

	"golang.org/x/term"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	store  *session.Store
	client *api.Client
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("borrow", flag.ContinueOnError)
	fs.SetOutput(stderr)

	apiURL := fs.String("api", envOr("BORROW_API_URL", "http://localhost:8000/api"), "Base URL of the campus borrowing API")
	cachePath := fs.String("cache", envOr("BORROW_CACHE", "borrow.db"), "Path to the session cache file")

	if err := fs.Parse(args); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fmt.Fprintln(stdout, "Usage: borrow [-api <url>] [-cache <path>] <command> [flags]")
		fmt.Fprintln(stdout, "Commands: login, logout, profile, options, items, rooms, request, book, receipts, cancel")
		return errors.New("missing command")
	}

	store, err := session.Open(*cachePath)
	if err != nil {
		return fmt.Errorf("failed to open session cache: %w", err)
	}
	defer store.Close()

	a := &app{
		store:  store,
		client: api.New(*apiURL, store),
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}

	ctx := context.Background()
	cmd, cmdArgs := rest[0], rest[1:]

	switch cmd {
	case "login":
		return a.login(ctx, cmdArgs)
	case "logout":
		return a.logout()
	case "profile":
		return a.profile()
	case "options":
		return a.options()
	case "items":
		return a.items(ctx, cmdArgs)
	case "rooms":
		return a.rooms(ctx)
	case "request":
		return a.request(ctx, cmdArgs)
	case "book":
		return a.book(ctx, cmdArgs)
	case "receipts":
		return a.receipts(ctx)
	case "cancel":
		return a.cancel(ctx, cmdArgs)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(a.stderr)

	email := fs.String("email", "", "Account email")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return errors.New("missing required flags: email")
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(a.stdout, "Password: ")
		var err error
		password, err = readPassword(a.stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(a.stdout)
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password cannot be empty")
	}

	res, err := a.client.Login(ctx, *email, password)
	if err != nil {
		return friendly(err, "login failed")
	}

	if err := a.store.SaveSession(res.Token, *email, res.User); err != nil {
		return fmt.Errorf("failed to cache session: %w", err)
	}

	msg := res.Message
	if msg == "" {
		msg = "Logged in"
	}
	fmt.Fprintln(a.stdout, msg)
	return nil
}

func (a *app) logout() error {
	// Only the token goes; cached email/user stay behind for prefill.
	if err := a.store.ClearToken(); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	fmt.Fprintln(a.stdout, "Logged out")
	return nil
}

func (a *app) profile() error {
	fmt.Fprintf(a.stdout, "Email: %s\n", a.store.DisplayEmail())
	if u, ok := a.store.User(); ok {
		if u.Name != "" {
			fmt.Fprintf(a.stdout, "Name: %s\n", u.Name)
		}
		if u.ID != "" {
			fmt.Fprintf(a.stdout, "ID: %s\n", u.ID)
		}
	}
	if _, ok := a.store.Token(); !ok {
		fmt.Fprintln(a.stdout, "Not logged in")
	}
	return nil
}

func (a *app) options() error {
	fmt.Fprintln(a.stdout, "Year levels:")
	for _, o := range models.YearOptions {
		fmt.Fprintf(a.stdout, "  %-12s %s\n", o.Value, o.Label)
	}
	fmt.Fprintln(a.stdout, "Departments and courses:")
	for _, d := range models.DepartmentOptions {
		fmt.Fprintf(a.stdout, "  %s\n", d.Value)
		for _, c := range models.CourseOptions[d.Value] {
			fmt.Fprintf(a.stdout, "    %-14s %s\n", c.Value, c.Label)
		}
	}
	return nil
}

func (a *app) items(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("items", flag.ContinueOnError)
	fs.SetOutput(a.stderr)

	search := fs.String("search", "", "Filter items by name")

	if err := fs.Parse(args); err != nil {
		return err
	}

	items, err := a.client.Items(ctx)
	if err != nil {
		return friendly(err, "failed to fetch items")
	}

	shown := 0
	for _, it := range items {
		if *search != "" && !strings.Contains(strings.ToLower(it.Name), strings.ToLower(*search)) {
			continue
		}
		shown++
		line := fmt.Sprintf("#%d %s (qty %d)", it.ID, it.Name, it.Qty)
		if it.Description != "" {
			line += " - " + it.Description
		}
		fmt.Fprintln(a.stdout, line)
	}
	if shown == 0 {
		fmt.Fprintln(a.stdout, "No items available")
	}
	return nil
}

func (a *app) rooms(ctx context.Context) error {
	rooms, err := a.client.Rooms(ctx)
	if err != nil {
		return friendly(err, "failed to fetch rooms")
	}
	if len(rooms) == 0 {
		fmt.Fprintln(a.stdout, "No rooms available")
		return nil
	}
	for _, r := range rooms {
		fmt.Fprintf(a.stdout, "#%d %s (qty %d)\n", r.ID, r.Name, r.Quantity)
	}
	return nil
}

func (a *app) request(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("request", flag.ContinueOnError)
	fs.SetOutput(a.stderr)

	itemID := fs.Int64("item", 0, "Item id to borrow")
	form := formFlags(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *itemID == 0 {
		return errors.New("missing required flags: item")
	}
	if err := form.Validate(); err != nil {
		return err
	}

	if err := a.client.CreateRequest(ctx, models.BorrowForm{RequestForm: *form, ItemID: *itemID}); err != nil {
		return friendly(err, "failed to submit request")
	}

	if err := a.store.SetBorrowerID(form.BorrowerID); err != nil {
		log.Printf("failed to cache borrower id: %v", err)
	}
	fmt.Fprintln(a.stdout, "Request submitted successfully!")
	return nil
}

func (a *app) book(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("book", flag.ContinueOnError)
	fs.SetOutput(a.stderr)

	roomID := fs.Int64("room", 0, "Room id to reserve")
	form := formFlags(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *roomID == 0 {
		return errors.New("missing required flags: room")
	}
	if err := form.Validate(); err != nil {
		return err
	}

	if err := a.client.CreateRoomRequest(ctx, models.BookingForm{RequestForm: *form, RoomID: *roomID}); err != nil {
		return friendly(err, "failed to submit booking")
	}

	if err := a.store.SetBorrowerID(form.BorrowerID); err != nil {
		log.Printf("failed to cache borrower id: %v", err)
	}
	fmt.Fprintln(a.stdout, "Room booking request submitted successfully!")
	return nil
}

func (a *app) receipts(ctx context.Context) error {
	svc := receipts.NewService(a.client, a.store)
	ledger, err := svc.Load(ctx)
	if err != nil {
		return friendly(err, "failed to fetch receipts")
	}

	list := ledger.Receipts()
	if len(list) == 0 {
		fmt.Fprintln(a.stdout, "No receipts")
		return nil
	}
	for _, r := range list {
		fmt.Fprintf(a.stdout, "[%s] #%s %s  %s  %s - %s\n", r.Type, r.ID, r.Name, r.Date, r.TimeIn, r.TimeOut)
	}
	return nil
}

func (a *app) cancel(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cancel", flag.ContinueOnError)
	fs.SetOutput(a.stderr)

	receiptType := fs.String("type", "", `Receipt type: "item" or "room"`)
	id := fs.String("id", "", "Request id to cancel")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *receiptType != receipts.TypeItem && *receiptType != receipts.TypeRoom {
		return errors.New(`missing or invalid -type, want "item" or "room"`)
	}
	if *id == "" {
		return errors.New("missing required flags: id")
	}

	svc := receipts.NewService(a.client, a.store)
	ledger, err := svc.Load(ctx)
	if err != nil {
		return friendly(err, "failed to fetch receipts")
	}

	r, ok := ledger.Find(*receiptType, *id)
	if !ok {
		return fmt.Errorf("no %s receipt with id %s", *receiptType, *id)
	}

	if err := svc.Cancel(ctx, ledger, r); err != nil {
		return friendly(err, "failed to cancel request")
	}
	fmt.Fprintln(a.stdout, "Request cancelled")
	return nil
}

func formFlags(fs *flag.FlagSet) *models.RequestForm {
	f := &models.RequestForm{}
	fs.StringVar(&f.Name, "name", "", "Full name")
	fs.StringVar(&f.BorrowerID, "id-number", "", "Student ID number")
	fs.StringVar(&f.Year, "year", "", "Year level (see: borrow options)")
	fs.StringVar(&f.Department, "dept", "", "Department (see: borrow options)")
	fs.StringVar(&f.Course, "course", "", "Course (see: borrow options)")
	fs.StringVar(&f.Date, "date", "", "Date (YYYY-MM-DD)")
	fs.StringVar(&f.TimeIn, "time-in", "", "Time in (HH:mm, 24-hour)")
	fs.StringVar(&f.TimeOut, "time-out", "", "Time out (HH:mm, 24-hour)")
	return f
}

// friendly maps API failures onto the user-facing messages: server-sent
// messages verbatim, the 401 class as a distinct "session expired". The
// cached token is left alone either way.
func friendly(err error, action string) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if apiErr.SessionExpired() {
			return errors.New("session expired, please log in again")
		}
		return fmt.Errorf("%s: %s", action, apiErr.Message)
	}
	return fmt.Errorf("%s: %w", action, err)
}

func readPassword(stdin io.Reader) (string, error) {
	// Check if stdin is a terminal
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	// Fallback for non-terminal (e.g. tests, pipes)
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
