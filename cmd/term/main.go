// Command term is a line-oriented console against the inventory API,
// useful when the browser console is unavailable. It drives the same
// client stack: session store, authenticated client, list controllers.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"invdesk/internal/api"
	"invdesk/internal/auth"
	"invdesk/internal/config"
	"invdesk/internal/model"
	"invdesk/internal/service"
	"invdesk/internal/session"
	"invdesk/internal/view"
)

type console struct {
	auth      *auth.Manager
	sales     *service.Sales
	reports   *service.Reports
	items     *view.ListController[model.Item]
	customers *view.ListController[model.Customer]
	saleList  *view.ListController[model.Sale]
	debounce  time.Duration

	// active is the list the paging commands act on.
	active string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	store, err := session.NewFileStore(cfg.SessionDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	var mgr *auth.Manager
	client := api.New(api.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.HTTPTimeout,
		Store:   store,
		Logger:  zerolog.Nop(),
		OnSessionExpired: func() {
			mgr.Invalidate()
			fmt.Println("Session expired, sign in again with: login <email> <password>")
		},
	})
	mgr = auth.New(client, store)

	itemsSvc := service.NewItems(client)
	customersSvc := service.NewCustomers(client)
	salesSvc := service.NewSales(client)

	c := &console{
		auth:      mgr,
		sales:     salesSvc,
		reports:   service.NewReports(client),
		items:     view.NewList(itemsSvc.List, cfg.SearchDebounce),
		customers: view.NewList(customersSvc.List, cfg.SearchDebounce),
		saleList:  view.NewList(salesSvc.List, cfg.SearchDebounce),
		debounce:  cfg.SearchDebounce,
	}

	if u := mgr.User(); u != nil {
		fmt.Printf("Signed in as %s (%s)\n", u.Name, u.Email)
	} else {
		fmt.Println("Not signed in. Use: login <email> <password>")
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "exit" {
			break
		}
		if line != "" {
			c.run(context.Background(), line)
		}
		fmt.Print("> ")
	}
}

func (c *console) run(ctx context.Context, line string) {
	args := strings.Fields(line)
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "login":
		if len(rest) != 2 {
			fmt.Println("usage: login <email> <password>")
			return
		}
		user, err := c.auth.Login(ctx, rest[0], rest[1])
		if err != nil {
			fmt.Println("Login failed:", err)
			return
		}
		fmt.Printf("Signed in as %s (%s)\n", user.Name, user.Role)
	case "logout":
		_ = c.auth.Logout()
		fmt.Println("Signed out")
	case "whoami":
		if u := c.auth.User(); u != nil {
			fmt.Printf("%s <%s> role=%s\n", u.Name, u.Email, u.Role)
		} else {
			fmt.Println("Not signed in")
		}
	case "items":
		c.active = "items"
		c.show(c.items.Reload(ctx))
	case "customers":
		c.active = "customers"
		c.show(c.customers.Reload(ctx))
	case "sales":
		c.active = "sales"
		c.show(c.saleList.Reload(ctx))
	case "search":
		c.search(ctx, strings.Join(rest, " "))
	case "page":
		if len(rest) != 1 {
			fmt.Println("usage: page <n>")
			return
		}
		n, err := strconv.Atoi(rest[0])
		if err != nil {
			fmt.Println("usage: page <n>")
			return
		}
		c.setPage(ctx, n)
	case "next":
		c.step(ctx, 1)
	case "prev":
		c.step(ctx, -1)
	case "ledger":
		if len(rest) != 1 {
			fmt.Println("usage: ledger <customer-id>")
			return
		}
		id, err := strconv.Atoi(rest[0])
		if err != nil {
			fmt.Println("usage: ledger <customer-id>")
			return
		}
		c.ledger(ctx, id)
	case "dashboard":
		stats, err := c.reports.Dashboard(ctx)
		if err != nil {
			fmt.Println("Failed to load dashboard:", err)
			return
		}
		fmt.Printf("Items: %d  Customers: %d  Sales today: %d  Revenue today: %.2f\n",
			stats.TotalItems, stats.TotalCustomers, stats.SalesToday, stats.RevenueToday)
	case "help":
		fmt.Println("commands: login logout whoami items customers sales search page next prev ledger dashboard quit")
	default:
		fmt.Println("Unknown command (try: help)")
	}
}

func (c *console) search(ctx context.Context, text string) {
	l := c.activeList()
	if l == nil {
		fmt.Println("Open a list first (items, customers, sales)")
		return
	}
	l.search(ctx, text)
	// Let the debounce window pass, then render what landed.
	time.Sleep(c.debounce + 50*time.Millisecond)
	c.show(nil)
}

func (c *console) setPage(ctx context.Context, n int) {
	l := c.activeList()
	if l == nil {
		fmt.Println("Open a list first (items, customers, sales)")
		return
	}
	c.show(l.setPage(ctx, n))
}

func (c *console) step(ctx context.Context, delta int) {
	l := c.activeList()
	if l == nil {
		fmt.Println("Open a list first (items, customers, sales)")
		return
	}
	p := l.pager()
	next := p.Page + delta
	if delta > 0 && !p.HasNext() {
		fmt.Println("Already on the last page")
		return
	}
	if delta < 0 && !p.HasPrev() {
		fmt.Println("Already on the first page")
		return
	}
	c.show(l.setPage(ctx, next))
}

func (c *console) ledger(ctx context.Context, customerID int) {
	sales, err := c.sales.Ledger(ctx, customerID)
	if err != nil {
		fmt.Println("Failed to load customer ledger:", err)
		return
	}
	if len(sales) == 0 {
		fmt.Println(view.EmptyMessage)
		return
	}
	for _, s := range sales {
		fmt.Printf("#%d  %s  total=%.2f paid=%.2f\n", s.ID, s.CreatedAt.Format("2006-01-02"), s.Total, s.Paid)
	}
}

// listScreen erases the element type so the console can treat whichever
// list is active uniformly.
type listScreen struct {
	search  func(ctx context.Context, text string)
	setPage func(ctx context.Context, page int) error
	pager   func() view.Pager
	banner  func() string
	render  func()
}

func (c *console) activeList() *listScreen {
	switch c.active {
	case "items":
		return screenFor(c.items, func(i model.Item) string {
			return fmt.Sprintf("#%d  %-30s  price=%.2f stock=%d", i.ID, i.Name, i.Price, i.Quantity)
		})
	case "customers":
		return screenFor(c.customers, func(cu model.Customer) string {
			return fmt.Sprintf("#%d  %-30s  %s", cu.ID, cu.Name, cu.Mobile)
		})
	case "sales":
		return screenFor(c.saleList, func(s model.Sale) string {
			who := "cash sale"
			if s.Customer != nil {
				who = s.Customer.Name
			}
			return fmt.Sprintf("#%d  %-30s  total=%.2f", s.ID, who, s.Total)
		})
	}
	return nil
}

func screenFor[T any](l *view.ListController[T], line func(T) string) *listScreen {
	return &listScreen{
		search:  l.Search,
		setPage: l.SetPage,
		pager:   l.Pager,
		banner:  l.Banner,
		render: func() {
			for _, row := range l.Rows() {
				fmt.Println(line(row))
			}
		},
	}
}

func (c *console) show(err error) {
	l := c.activeList()
	if l == nil {
		return
	}
	if banner := l.banner(); banner != "" {
		fmt.Println(banner)
		if err != nil {
			fmt.Println(" ", err)
		}
		return
	}
	p := l.pager()
	if p.Empty() {
		fmt.Println(view.EmptyMessage)
		return
	}
	l.render()
	fmt.Println(p.Label())
}
