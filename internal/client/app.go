package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/MKhiriev/go-drink-ledger/internal/adapter"
	"github.com/MKhiriev/go-drink-ledger/internal/config"
	"github.com/MKhiriev/go-drink-ledger/internal/logger"
	"github.com/MKhiriev/go-drink-ledger/models"
	"github.com/shopspring/decimal"
)

var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMissingArgument = errors.New("missing argument")
	ErrNoPassword      = errors.New("admin password is not configured, use -password or LEDGER_ADMIN_PASSWORD")
)

const usage = `usage: drink-ledger-cli [flags] <command> [args]

commands:
  version               server version
  users                 registered users
  add-user <name>       register a user (admin)
  balances              outstanding debt per user
  summary               totals over all unsettled purchases
  months                months with purchase history
  settle <user-id>      clear the debt of one user (admin)
  settle-all            clear the debt of every user (admin)
  export <month> [file] download the month as an XLSX workbook (admin)
`

type App struct {
	adapter  adapter.LedgerAdapter
	password string
	out      io.Writer

	// writeFile is replaced in tests.
	writeFile func(name string, data []byte, perm os.FileMode) error

	logger *logger.Logger
}

var _ Client = (*App)(nil)

func NewApp(ledger adapter.LedgerAdapter, cfg *config.ClientConfig, out io.Writer, logger *logger.Logger) (*App, error) {
	if ledger == nil {
		return nil, errors.New("nil ledger adapter")
	}
	if cfg == nil {
		return nil, errors.New("nil client config")
	}

	return &App{
		adapter:   ledger,
		password:  cfg.AdminPassword,
		out:       out,
		writeFile: os.WriteFile,
		logger:    logger,
	}, nil
}

// Run executes one command.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.print(helpStyle.Render(usage))
		return nil
	}

	command, operands := args[0], args[1:]
	a.logger.Debug().Str("command", command).Strs("args", operands).Msg("running command")

	switch command {
	case "help", "-h", "--help":
		a.print(helpStyle.Render(usage))
		return nil
	case "version":
		return a.version(ctx)
	case "users":
		return a.users(ctx)
	case "add-user":
		return a.addUser(ctx, operands)
	case "balances":
		return a.balances(ctx)
	case "summary":
		return a.summary(ctx)
	case "months":
		return a.months(ctx)
	case "settle":
		return a.settle(ctx, operands)
	case "settle-all":
		return a.settleAll(ctx)
	case "export":
		return a.export(ctx, operands)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}
}

func (a *App) version(ctx context.Context) error {
	version, err := a.adapter.Version(ctx)
	if err != nil {
		return err
	}
	a.print("server version: " + version)
	return nil
}

func (a *App) users(ctx context.Context) error {
	users, err := a.adapter.ListUsers(ctx)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(users))
	for _, u := range users {
		mustReset := ""
		if u.MustResetPIN {
			mustReset = "yes"
		}
		rows = append(rows, []string{strconv.FormatInt(u.ID, 10), u.Name, mustReset})
	}

	a.print(titleStyle.Render("Users"))
	a.print(renderTable([]string{"ID", "Name", "Default PIN"}, rows, 0))
	return nil
}

func (a *App) addUser(ctx context.Context, operands []string) error {
	if len(operands) == 0 {
		return fmt.Errorf("%w: name", ErrMissingArgument)
	}
	if err := a.login(ctx); err != nil {
		return err
	}

	user, err := a.adapter.CreateUser(ctx, operands[0])
	if err != nil {
		return err
	}

	a.print(successStyle.Render(fmt.Sprintf("user %q created with id %d", user.Name, user.ID)))
	return nil
}

func (a *App) balances(ctx context.Context) error {
	balances, err := a.adapter.Balances(ctx)
	if err != nil {
		return err
	}

	var (
		total decimal.Decimal
		items int
	)
	rows := make([][]string, 0, len(balances)+1)
	for _, b := range balances {
		total = total.Add(b.Balance)
		items += b.Items
		rows = append(rows, []string{
			strconv.FormatInt(b.UserID, 10),
			b.UserName,
			strconv.Itoa(b.Items),
			b.Balance.StringFixed(2),
		})
	}
	rows = append(rows, []string{"", "Total", strconv.Itoa(items), total.StringFixed(2)})

	a.print(titleStyle.Render("Balances"))
	a.print(renderTable([]string{"ID", "User", "Items", "Balance"}, rows, 0, 2, 3))
	return nil
}

func (a *App) summary(ctx context.Context) error {
	summary, err := a.adapter.Summary(ctx)
	if err != nil {
		return err
	}

	a.print(titleStyle.Render("Summary"))
	a.print(renderTable([]string{"Items", "Outstanding"}, [][]string{
		{strconv.Itoa(summary.TotalItems), summary.TotalRevenue.StringFixed(2)},
	}, 0, 1))
	return nil
}

func (a *App) months(ctx context.Context) error {
	months, err := a.adapter.Months(ctx)
	if err != nil {
		return err
	}
	if len(months) == 0 {
		a.print(helpStyle.Render("no purchase history yet"))
		return nil
	}

	for _, month := range months {
		a.print(month)
	}
	return nil
}

func (a *App) settle(ctx context.Context, operands []string) error {
	if len(operands) == 0 {
		return fmt.Errorf("%w: user id", ErrMissingArgument)
	}
	userID, err := strconv.ParseInt(operands[0], 10, 64)
	if err != nil || userID <= 0 {
		return fmt.Errorf("invalid user id %q", operands[0])
	}
	if err = a.login(ctx); err != nil {
		return err
	}

	settlement, err := a.adapter.SettleUser(ctx, userID)
	if err != nil {
		return err
	}

	a.print(successStyle.Render(fmt.Sprintf("user %d settled, %d transactions cleared", userID, settlement.Cleared)))
	return nil
}

func (a *App) settleAll(ctx context.Context) error {
	if err := a.login(ctx); err != nil {
		return err
	}

	settlement, err := a.adapter.SettleAll(ctx)
	if err != nil {
		return err
	}

	a.print(successStyle.Render(fmt.Sprintf("all users settled, %d transactions cleared", settlement.Cleared)))
	return nil
}

func (a *App) export(ctx context.Context, operands []string) error {
	if len(operands) == 0 {
		return fmt.Errorf("%w: month", ErrMissingArgument)
	}
	month := operands[0]
	if _, err := models.ParseMonthKey(month); err != nil {
		return fmt.Errorf("invalid month %q: %w", month, err)
	}

	file := "purchase-history-" + month + ".xlsx"
	if len(operands) > 1 {
		file = operands[1]
	}

	if err := a.login(ctx); err != nil {
		return err
	}

	data, err := a.adapter.ExportMonth(ctx, month)
	if err != nil {
		return err
	}
	if err = a.writeFile(file, data, 0o644); err != nil {
		return fmt.Errorf("error writing %s: %w", file, err)
	}

	a.print(successStyle.Render(fmt.Sprintf("%s written (%d bytes)", file, len(data))))
	return nil
}

// login obtains an admin token unless the adapter already holds one.
func (a *App) login(ctx context.Context) error {
	if a.adapter.Token() != "" {
		return nil
	}
	if a.password == "" {
		return ErrNoPassword
	}

	if _, err := a.adapter.AdminLogin(ctx, a.password); err != nil {
		return fmt.Errorf("admin login: %w", err)
	}
	return nil
}

func (a *App) print(s string) {
	if _, err := fmt.Fprintln(a.out, s); err != nil {
		a.logger.Err(err).Msg("error writing output")
	}
}
